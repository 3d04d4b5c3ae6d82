package logger

// Service identification values attached to every log line
const (
	ServiceName = "opsucht-market-bot"
	Version     = "1.1.5"
)
