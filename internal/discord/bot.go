package discord

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/haragucci/opsucht-market-bot/internal/market"
	"github.com/haragucci/opsucht-market-bot/internal/translate"
)

// Services bundles everything command handlers need.
type Services struct {
	Store      *market.CategoryStore
	Cache      *market.Cache
	Translator *translate.Index

	// Pages holds pagination state for live market messages, keyed by
	// the session ID embedded in the message's component custom IDs.
	Pages *expirable.LRU[string, *pageSession]

	// Suggest memoizes autocomplete choice lists per focused query, so
	// a typing burst does not hit the upstream API per keystroke.
	Suggest *expirable.LRU[string, []string]
}

// NewServices wires the market backend into a handler service set.
func NewServices(store *market.CategoryStore, cache *market.Cache, translator *translate.Index) *Services {
	return &Services{
		Store:      store,
		Cache:      cache,
		Translator: translator,
		Pages:      expirable.NewLRU[string, *pageSession](PageSessionLimit, nil, PageSessionTTL),
		Suggest:    expirable.NewLRU[string, []string](SuggestLimit, nil, SuggestTTL),
	}
}

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	Services *Services
	AppID    string
	GuildID  string
	Registry *CommandRegistry
}

// Config holds the bot configuration
type Config struct {
	Token   string
	AppID   string
	GuildID string
}

// New creates a new Discord bot
func New(cfg Config, svc *Services) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	return &Bot{
		Session:  s,
		Services: svc,
		AppID:    cfg.AppID,
		GuildID:  cfg.GuildID,
		Registry: NewCommandRegistry(),
	}, nil
}

// Start starts the bot
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() {
	b.Session.Close()
}

// Run runs the bot until a signal is received
func (b *Bot) Run() error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", s.State.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if b.Registry != nil {
			b.Registry.Handle(s, i, b.Services)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		HandleAutocomplete(s, i, b.Services)
	case discordgo.InteractionMessageComponent:
		HandleComponent(s, i, b.Services)
	}
}
