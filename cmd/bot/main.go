package main

import (
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/haragucci/opsucht-market-bot/internal/config"
	"github.com/haragucci/opsucht-market-bot/internal/discord"
	"github.com/haragucci/opsucht-market-bot/internal/logger"
	"github.com/haragucci/opsucht-market-bot/internal/market"
	"github.com/haragucci/opsucht-market-bot/internal/translate"
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.Environment, false))

	translator, err := translate.Load(cfg.TranslationsPath)
	if err != nil {
		slog.Error("Failed to load translations", "error", err, "path", cfg.TranslationsPath)
		os.Exit(1)
	}

	client := market.NewClient(cfg.APIBaseURL, cfg.APIUsername, cfg.APIPassword)
	store := market.NewCategoryStore(client)
	cache := market.NewCache(client, store)
	services := discord.NewServices(store, cache, translator)

	bot, err := discord.New(discord.Config{
		Token:   cfg.DiscordToken,
		AppID:   cfg.DiscordAppID,
		GuildID: cfg.DiscordGuildID,
	}, services)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	opsServer := discord.NewOpsServer(cfg.OpsPort, services)
	opsServer.Start()
	defer opsServer.Stop()

	registerCommands(bot, getCommandFactories())

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// getCommandFactories returns a list of all available Discord command
// factories. This provides a single place to see and manage all
// registered commands.
func getCommandFactories() []CommandFactory {
	return []CommandFactory{
		discord.MarketCommand,
		discord.MarketItemCommand,
		discord.InfoCommand,
		discord.HelpCommand,
	}
}

// registerCommands registers all provided command factories with the
// bot's registry.
func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}
