package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/haragucci/opsucht-market-bot/internal/logger"
)

// InfoCommand returns the /info command definition and handler
func InfoCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "info",
		Description: "Infos über den Bot",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		ctx, cancel := interactionContext()
		defer cancel()

		embed := createEmbed("ℹ️ OpSucht Markt Bot",
			"Marktpreise direkt vom OpSucht-Netzwerk.", ColorInfo)
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Version", Value: logger.Version, Inline: true},
			{Name: "Kategorien", Value: fmt.Sprintf("%d", len(svc.Store.Categories(ctx))), Inline: true},
			{Name: "Items im Cache", Value: fmt.Sprintf("%d", svc.Cache.Len()), Inline: true},
		}

		sendEmbed(s, i, embed)
		scheduleDelete(s, i)
	}

	return cmd, handler
}
