package discord

import (
	"github.com/bwmarrin/discordgo"
)

// HelpCommand returns the /help command definition and handler
func HelpCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "help",
		Description: "Zeigt alle Befehle",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		embed := createEmbed("📖 Befehle", "", ColorInfo)
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "/markt <kategorie>", Value: "Alle Items einer Kategorie mit Kauf- und Verkaufspreis"},
			{Name: "/markt <kategorie> <item>", Value: "Details zu einem Item aus der Kategorie"},
			{Name: "/markt-item <item>", Value: "Details zu einem Item, egal aus welcher Kategorie"},
			{Name: "/info", Value: "Infos über den Bot"},
		}

		sendEmbed(s, i, embed)
		scheduleDelete(s, i)
	}

	return cmd, handler
}
