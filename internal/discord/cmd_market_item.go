package discord

import (
	"github.com/bwmarrin/discordgo"
)

// MarketItemCommand returns the /markt-item command definition and
// handler. It looks an item up across the whole catalog, so users do
// not need to know its category.
func MarketItemCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "markt-item",
		Description: "Zeigt die Marktpreise eines Items",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "item",
				Description:  "Item aus dem gesamten Markt",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
		if !deferResponse(s, i) {
			return
		}

		ctx, cancel := interactionContext()
		defer cancel()

		item := optionValue(getOptions(i), "item")
		if item == "" {
			respondError(s, i, MsgGenericError)
			return
		}

		catalog := svc.Cache.FullCatalog(ctx)
		if len(catalog) == 0 {
			respondError(s, i, MsgMarketEmpty)
			return
		}

		itemID := svc.Translator.ReverseLookup(item)
		if _, ok := catalog[itemID]; !ok {
			respondError(s, i, MsgUnknownItem)
			return
		}

		showItem(s, i, svc, itemID)
	}

	return cmd, handler
}
