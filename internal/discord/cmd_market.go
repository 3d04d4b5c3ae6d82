package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/haragucci/opsucht-market-bot/internal/domain"
)

// MarketCommand returns the /markt command definition and handler. It
// lists a category's items page by page, or shows a single item when
// the optional item argument is given.
func MarketCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "markt",
		Description: "Zeigt die Marktpreise einer Kategorie",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "kategorie",
				Description:  "Marktkategorie",
				Required:     true,
				Autocomplete: true,
			},
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "item",
				Description:  "Einzelnes Item aus der Kategorie",
				Required:     false,
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

		options := getOptions(i)
		category := optionValue(options, "kategorie")
		if category == "" {
			respondError(s, i, MsgGenericError)
			return
		}

		if !svc.Store.Contains(ctx, category) {
			respondError(s, i, MsgUnknownCategory)
			return
		}

		items := svc.Cache.ItemsForCategory(ctx, category)
		if len(items) == 0 {
			respondError(s, i, MsgMarketEmpty)
			return
		}

		if item := optionValue(options, "item"); item != "" {
			itemID := svc.Translator.ReverseLookup(item)
			if _, ok := items[itemID]; !ok {
				respondError(s, i, MsgUnknownItem)
				return
			}
			showItem(s, i, svc, itemID)
			return
		}

		showCategory(s, i, svc, category, sortedItemIDs(items))
	}

	return cmd, handler
}

// showCategory sends the first page of a category listing with
// pagination buttons. The message cleans itself up after MessageTTL.
func showCategory(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, category string, itemIDs []string) {
	lines := make([]string, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		orders := svc.Cache.Orders(itemID)
		lines = append(lines, fmt.Sprintf("**%s**\n%s %s | %s %s",
			svc.Translator.DisplayName(itemID),
			LabelBuy, priceLabel(orders, domain.OrderSideBuy),
			LabelSell, priceLabel(orders, domain.OrderSideSell)))
	}

	key, session := newPageSession(svc, "📦 "+category, lines)
	embed := renderPage(session)
	components := pageComponents(key, session)

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	}); err != nil {
		slog.Error("Failed to send category listing", "error", err, "category", category)
		return
	}
	scheduleDelete(s, i)
}

// showItem sends the detail embed for one cached item.
func showItem(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services, itemID string) {
	entry, ok := svc.Cache.Entry(itemID)
	if !ok {
		respondError(s, i, MsgUnknownItem)
		return
	}
	if len(entry.Orders) == 0 {
		respondError(s, i, MsgNoOrders)
		return
	}

	embed := createEmbed(svc.Translator.DisplayName(itemID), "", ColorMarket)
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: itemImageURL(itemID)}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: LabelCategory, Value: entry.Category, Inline: true},
		{Name: LabelBuy, Value: priceLabel(entry.Orders, domain.OrderSideBuy), Inline: true},
		{Name: LabelSell, Value: priceLabel(entry.Orders, domain.OrderSideSell), Inline: true},
		{Name: LabelActiveOrders, Value: fmt.Sprintf("%d", activeOrderCount(entry.Orders)), Inline: true},
	}

	sendEmbed(s, i, embed)
	scheduleDelete(s, i)
}

// activeOrderCount sums the active orders across both sides.
func activeOrderCount(orders []domain.Order) int {
	total := 0
	for _, order := range orders {
		total += order.ActiveOrders
	}
	return total
}
