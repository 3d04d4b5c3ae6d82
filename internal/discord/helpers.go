package discord

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/haragucci/opsucht-market-bot/internal/domain"
	"github.com/haragucci/opsucht-market-bot/internal/market"
)

var pricePrinter = message.NewPrinter(language.German)

// formatPrice renders a price with German digit grouping, e.g. 12.345,5.
func formatPrice(price float64) string {
	return pricePrinter.Sprintf("%.1f", price)
}

// priceLabel renders the best order of one side, or a dash when the
// side has no offers.
func priceLabel(orders []domain.Order, side domain.OrderSide) string {
	order, ok := market.BestOrder(orders, side)
	if !ok {
		return LabelNoOffer
	}
	return formatPrice(order.Price) + " $"
}

// itemImageURL returns the icon URL for an item identifier.
func itemImageURL(itemID string) string {
	return fmt.Sprintf(ItemImageBase, itemID)
}

// sortedItemIDs returns the keys of an item set in stable alphabetical
// order, so pages do not reshuffle between renders.
func sortedItemIDs[V any](items map[string]V) []string {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// pageCount returns how many pages a line list occupies.
func pageCount(lines int) int {
	if lines == 0 {
		return 1
	}
	return (lines + PageSize - 1) / PageSize
}

// pageSlice returns the lines belonging to one zero-based page.
func pageSlice(lines []string, page int) []string {
	start := page * PageSize
	if start >= len(lines) {
		return nil
	}
	end := start + PageSize
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end]
}

// scheduleDelete removes the interaction response after MessageTTL.
func scheduleDelete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	interaction := i.Interaction
	time.AfterFunc(MessageTTL, func() {
		if err := s.InteractionResponseDelete(interaction); err != nil {
			slog.Debug("Failed to delete expired market message", "error", err)
		}
	})
}
