package discord

import (
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveMarket(ctx *TestContext) {
	ctx.Mux.HandleFunc("/market/categories", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["Ores","Farming"]`))
	})
	ctx.Mux.HandleFunc("/market/prices", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"Ores": {
				"iron_ingot": [
					{"orderSide":"BUY","price":120,"activeOrders":4},
					{"orderSide":"SELL","price":140,"activeOrders":2}
				],
				"gold_ingot": [{"orderSide":"SELL","price":900,"activeOrders":1}]
			},
			"Farming": {"wheat": [{"orderSide":"BUY","price":3,"activeOrders":9}]}
		}`))
	})
}

// lastEmbed digs the first embed out of the most recent captured
// interaction response.
func lastEmbed(t *testing.T, ctx *TestContext) map[string]any {
	t.Helper()
	require.NotEmpty(t, ctx.Responses)
	last := ctx.Responses[len(ctx.Responses)-1]
	embeds, _ := last["embeds"].([]any)
	require.NotEmpty(t, embeds, "expected an embed response, got %v", last)
	return embeds[0].(map[string]any)
}

func lastContent(t *testing.T, ctx *TestContext) string {
	t.Helper()
	require.NotEmpty(t, ctx.Responses)
	content, _ := ctx.Responses[len(ctx.Responses)-1]["content"].(string)
	return content
}

func TestMarketCommand(t *testing.T) {
	_, handler := MarketCommand()

	t.Run("lists a category with pagination", func(t *testing.T) {
		ctx := SetupTestContext(t)
		serveMarket(ctx)

		handler(ctx.Session, newCommandInteraction("markt", []*discordgo.ApplicationCommandInteractionDataOption{
			stringOption("kategorie", "Ores"),
		}), ctx.Services)

		embed := lastEmbed(t, ctx)
		assert.Equal(t, "📦 Ores", embed["title"])
		assert.Contains(t, embed["description"], "Eisenbarren")
		assert.Contains(t, embed["description"], "120,0 $")
		assert.Contains(t, embed["description"], "Goldbarren")

		last := ctx.Responses[len(ctx.Responses)-1]
		assert.NotEmpty(t, last["components"], "listing carries pagination buttons")
		assert.Equal(t, 1, ctx.Services.Pages.Len())
	})

	t.Run("shows a single item of the category", func(t *testing.T) {
		ctx := SetupTestContext(t)
		serveMarket(ctx)

		handler(ctx.Session, newCommandInteraction("markt", []*discordgo.ApplicationCommandInteractionDataOption{
			stringOption("kategorie", "Ores"),
			stringOption("item", "Eisenbarren"),
		}), ctx.Services)

		embed := lastEmbed(t, ctx)
		assert.Equal(t, "Eisenbarren", embed["title"])
		thumbnail := embed["thumbnail"].(map[string]any)
		assert.Equal(t, itemImageURL("iron_ingot"), thumbnail["url"])
	})

	t.Run("accepts options in any order", func(t *testing.T) {
		ctx := SetupTestContext(t)
		serveMarket(ctx)

		handler(ctx.Session, newCommandInteraction("markt", []*discordgo.ApplicationCommandInteractionDataOption{
			stringOption("item", "Eisenbarren"),
			stringOption("kategorie", "Ores"),
		}), ctx.Services)

		embed := lastEmbed(t, ctx)
		assert.Equal(t, "Eisenbarren", embed["title"])
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		ctx := SetupTestContext(t)
		serveMarket(ctx)

		handler(ctx.Session, newCommandInteraction("markt", []*discordgo.ApplicationCommandInteractionDataOption{
			stringOption("kategorie", "Quatsch"),
		}), ctx.Services)

		assert.Equal(t, MsgUnknownCategory, lastContent(t, ctx))
	})

	t.Run("rejects an item outside the category", func(t *testing.T) {
		ctx := SetupTestContext(t)
		serveMarket(ctx)

		handler(ctx.Session, newCommandInteraction("markt", []*discordgo.ApplicationCommandInteractionDataOption{
			stringOption("kategorie", "Ores"),
			stringOption("item", "Weizen"),
		}), ctx.Services)

		assert.Equal(t, MsgUnknownItem, lastContent(t, ctx))
	})

	t.Run("reports an unreachable market", func(t *testing.T) {
		ctx := SetupTestContext(t)
		ctx.Mux.HandleFunc("/market/categories", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`["Ores"]`))
		})
		ctx.Mux.HandleFunc("/market/prices", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})

		handler(ctx.Session, newCommandInteraction("markt", []*discordgo.ApplicationCommandInteractionDataOption{
			stringOption("kategorie", "Ores"),
		}), ctx.Services)

		assert.Equal(t, MsgMarketEmpty, lastContent(t, ctx))
	})
}

func TestMarketItemCommand(t *testing.T) {
	_, handler := MarketItemCommand()

	t.Run("finds an item across categories", func(t *testing.T) {
		ctx := SetupTestContext(t)
		serveMarket(ctx)

		handler(ctx.Session, newCommandInteraction("markt-item", []*discordgo.ApplicationCommandInteractionDataOption{
			stringOption("item", "Weizen"),
		}), ctx.Services)

		embed := lastEmbed(t, ctx)
		assert.Equal(t, "Weizen", embed["title"])

		fields := embed["fields"].([]any)
		category := fields[0].(map[string]any)
		assert.Equal(t, "Farming", category["value"])
	})

	t.Run("accepts the raw identifier too", func(t *testing.T) {
		ctx := SetupTestContext(t)
		serveMarket(ctx)

		handler(ctx.Session, newCommandInteraction("markt-item", []*discordgo.ApplicationCommandInteractionDataOption{
			stringOption("item", "gold_ingot"),
		}), ctx.Services)

		embed := lastEmbed(t, ctx)
		assert.Equal(t, "Goldbarren", embed["title"])
	})

	t.Run("rejects an unknown item", func(t *testing.T) {
		ctx := SetupTestContext(t)
		serveMarket(ctx)

		handler(ctx.Session, newCommandInteraction("markt-item", []*discordgo.ApplicationCommandInteractionDataOption{
			stringOption("item", "Diamant"),
		}), ctx.Services)

		assert.Equal(t, MsgUnknownItem, lastContent(t, ctx))
	})
}
