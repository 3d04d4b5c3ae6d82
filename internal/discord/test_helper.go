package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/haragucci/opsucht-market-bot/internal/market"
	"github.com/haragucci/opsucht-market-bot/internal/translate"
)

// MockRoundTripper implements http.RoundTripper for intercepting the
// Discord REST calls a handler makes.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// TestContext bundles a fake marketplace upstream, a Services wired to
// it, and a Discord session whose REST calls are captured instead of
// sent.
type TestContext struct {
	Mux      *http.ServeMux
	Services *Services
	Session  *discordgo.Session

	// Captured bodies of interaction responses, in call order.
	Responses []map[string]any
}

// SetupTestContext builds the full handler test environment. Tests
// register marketplace endpoints on Mux before invoking handlers.
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := market.NewClient(server.URL, "bot", "secret")
	store := market.NewCategoryStore(client)
	cache := market.NewCache(client, store)
	translator := translate.NewIndex(map[string]string{
		"iron_ingot": "Eisenbarren",
		"gold_ingot": "Goldbarren",
		"wheat":      "Weizen",
	})

	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("Failed to create mock session: %v", err)
	}

	ctx := &TestContext{
		Mux:      mux,
		Services: NewServices(store, cache, translator),
		Session:  session,
	}

	session.Client = &http.Client{Transport: &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			if req.Body != nil {
				body, _ := io.ReadAll(req.Body)
				var decoded map[string]any
				if json.Unmarshal(body, &decoded) == nil {
					ctx.Responses = append(ctx.Responses, decoded)
				}
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("{}")),
				Header:     make(http.Header),
			}, nil
		},
	}}

	return ctx
}

// newAutocompleteInteraction builds an autocomplete interaction with
// the given command name and options.
func newAutocompleteInteraction(name string, options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "interaction-id",
			Token: "interaction-token",
			Type:  discordgo.InteractionApplicationCommandAutocomplete,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}

// newCommandInteraction builds a submitted slash command interaction.
func newCommandInteraction(name string, options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "interaction-id",
			Token: "interaction-token",
			Type:  discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}

// newComponentInteraction builds a button click interaction.
func newComponentInteraction(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "interaction-id",
			Token: "interaction-token",
			Type:  discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID: customID,
			},
		},
	}
}

// autocompleteChoices extracts the choice names from a captured
// interaction response body.
func autocompleteChoices(response map[string]any) []string {
	data, _ := response["data"].(map[string]any)
	raw, _ := data["choices"].([]any)

	names := make([]string, 0, len(raw))
	for _, entry := range raw {
		if choice, ok := entry.(map[string]any); ok {
			if name, ok := choice["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}
