package discord

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/haragucci/opsucht-market-bot/internal/metrics"
	"github.com/haragucci/opsucht-market-bot/internal/translate"
)

// HandleAutocomplete routes autocomplete interactions to the
// appropriate handler.
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	data := i.ApplicationCommandData()
	metrics.AutocompleteTotal.WithLabelValues(data.Name).Inc()

	switch data.Name {
	case "markt":
		if focusedOptionName(data.Options) == "item" {
			handleCategoryItemAutocomplete(s, i, svc)
			return
		}
		handleCategoryAutocomplete(s, i, svc)
	case "markt-item":
		handleCatalogItemAutocomplete(s, i, svc)
	default:
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
	}
}

// handleCategoryAutocomplete suggests category names. A cold category
// store triggers an upstream fetch, so the work is bounded by
// InteractionTimeout and degrades to no suggestions.
func handleCategoryAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	focused := getFocusedOptionValue(i.ApplicationCommandData().Options)

	names := svc.memoizedChoices(suggestKey("markt", "kategorie", "", focused), func() []string {
		ctx, cancel := interactionContext()
		defer cancel()

		categories := svc.Store.Categories(ctx)
		recordTimeout(ctx, "markt")

		var names []string
		for _, category := range categories {
			if focused == "" || strings.Contains(strings.ToLower(category.Name), focused) {
				names = append(names, category.Name)
			}
			if len(names) >= translate.MaxChoices {
				break
			}
		}
		return names
	})

	respondChoices(s, i, names)
}

// handleCategoryItemAutocomplete suggests items within the already
// chosen category of a /markt interaction.
func handleCategoryItemAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	options := i.ApplicationCommandData().Options
	category := optionValue(options, "kategorie")
	if category == "" {
		respondChoices(s, i, nil)
		return
	}

	focused := getFocusedOptionValue(options)
	names := svc.memoizedChoices(suggestKey("markt", "item", category, focused), func() []string {
		ctx, cancel := interactionContext()
		defer cancel()

		items := svc.Cache.ItemsForCategory(ctx, category)
		recordTimeout(ctx, "markt")

		return rankedNames(svc, focused, sortedItemIDs(items))
	})

	respondChoices(s, i, names)
}

// handleCatalogItemAutocomplete suggests items across the full catalog
// for /markt-item. The first call on a cold cache builds the catalog.
func handleCatalogItemAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	focused := getFocusedOptionValue(i.ApplicationCommandData().Options)

	names := svc.memoizedChoices(suggestKey("markt-item", "item", "", focused), func() []string {
		ctx, cancel := interactionContext()
		defer cancel()

		catalog := svc.Cache.FullCatalog(ctx)
		recordTimeout(ctx, "markt-item")

		return rankedNames(svc, focused, sortedItemIDs(catalog))
	})

	respondChoices(s, i, names)
}

// memoizedChoices serves a choice list from the suggestion memo,
// building and storing it on miss.
func (svc *Services) memoizedChoices(key string, build func() []string) []string {
	if cached, ok := svc.Suggest.Get(key); ok {
		return cached
	}
	names := build()
	svc.Suggest.Add(key, names)
	return names
}

// suggestKey scopes a memo entry to one command, option, category and
// query.
func suggestKey(command, option, category, query string) string {
	return command + "\x00" + option + "\x00" + category + "\x00" + query
}

// rankedNames translates and filters candidates into display names.
// Handlers map a chosen display name back to its item identifier on
// submit.
func rankedNames(svc *Services, query string, candidates []string) []string {
	ranked := svc.Translator.RankCandidates(query, candidates)

	names := make([]string, 0, len(ranked))
	for _, choice := range ranked {
		names = append(names, choice.DisplayName)
	}
	return names
}

func getFocusedOptionValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range options {
		if opt.Focused {
			return strings.ToLower(opt.StringValue())
		}
	}
	return ""
}

func focusedOptionName(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range options {
		if opt.Focused {
			return opt.Name
		}
	}
	return ""
}

func recordTimeout(ctx context.Context, command string) {
	if ctx.Err() == context.DeadlineExceeded {
		metrics.AutocompleteTimeouts.WithLabelValues(command).Inc()
	}
}

func respondChoices(s *discordgo.Session, i *discordgo.InteractionCreate, names []string) {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}
