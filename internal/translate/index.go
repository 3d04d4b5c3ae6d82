package translate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// MaxChoices is the hard cap on ranked candidates. Discord rejects
// autocomplete responses with more than 25 choices, so this is an
// interface contract, not a tuning knob.
const MaxChoices = 25

// Choice pairs an item identifier with its human-readable display name.
type Choice struct {
	DisplayName string
	ItemID      string
}

// Index maps internal item identifiers to display names. It is loaded
// once at startup and read-only afterwards, so lookups need no locking.
type Index struct {
	names map[string]string
}

// Load reads a translation table from a JSON file of the form
// {"item_id": "Display Name"}.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation file: %w", err)
	}

	var names map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to parse translation file %s: %w", path, err)
	}

	return NewIndex(names), nil
}

// NewIndex builds an index from an in-memory table.
func NewIndex(names map[string]string) *Index {
	if names == nil {
		names = map[string]string{}
	}
	return &Index{names: names}
}

// DisplayName returns the translated name for an item, falling back to
// the raw identifier when no translation exists.
func (ix *Index) DisplayName(itemID string) string {
	if name, ok := ix.names[itemID]; ok {
		return name
	}
	return itemID
}

// ReverseLookup maps a display name back to its item identifier. Input
// that matches no translation is assumed to already be an identifier.
// This is a linear scan over the table; the table is small and loaded
// once, so no reverse map is maintained.
func (ix *Index) ReverseLookup(displayName string) string {
	for itemID, name := range ix.names {
		if name == displayName {
			return itemID
		}
	}
	return displayName
}

// RankCandidates filters candidates down to those whose display name or
// raw identifier contains the query, case-insensitively. The candidate
// order is preserved (stable filter, no scoring) and the result is
// truncated at MaxChoices.
func (ix *Index) RankCandidates(query string, candidates []string) []Choice {
	needle := strings.ToLower(query)

	var choices []Choice
	for _, itemID := range candidates {
		display := ix.DisplayName(itemID)
		if needle == "" ||
			strings.Contains(strings.ToLower(display), needle) ||
			strings.Contains(strings.ToLower(itemID), needle) {
			choices = append(choices, Choice{DisplayName: display, ItemID: itemID})
		}
		if len(choices) >= MaxChoices {
			break
		}
	}
	return choices
}
