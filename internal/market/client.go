package market

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/haragucci/opsucht-market-bot/internal/domain"
	"github.com/haragucci/opsucht-market-bot/internal/logger"
	"github.com/haragucci/opsucht-market-bot/internal/metrics"
)

// Client issues requests against the upstream marketplace API.
//
// All fetch methods are fail-soft: transport errors, non-2xx statuses,
// empty bodies and malformed JSON are logged and degrade to an empty
// result. Callers cannot distinguish "upstream broken" from "no data".
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient creates an upstream client with fixed Basic-Auth credentials.
func NewClient(baseURL, username, password string) *Client {
	auth := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: "Basic " + auth,
		httpClient: &http.Client{Timeout: RequestTimeout},
	}
}

// get performs one GET against the given endpoint and returns the raw
// body, or nil when anything went wrong.
func (c *Client) get(ctx context.Context, endpoint string) []byte {
	log := logger.FromContext(ctx)
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint).Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		metrics.UpstreamRequestErrors.WithLabelValues(endpoint).Inc()
		log.Error("Failed to build upstream request", "endpoint", endpoint, "error", err)
		return nil
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestErrors.WithLabelValues(endpoint).Inc()
		log.Error("Upstream request failed", "endpoint", endpoint, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestErrors.WithLabelValues(endpoint).Inc()
		log.Warn("Upstream returned non-OK status", "endpoint", endpoint, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestErrors.WithLabelValues(endpoint).Inc()
		log.Error("Failed to read upstream response", "endpoint", endpoint, "error", err)
		return nil
	}

	if len(body) == 0 {
		metrics.UpstreamDecodeFailures.WithLabelValues(endpoint).Inc()
		log.Warn("Empty response from upstream", "endpoint", endpoint)
		return nil
	}

	return body
}

// FetchCategories returns the category list, or nil when the upstream
// response is missing or unusable. Both upstream schema variants are
// accepted: a JSON array of strings and an array of objects carrying a
// name field. Normalization happens here so the rest of the system only
// ever sees domain.Category.
func (c *Client) FetchCategories(ctx context.Context) []domain.Category {
	body := c.get(ctx, EndpointCategories)
	if body == nil {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		metrics.UpstreamDecodeFailures.WithLabelValues(EndpointCategories).Inc()
		logger.FromContext(ctx).Warn("Malformed categories payload", "error", err)
		return nil
	}

	categories := make([]domain.Category, 0, len(raw))
	for _, entry := range raw {
		var name string
		if err := json.Unmarshal(entry, &name); err == nil {
			categories = append(categories, domain.Category{Name: name})
			continue
		}
		var obj domain.Category
		if err := json.Unmarshal(entry, &obj); err == nil && obj.Name != "" {
			categories = append(categories, obj)
			continue
		}
		logger.FromContext(ctx).Warn("Skipping unrecognized category entry", "entry", string(entry))
	}

	return categories
}

// FetchCategoryOrders returns the order books for all items in one
// category, keyed by item identifier. A category absent from the
// payload yields an empty result, as does any decode failure.
func (c *Client) FetchCategoryOrders(ctx context.Context, category string) map[string][]domain.Order {
	body := c.get(ctx, EndpointPrices)
	if body == nil {
		return nil
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.UpstreamDecodeFailures.WithLabelValues(EndpointPrices).Inc()
		logger.FromContext(ctx).Warn("Malformed prices payload", "error", err)
		return nil
	}

	block, ok := payload[category]
	if !ok {
		return nil
	}

	var items map[string][]domain.Order
	if err := json.Unmarshal(block, &items); err != nil {
		metrics.UpstreamDecodeFailures.WithLabelValues(EndpointPrices).Inc()
		logger.FromContext(ctx).Warn("Malformed category block", "category", category, "error", err)
		return nil
	}

	return items
}

// FetchAllItems returns the flattened full catalog keyed by item
// identifier. Category blocks that are not JSON objects are skipped,
// matching the lenient upstream contract.
func (c *Client) FetchAllItems(ctx context.Context) map[string]domain.CatalogEntry {
	body := c.get(ctx, EndpointItems)
	if body == nil {
		return nil
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.UpstreamDecodeFailures.WithLabelValues(EndpointItems).Inc()
		logger.FromContext(ctx).Warn("Malformed items payload", "error", err)
		return nil
	}

	catalog := make(map[string]domain.CatalogEntry)
	for category, block := range payload {
		var items map[string][]domain.Order
		if err := json.Unmarshal(block, &items); err != nil {
			logger.FromContext(ctx).Warn("Skipping malformed category block", "category", category, "error", err)
			continue
		}
		for item, orders := range items {
			catalog[item] = domain.CatalogEntry{Category: category, Orders: orders}
		}
	}

	return catalog
}
