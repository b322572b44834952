package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"time"

	"decision-service/internal/config"
	"decision-service/internal/models"

	"github.com/redis/go-redis/v9"
)

const opportunitiesCacheKey = "market:opportunities"

// IMarketClient is the collaborator contract for the market-opportunity feed.
type IMarketClient interface {
	GetOpportunities(ctx context.Context) ([]models.MarketOpportunity, error)
}

// Client fetches market opportunities from the external feed, caching
// snapshots in Redis to keep decision generation cheap.
type Client struct {
	cfg   config.MarketAPIConfig
	cache *redis.Client
	ttl   time.Duration
}

// NewClient builds a market feed client. The cache client may be nil, in
// which case every call hits the upstream feed.
func NewClient(cfg config.MarketAPIConfig, cache *redis.Client) IMarketClient {
	ttl := time.Duration(cfg.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Client{cfg: cfg, cache: cache, ttl: ttl}
}

// GetOpportunities returns the current market-opportunity snapshot. An empty
// or unavailable feed yields an empty list; the caller treats that as "no
// market candidates", not an error.
func (c *Client) GetOpportunities(ctx context.Context) ([]models.MarketOpportunity, error) {
	if cached, ok := c.fromCache(ctx); ok {
		return cached, nil
	}

	opportunities, err := c.fetch()
	if err != nil {
		slog.Warn("Market feed unavailable, continuing without market candidates", "error", err)
		return []models.MarketOpportunity{}, nil
	}

	c.toCache(ctx, opportunities)
	return opportunities, nil
}

func (c *Client) fetch() ([]models.MarketOpportunity, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("market API key not configured")
	}

	url := fmt.Sprintf("%s/opportunities?appid=%s", c.cfg.BaseURL, c.cfg.APIKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		log.Printf("Error calling market API: %v", err)
		return nil, fmt.Errorf("failed to call market API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading market response body: %v", err)
		return nil, fmt.Errorf("failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Market API returned non-200 status: %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("market API error: %s", string(body))
	}

	var opportunities []models.MarketOpportunity
	if err := json.Unmarshal(body, &opportunities); err != nil {
		log.Printf("Error unmarshaling market opportunities: %v", err)
		return nil, fmt.Errorf("failed to parse response")
	}

	return opportunities, nil
}

func (c *Client) fromCache(ctx context.Context) ([]models.MarketOpportunity, bool) {
	if c.cache == nil {
		return nil, false
	}

	raw, err := c.cache.Get(ctx, opportunitiesCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var opportunities []models.MarketOpportunity
	if err := json.Unmarshal(raw, &opportunities); err != nil {
		slog.Warn("Discarding corrupt market cache entry", "error", err)
		return nil, false
	}
	return opportunities, true
}

func (c *Client) toCache(ctx context.Context, opportunities []models.MarketOpportunity) {
	if c.cache == nil {
		return
	}

	raw, err := json.Marshal(opportunities)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, opportunitiesCacheKey, raw, c.ttl).Err(); err != nil {
		slog.Warn("Failed to cache market opportunities", "error", err)
	}
}
