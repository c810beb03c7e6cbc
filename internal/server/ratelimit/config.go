package ratelimit

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Tier names used by DefaultTiers.
const (
	TierHealth   = "health"
	TierAnalysis = "analysis"
	TierEdit     = "edit"
	TierDrafts   = "drafts"
)

// Tier is a named limit. Every route assigned to a tier draws from the same
// bucket for a given client.
type Tier struct {
	Name   string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration // refill period for Limit
	Burst  int           // bucket capacity, defaults to Limit when 0
}

// Route assigns requests to a tier. Pattern is "METHOD /path" where a
// segment written as {name} matches any single path segment.
type Route struct {
	Pattern string
	Tier    string
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Tiers           []Tier
	Routes          []Route // first match wins
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	tiers := DefaultTiers()
	for i := range tiers {
		if tiers[i].Name == TierAnalysis {
			tiers[i].Limit = getEnvInt("RATE_LIMIT_ANALYSIS_PER_HOUR", tiers[i].Limit)
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		Tiers:           tiers,
		Routes:          DefaultRoutes(),
	}
}

// DefaultTiers returns the builder's limit tiers. Analysis calls the external
// ATS service, so it is the strictest.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: TierHealth, Limit: 0},
		{Name: TierAnalysis, Limit: 30, Window: time.Hour, Burst: 5},
		{Name: TierEdit, Limit: 300, Window: time.Minute, Burst: 30},
		{Name: TierDrafts, Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// DefaultRoutes maps the builder API onto DefaultTiers. Reads and stateless
// derivations are left to the default limit.
func DefaultRoutes() []Route {
	return []Route{
		{Pattern: "GET /health", Tier: TierHealth},

		{Pattern: "POST /builder/analyze", Tier: TierAnalysis},
		{Pattern: "POST /builder/analyze/stream", Tier: TierAnalysis},

		{Pattern: "PUT /builder/state", Tier: TierEdit},
		{Pattern: "PATCH /builder/personal", Tier: TierEdit},
		{Pattern: "PUT /builder/skills", Tier: TierEdit},
		{Pattern: "POST /builder/{collection}", Tier: TierEdit},
		{Pattern: "PUT /builder/{collection}/{index}", Tier: TierEdit},
		{Pattern: "DELETE /builder/{collection}/{index}", Tier: TierEdit},

		{Pattern: "POST /drafts", Tier: TierDrafts},
		{Pattern: "DELETE /drafts/{id}", Tier: TierDrafts},
		{Pattern: "POST /drafts/{id}/restore", Tier: TierDrafts},
	}
}

// Validate checks that every route names a known tier and has a
// "METHOD /path" pattern.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.DefaultLimit > 0 && c.DefaultWindow <= 0 {
		return fmt.Errorf("rate limit default window must be positive")
	}
	known := make(map[string]bool, len(c.Tiers))
	for _, t := range c.Tiers {
		if t.Name == "" {
			return fmt.Errorf("rate limit tier has no name")
		}
		if known[t.Name] {
			return fmt.Errorf("rate limit tier %q declared twice", t.Name)
		}
		if t.Limit > 0 && t.Window <= 0 {
			return fmt.Errorf("rate limit tier %q: window must be positive", t.Name)
		}
		known[t.Name] = true
	}
	for _, r := range c.Routes {
		if _, _, ok := splitPattern(r.Pattern); !ok {
			return fmt.Errorf("rate limit route %q: want \"METHOD /path\"", r.Pattern)
		}
		if !known[r.Tier] {
			return fmt.Errorf("rate limit route %q: unknown tier %q", r.Pattern, r.Tier)
		}
	}
	return nil
}

// tier returns the tier with the given name, or nil.
func (c *Config) tier(name string) *Tier {
	for i := range c.Tiers {
		if c.Tiers[i].Name == name {
			return &c.Tiers[i]
		}
	}
	return nil
}

func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
