package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the configuration for a request, or nil when none applies.
// Exact paths win over prefix entries (paths ending in "/"); among prefixes the longest wins.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	var best *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != "*" && !strings.EqualFold(cfg.Method, method) {
			continue
		}
		if cfg.Path == path {
			return cfg
		}
		if strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) {
			if best == nil || len(cfg.Path) > len(best.Path) {
				best = cfg
			}
		}
	}
	return best
}
