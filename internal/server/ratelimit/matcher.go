package ratelimit

import (
	"strings"
)

// Match returns the tier of the first route matching method and path, or nil
// when the request falls to the default limit.
func (c *Config) Match(method, path string) *Tier {
	segments := splitPath(path)
	for _, r := range c.Routes {
		m, p, ok := splitPattern(r.Pattern)
		if !ok || m != method {
			continue
		}
		if segmentsMatch(splitPath(p), segments) {
			return c.tier(r.Tier)
		}
	}
	return nil
}

// splitPattern splits "METHOD /path" into its method and path.
func splitPattern(pattern string) (method, path string, ok bool) {
	method, path, ok = strings.Cut(pattern, " ")
	if !ok || method == "" || !strings.HasPrefix(path, "/") {
		return "", "", false
	}
	return method, path, true
}

// splitPath drops leading and trailing slashes so "/drafts/" and "/drafts"
// match the same routes.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func segmentsMatch(pattern, path []string) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if path[i] == "" {
				return false
			}
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return true
}
