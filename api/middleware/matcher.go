package middleware

import "strings"

// WildcardSuffix marks a route pattern as covering the base path and every
// path under it, e.g. "/sign-in(.*)" covers "/sign-in" and "/sign-in/sso".
const WildcardSuffix = "(.*)"

// RouteMatcher classifies request paths against a fixed pattern set. A
// pattern is either an exact path ("/health") or a base path followed by
// WildcardSuffix. Patterns compile once at startup; Match runs per request.
type RouteMatcher struct {
	exact    map[string]struct{}
	subtrees []string
}

// NewRouteMatcher compiles the pattern list into a matcher.
func NewRouteMatcher(patterns []string) *RouteMatcher {
	m := &RouteMatcher{exact: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		if strings.HasSuffix(p, WildcardSuffix) {
			base := strings.TrimSuffix(p, WildcardSuffix)
			m.subtrees = append(m.subtrees, strings.TrimSuffix(base, "/"))
			continue
		}
		m.exact[p] = struct{}{}
	}
	return m
}

// Match reports whether path falls under any configured pattern. A wildcard
// pattern matches its base path exactly and any deeper segment, but never a
// sibling that merely shares the prefix ("/sign-in(.*)" does not match
// "/sign-input").
func (m *RouteMatcher) Match(path string) bool {
	if _, ok := m.exact[path]; ok {
		return true
	}
	for _, base := range m.subtrees {
		if path == base || strings.HasPrefix(path, base+"/") {
			return true
		}
	}
	return false
}
