package core

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

type RouteAccess int

const (
	// Protected routes require a verified bearer token.
	Protected RouteAccess = iota
	// Public routes run without a token.
	Public
)

// RouteRule maps a path pattern to an access level. Patterns are glob
// expressions with '/' as the separator, so "*" stays within one path
// segment and "**" spans segments. A pattern ending in "/**" also matches
// the bare prefix: "/api/auth/**" covers "/api/auth" itself.
type RouteRule struct {
	Pattern string
	Access  RouteAccess
}

type compiledRule struct {
	RouteRule
	matcher glob.Glob
	base    string
}

// RoutePolicy is an ordered, first-match-wins set of route rules, built once
// at startup and immutable afterwards. Paths matching no rule are Protected.
type RoutePolicy struct {
	rules []compiledRule
}

func NewRoutePolicy(rules ...RouteRule) (*RoutePolicy, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		m, err := glob.Compile(r.Pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling route pattern %q: %w", r.Pattern, err)
		}
		c := compiledRule{RouteRule: r, matcher: m}
		if base, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
			c.base = base
		}
		compiled = append(compiled, c)
	}
	return &RoutePolicy{rules: compiled}, nil
}

// Access returns the access level of the first rule matching path, or
// Protected when nothing matches.
func (p *RoutePolicy) Access(path string) RouteAccess {
	for _, r := range p.rules {
		if r.matcher.Match(path) || (r.base != "" && path == r.base) {
			return r.Access
		}
	}
	return Protected
}

func (p *RoutePolicy) IsPublic(path string) bool {
	return p.Access(path) == Public
}
