package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutePolicy(t *testing.T) {
	policy, err := NewRoutePolicy(
		RouteRule{Pattern: "/api/auth/**", Access: Public},
		RouteRule{Pattern: "/api/search/**", Access: Public},
		RouteRule{Pattern: "/api/weather/**", Access: Public},
		RouteRule{Pattern: "/api/locations/**", Access: Public},
	)
	require.Nil(t, err)

	tcs := []struct {
		path string
		exp  RouteAccess
	}{
		{"/api/auth/login", Public},
		{"/api/auth/register", Public},
		{"/api/auth/me", Public},
		{"/api/auth", Public},
		{"/api/weather", Public},
		{"/api/search", Public},
		{"/api/locations/abc123", Public},
		{"/api/locations", Public},
		{"/api/destinations", Protected},
		{"/api/hazards", Protected},
		{"/api/users/me", Protected},
		{"/api/authx", Protected},
		{"/", Protected},
		{"/api", Protected},
	}

	for _, tc := range tcs {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.exp, policy.Access(tc.path), "path %s", tc.path)
		})
	}
}

func TestRoutePolicyFirstMatchWins(t *testing.T) {
	policy, err := NewRoutePolicy(
		RouteRule{Pattern: "/api/admin/**", Access: Protected},
		RouteRule{Pattern: "/api/**", Access: Public},
	)
	require.Nil(t, err)

	assert.Equal(t, Protected, policy.Access("/api/admin/users"))
	assert.Equal(t, Public, policy.Access("/api/anything/else"))
}

func TestRoutePolicyBadPattern(t *testing.T) {
	_, err := NewRoutePolicy(RouteRule{Pattern: "/api/[", Access: Public})
	assert.NotNil(t, err)
}
