package guard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fashionhub/api"
)

func rolePtr(role api.Role) *api.Role {
	return &role
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name            string
		isAuthenticated bool
		requiredRole    *api.Role
		viewerRole      api.Role
		want            Decision
	}{
		{
			"unauthenticated always redirects to login",
			false, rolePtr(api.StoreAdmin), api.StoreAdmin,
			Decision{RedirectTo: LoginPath},
		},
		{
			"unauthenticated without required role still redirects to login",
			false, nil, api.Role(""),
			Decision{RedirectTo: LoginPath},
		},
		{
			"customer on store admin route lands on account home",
			true, rolePtr(api.StoreAdmin), api.Customer,
			Decision{RedirectTo: AccountHomePath},
		},
		{
			"super admin on store admin route lands on super admin home",
			true, rolePtr(api.StoreAdmin), api.SuperAdmin,
			Decision{RedirectTo: SuperAdminHomePath},
		},
		{
			"store admin on super admin route lands on store admin home",
			true, rolePtr(api.SuperAdmin), api.StoreAdmin,
			Decision{RedirectTo: StoreAdminHomePath},
		},
		{
			"matching role renders",
			true, rolePtr(api.StoreAdmin), api.StoreAdmin,
			Decision{Allow: true},
		},
		{
			"authenticated route without role requirement renders",
			true, nil, api.Customer,
			Decision{Allow: true},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, Decide(test.isAuthenticated, test.requiredRole, test.viewerRole))
		})
	}
}

func TestDecideIsPure(t *testing.T) {
	required := rolePtr(api.StoreAdmin)
	first := Decide(true, required, api.SuperAdmin)
	second := Decide(true, required, api.SuperAdmin)
	require.Equal(t, first, second)
}
