// Package guard decides whether a protected view renders or redirects.
package guard

import "fashionhub/api"

// Redirect destinations. These are SPA routes; the server only ever hands
// them back, navigation is the caller's side effect.
const (
	LoginPath          = "/login"
	SuperAdminHomePath = "/super-admin"
	StoreAdminHomePath = "/admin"
	AccountHomePath    = "/account"
)

// Decision is the outcome for one protected-route render.
type Decision struct {
	Allow      bool   `json:"allow"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirectTo(path string) Decision {
	return Decision{RedirectTo: path}
}

// Decide evaluates the access rules in order, first match wins. A nil
// requiredRole means the route only needs authentication.
//
// When the role check fails the redirect is keyed by the viewer's own role,
// not by the role the route wanted: a super admin visiting a store-admin
// route lands on the super-admin home instead of being granted access. The
// storefront has always navigated this way and callers rely on it, so the
// table stays put pending a product decision.
func Decide(isAuthenticated bool, requiredRole *api.Role, viewerRole api.Role) Decision {
	if !isAuthenticated {
		return redirectTo(LoginPath)
	}
	if requiredRole != nil && viewerRole != *requiredRole {
		switch viewerRole {
		case api.SuperAdmin:
			return redirectTo(SuperAdminHomePath)
		case api.StoreAdmin:
			return redirectTo(StoreAdminHomePath)
		default:
			return redirectTo(AccountHomePath)
		}
	}
	return allow()
}
