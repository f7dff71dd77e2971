// Package guard gates rendering of protected view trees on session state.
// It is purely derived state: evaluating a guard never mutates the session.
package guard

import (
	"github.com/FarhanAlam-Official/GharSaathi/internal/auth"
)

// Action tells the caller what to do with the protected subtree.
type Action int

const (
	// ShowLoading: session state is still resolving; render a neutral
	// loading indicator only.
	ShowLoading Action = iota
	// Render: the subtree may be shown unchanged.
	Render
	// RedirectLogin: authentication required and absent; render nothing.
	RedirectLogin
	// RedirectUnauthorized: authenticated but the role is not allowed;
	// render nothing.
	RedirectUnauthorized
)

// Decision carries the action and, for redirects, the target route.
type Decision struct {
	Action Action
	Route  string
}

// Requirements describe a protected view. An empty AllowedRoles set means any
// authenticated user may enter.
type Requirements struct {
	RequireAuth  bool
	AllowedRoles []auth.Role
}

// Evaluate applies the gate. session is nil when unauthenticated.
func Evaluate(loading bool, session *auth.Session, req Requirements) Decision {
	if loading {
		return Decision{Action: ShowLoading}
	}
	if req.RequireAuth && session == nil {
		return Decision{Action: RedirectLogin, Route: auth.RouteLogin}
	}
	if session != nil && len(req.AllowedRoles) > 0 && !roleAllowed(session.Role, req.AllowedRoles) {
		return Decision{Action: RedirectUnauthorized, Route: auth.RouteUnauthorized}
	}
	return Decision{Action: Render}
}

func roleAllowed(role auth.Role, allowed []auth.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
