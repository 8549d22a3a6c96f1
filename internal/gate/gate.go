// Package gate decides whether protected content or routes are shown to the
// principal of a portal session.
package gate

import (
	"html/template"
)

// Subject is what a gate evaluates: the session store of the current request.
type Subject interface {
	Settled() bool
	HasPermission(code string) bool
	HasAnyPermission(codes []string) bool
	HasAllPermissions(codes []string) bool
}

// Gate holds the access criteria of a protected element.
//
// Permission takes precedence over Permissions. A nil Permissions with an empty
// Permission means no criteria: the element is shown once the subject is settled.
// An empty, non-nil Permissions is a list check: never granted with RequireAll
// false, always granted with RequireAll true.
type Gate struct {
	Permission  string
	Permissions []string
	RequireAll  bool
}

// One gates on a single permission.
func One(code string) Gate {
	return Gate{Permission: code}
}

// Any gates on at least one of codes.
func Any(codes ...string) Gate {
	if codes == nil {
		codes = []string{}
	}

	return Gate{Permissions: codes}
}

// All gates on every one of codes.
func All(codes ...string) Gate {
	if codes == nil {
		codes = []string{}
	}

	return Gate{Permissions: codes, RequireAll: true}
}

// Allows evaluates g for s. An unsettled or missing subject is never allowed.
func (g Gate) Allows(s Subject) bool {
	if s == nil || !s.Settled() {
		return false
	}

	switch {
	case g.Permission != "":
		return s.HasPermission(g.Permission)
	case g.Permissions != nil && g.RequireAll:
		return s.HasAllPermissions(g.Permissions)
	case g.Permissions != nil:
		return s.HasAnyPermission(g.Permissions)
	default:
		return true
	}
}

// Render returns children when g allows s, fallback otherwise.
func Render(s Subject, g Gate, children, fallback template.HTML) template.HTML {
	if g.Allows(s) {
		return children
	}

	return fallback
}
