// Package gate decides whether a session may access a screen. The decision
// function is pure: it consumes a session view plus the screen's allowed-roles
// set and produces one of three outcomes, with no side effects.
package gate

import (
	"homehelper/models"
	"homehelper/utils"
)

// OutcomeKind enumerates the three possible gate decisions.
type OutcomeKind int

const (
	// Render lets the requested screen through.
	Render OutcomeKind = iota
	// RedirectToLogin sends an unauthenticated session to the login screen.
	RedirectToLogin
	// RedirectToRoleHome sends a wrong-role session to its own home screen.
	RedirectToRoleHome
)

// Outcome is the gate's decision. Path is set for both redirect kinds; From
// carries the originally requested location on a login redirect so the login
// flow can return the user afterward.
type Outcome struct {
	Kind OutcomeKind
	Path string
	From string
}

// View is the slice of session state the gate consumes.
type View struct {
	IsAuthenticated bool
	IsLoading       bool
	Role            models.Role
}

// HomePathFor maps a role to its home route. Total over all inputs: unknown
// roles fall back to the generic home.
func HomePathFor(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return utils.RouteAdminDashboard
	case models.RoleProvider:
		return utils.RouteProviderDashboard
	case models.RoleUser:
		return utils.RouteUserServices
	}
	return utils.RouteHome
}

// Decide gates access to a screen declared with allowedRoles. An empty
// allowedRoles set admits any authenticated session. Callers must check
// View.IsLoading first and show a loading state instead of consulting the
// gate while session recovery is still in flight.
func Decide(view View, allowedRoles []models.Role, requested string) Outcome {
	if !view.IsAuthenticated {
		return Outcome{Kind: RedirectToLogin, Path: utils.RouteLogin, From: requested}
	}
	if len(allowedRoles) > 0 && !containsRole(allowedRoles, view.Role) {
		return Outcome{Kind: RedirectToRoleHome, Path: HomePathFor(view.Role)}
	}
	return Outcome{Kind: Render}
}

// RedirectHome implements the generic "/dashboard" entry point: it redirects
// an unauthenticated session to login, otherwise to the role's home. It
// reports ok=false while the session is still loading; callers must re-run it
// once loading completes.
func RedirectHome(view View) (Outcome, bool) {
	if view.IsLoading {
		return Outcome{}, false
	}
	if !view.IsAuthenticated {
		return Outcome{Kind: RedirectToLogin, Path: utils.RouteLogin, From: utils.RouteDashboard}, true
	}
	return Outcome{Kind: RedirectToRoleHome, Path: HomePathFor(view.Role)}, true
}

func containsRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
