// Package guard contains the route access policy decisions. The logic is
// a pure function over the caller's session state and the freshly loaded
// account, so a deactivated or deleted account loses access on its very
// next request rather than at session expiry.
package guard

import "github.com/expense-tracker/internal/models"

// Policy is a route-level access requirement
type Policy int

const (
	// LoginRequired admits any authenticated, active account
	LoginRequired Policy = iota
	// UserOnly admits regular users; admins are sent to the admin area
	UserOnly
	// AdminRequired admits admins; users are sent to their dashboard
	AdminRequired
)

// Target is the entry point a rejected caller should navigate to
type Target string

const (
	TargetLogin          Target = "/login"
	TargetDashboard      Target = "/dashboard"
	TargetAdminDashboard Target = "/admin"
)

// Decision is the outcome of evaluating a policy for one request
type Decision struct {
	Allow bool
	// ClearSession is set when the session references a missing or
	// deactivated account and must be destroyed
	ClearSession bool
	Target       Target
	Reason       string
}

var allow = Decision{Allow: true}

// Evaluate classifies the caller and applies the policy. hasSession
// reports whether a session token resolved to stored session data; user is
// the account loaded for that session, nil when it no longer exists.
func Evaluate(policy Policy, hasSession bool, user *models.User) Decision {
	if !hasSession {
		return Decision{
			Target: TargetLogin,
			Reason: "Please log in to access this page.",
		}
	}

	if user == nil || !user.IsActive {
		return Decision{
			ClearSession: true,
			Target:       TargetLogin,
			Reason:       "Your session has expired. Please log in again.",
		}
	}

	switch policy {
	case UserOnly:
		if user.Role == models.RoleAdmin {
			return Decision{
				Target: TargetAdminDashboard,
				Reason: "Access denied. This page is for regular users only.",
			}
		}
	case AdminRequired:
		if user.Role != models.RoleAdmin {
			return Decision{
				Target: TargetDashboard,
				Reason: "Access denied. Admin privileges required.",
			}
		}
	}

	return allow
}
