// Package routeguard decides whether a navigation may render a
// protected view. The decision is a pure function of the current
// identity, the session-resolution state, and the view's allowed
// roles; it performs no I/O and never fails.
package routeguard

import (
	"go-hris-suite/internal/model"
)

// Outcome enumerates the possible guard results.
type Outcome int

const (
	// OutcomeWait means the session is still being resolved; render a
	// neutral loading state and make no redirect decision yet.
	OutcomeWait Outcome = iota
	// OutcomeAllow renders the protected view.
	OutcomeAllow
	// OutcomeRedirect sends the user to Decision.Target.
	OutcomeRedirect
)

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Outcome Outcome
	// Target is the redirect path; set only when Outcome is
	// OutcomeRedirect.
	Target string
}

// Decide gates access to a protected view.
//
// Rules, in order:
//  1. session still resolving -> wait, no redirect (prevents a flash
//     redirect to login before rehydration completes);
//  2. no identity -> redirect to login;
//  3. allowed roles declared and the identity's role not among them ->
//     redirect to that role's own dashboard (login if the role is
//     somehow unknown);
//  4. otherwise allow.
func Decide(identity *model.Identity, loading bool, allowedRoles []model.Role) Decision {
	if loading {
		return Decision{Outcome: OutcomeWait}
	}

	if identity == nil {
		return Decision{Outcome: OutcomeRedirect, Target: model.LoginPath}
	}

	if len(allowedRoles) > 0 && !roleAllowed(identity.Role, allowedRoles) {
		// HomePath falls back to the login path for unknown roles.
		return Decision{Outcome: OutcomeRedirect, Target: identity.Role.HomePath()}
	}

	return Decision{Outcome: OutcomeAllow}
}

func roleAllowed(role model.Role, allowed []model.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
