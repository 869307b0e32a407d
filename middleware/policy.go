package middleware

import (
	"net/http"

	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"
)

// Policy is the explicit access rule applied after credential resolution.
// The tagged variants replace the old allow-by-negation convention: a route
// that wants "any staff" says RequireNotRole("Customer") at the route table
// instead of relying on an implicit default.
type policyKind int

const (
	policyAny policyKind = iota
	policyRole
	policyNotRole
)

type Policy struct {
	kind policyKind
	role string
}

// RequireAny allows every resolved identity regardless of role.
func RequireAny() Policy { return Policy{kind: policyAny} }

// RequireRole allows only identities whose role name matches exactly
// (case-sensitive, no synonyms, no hierarchy).
func RequireRole(role string) Policy { return Policy{kind: policyRole, role: role} }

// RequireNotRole allows identities holding any role other than the given one.
// An identity with no role information is denied, not crashed on.
func RequireNotRole(role string) Policy { return Policy{kind: policyNotRole, role: role} }

// Allows applies the policy to a role name.
func (p Policy) Allows(role string) bool {
	switch p.kind {
	case policyAny:
		return true
	case policyRole:
		return role == p.role
	case policyNotRole:
		return role != "" && role != p.role
	}
	return false
}

// GateMode selects how denials surface: API routes get JSON, web routes get
// a redirect with a flash message.
type GateMode int

const (
	GateAPI GateMode = iota
	GateWeb
)

const deniedMessage = "Bạn không có quyền truy cập trang này"

// Gate returns middleware enforcing the policy against the identity resolved
// earlier in the chain. It is stateless; the only side effect is the
// response it writes on deny.
func Gate(p Policy, mode GateMode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r)
			if !ok {
				if mode == GateWeb {
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if !p.Allows(identity.Role) {
				if mode == GateWeb {
					utils.SetFlash(w, r, deniedMessage)
					http.Redirect(w, r, "/", http.StatusFound)
					return
				}
				utils.WriteError(w, http.StatusForbidden, deniedMessage)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
