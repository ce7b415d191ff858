package identity

import (
	"github.com/swiftbasket/backend/internal/domain/shared"
)

// Role is the account role. Each user holds exactly one.
type Role string

const (
	RoleVendor Role = "vendor"
	RoleBuyer  Role = "buyer"
)

// IsValid reports whether the role is a known role
func (r Role) IsValid() bool {
	return r == RoleVendor || r == RoleBuyer
}

// ParseRole parses a role string
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", shared.NewDomainError("INVALID_ROLE", "Role must be vendor or buyer")
	}
	return r, nil
}

// Capability is a named permission in "resource:action" form.
// Capabilities are bound to roles statically rather than granted per
// user at registration time, so there is nothing to race on when two
// first-time registrants arrive concurrently.
type Capability string

const (
	CapCatalogRead   Capability = "catalog:read"
	CapStoreCreate   Capability = "store:create"
	CapStoreUpdate   Capability = "store:update"
	CapStoreDelete   Capability = "store:delete"
	CapProductCreate Capability = "product:create"
	CapProductUpdate Capability = "product:update"
	CapProductDelete Capability = "product:delete"
	CapCartManage    Capability = "cart:manage"
	CapOrderCreate   Capability = "order:create"
	CapOrderRead     Capability = "order:read"
	CapReviewCreate  Capability = "review:create"
)

// roleCapabilities is the static role to capability mapping
var roleCapabilities = map[Role][]Capability{
	RoleVendor: {
		CapCatalogRead,
		CapStoreCreate,
		CapStoreUpdate,
		CapStoreDelete,
		CapProductCreate,
		CapProductUpdate,
		CapProductDelete,
	},
	RoleBuyer: {
		CapCatalogRead,
		CapCartManage,
		CapOrderCreate,
		CapOrderRead,
		CapReviewCreate,
	},
}

// Capabilities returns the capability set for the role
func (r Role) Capabilities() []Capability {
	caps := roleCapabilities[r]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// CapabilityStrings returns the role's capabilities as plain strings,
// suitable for embedding in token claims.
func (r Role) CapabilityStrings() []string {
	caps := roleCapabilities[r]
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}

// HasCapability reports whether the role grants the capability
func (r Role) HasCapability(c Capability) bool {
	for _, rc := range roleCapabilities[r] {
		if rc == c {
			return true
		}
	}
	return false
}
