package domain

// Canonical role names. Role records are free-form, but the business rules
// only recognize these three; anything else maps to RoleUnknown.
const (
	RoleNameAdmin  = "ADMIN"
	RoleNameSeller = "SELLER"
	RoleNameClient = "CLIENT"
)

// RoleKind is the closed classification of a role name used by the
// product assignment rules.
type RoleKind int

const (
	RoleUnknown RoleKind = iota
	RoleAdmin
	RoleSeller
	RoleClient
)

// KindOfRole maps a role name to its kind. Matching is exact; unrecognized
// names classify as RoleUnknown rather than failing.
func KindOfRole(name string) RoleKind {
	switch name {
	case RoleNameAdmin:
		return RoleAdmin
	case RoleNameSeller:
		return RoleSeller
	case RoleNameClient:
		return RoleClient
	default:
		return RoleUnknown
	}
}

// String returns the canonical name for the kind, "UNKNOWN" otherwise.
func (k RoleKind) String() string {
	switch k {
	case RoleAdmin:
		return RoleNameAdmin
	case RoleSeller:
		return RoleNameSeller
	case RoleClient:
		return RoleNameClient
	default:
		return "UNKNOWN"
	}
}

// Role is a named grouping of users (e.g. ADMIN, SELLER, CLIENT).
type Role struct {
	ID   string `bson:"_id,omitempty"`
	Name string `bson:"name"`
}
