package enum

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of user roles the terminal understands. The
// upstream API reports roles as display strings; everything past the auth
// boundary works with this enum instead of ad hoc string comparisons.
type Role int

const (
	RoleAdmin         Role = 0
	RoleBranchOfficer Role = 1
	RoleCashier       Role = 2
)

// Capability names a terminal feature a role may use.
type Capability string

const (
	CapabilityBranches  Capability = "branches"
	CapabilityDashboard Capability = "dashboard"
	CapabilityInventory Capability = "inventory"
	CapabilityAssets    Capability = "assets"
	CapabilityReports   Capability = "reports"
	CapabilityPOS       Capability = "pos"
)

// roleCapabilities is the single role -> capability table. Mirrors the
// product's routing: admins administer branches but do not run the till,
// cashiers only run the till.
var roleCapabilities = map[Role][]Capability{
	RoleAdmin:         {CapabilityBranches, CapabilityDashboard, CapabilityInventory, CapabilityAssets, CapabilityReports},
	RoleBranchOfficer: {CapabilityDashboard, CapabilityInventory, CapabilityAssets, CapabilityReports},
	RoleCashier:       {CapabilityPOS},
}

// defaultRoutes is where each role lands after login.
var defaultRoutes = map[Role]string{
	RoleAdmin:         "/admin/branch-management",
	RoleBranchOfficer: "/branch-officer/dashboard",
	RoleCashier:       "/cashier/pos",
}

func (r Role) String() string {
	names := [...]string{"Admin", "Branch Officer", "Cashier"}
	if int(r) < 0 || int(r) >= len(names) {
		return "Admin"
	}
	return names[r]
}

// Can reports whether the role holds the given capability.
func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

// Capabilities returns the full capability list for the role.
func (r Role) Capabilities() []Capability {
	caps := roleCapabilities[r]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// DefaultRoute returns the landing route for the role.
func (r Role) DefaultRoute() string {
	return defaultRoutes[r]
}

// ParseRole maps the upstream role name onto the enum.
func ParseRole(s string) (Role, error) {
	switch s {
	case "Admin", "admin":
		return RoleAdmin, nil
	case "Branch Officer", "branch-officer":
		return RoleBranchOfficer, nil
	case "Cashier", "cashier":
		return RoleCashier, nil
	}
	return RoleAdmin, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = Role(i)
		return nil
	}
	parsed, err := ParseRole(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
