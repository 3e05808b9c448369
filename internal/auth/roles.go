package auth

// Role is one of the closed set of staff roles. The set is exhaustive:
// anything else fails ParseRole instead of silently resolving to no access.
type Role string

const (
	// RoleAdmin is the manufacturer-side administrator.
	RoleAdmin Role = "Admin"
	// RoleEVMStaff is manufacturer (EVM) staff running recalls and campaigns.
	RoleEVMStaff Role = "EVM_Staff"
	// RoleSCStaff is service-center front-office staff.
	RoleSCStaff Role = "SC_Staff"
	// RoleSCAdmin is a service-center branch administrator.
	RoleSCAdmin Role = "SC_Admin"
	// RoleSCTechnician is a service-center technician.
	RoleSCTechnician Role = "SC_Technician"
)

// Roles lists every known role in a stable order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleEVMStaff, RoleSCStaff, RoleSCAdmin, RoleSCTechnician}
}

// ParseRole converts a role string into a Role. Unknown strings are an
// error, never an implicit "no access" role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEVMStaff:
		return RoleEVMStaff, nil
	case RoleSCStaff:
		return RoleSCStaff, nil
	case RoleSCAdmin:
		return RoleSCAdmin, nil
	case RoleSCTechnician:
		return RoleSCTechnician, nil
	default:
		return "", ErrUnknownRole
	}
}

// BranchScoped reports whether the role only sees resources of its own
// branch office. SC_Admin may only list and assign technicians sharing
// its branch.
func (r Role) BranchScoped() bool {
	return r == RoleSCAdmin
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
