package domain

// Role is a strictly ordered rank. Higher values carry wider organizational
// scope; comparisons go through AtLeast rather than raw integers at call sites.
type Role int

const (
	RoleStaff            Role = 10
	RoleDoctor           Role = 15
	RoleDistrictLabAdmin Role = 25
	RoleDistrictAdmin    Role = 30
	RoleStateLabAdmin    Role = 35
	RoleStateAdmin       Role = 40
)

func (r Role) AtLeast(other Role) bool { return r >= other }

func (r Role) String() string {
	switch r {
	case RoleStaff:
		return "Staff"
	case RoleDoctor:
		return "Doctor"
	case RoleDistrictLabAdmin:
		return "DistrictLabAdmin"
	case RoleDistrictAdmin:
		return "DistrictAdmin"
	case RoleStateLabAdmin:
		return "StateLabAdmin"
	case RoleStateAdmin:
		return "StateAdmin"
	default:
		return "Unknown"
	}
}
