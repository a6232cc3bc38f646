package model

// Role is the closed set of roles known to the suite. Adding a role
// requires updating AllRoles, HomePath, and DefaultRoles together.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleHRAdmin    Role = "hr-admin"
	RoleDean       Role = "dean"
	RoleLecturer   Role = "lecturer"
	RoleAdminStaff Role = "admin-staff"
)

// AllRoles lists every valid role.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleHRAdmin,
	RoleDean,
	RoleLecturer,
	RoleAdminStaff,
}

// LoginPath is where unauthenticated or unknown-role traffic lands.
const LoginPath = "/login"

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleHRAdmin, RoleDean, RoleLecturer, RoleAdminStaff:
		return true
	}
	return false
}

// HomePath returns the dashboard root for a role. Unknown roles fall
// back to the login path.
func (r Role) HomePath() string {
	switch r {
	case RoleSuperAdmin:
		return "/dashboard"
	case RoleHRAdmin:
		return "/hr-admin"
	case RoleDean:
		return "/dean"
	case RoleLecturer:
		return "/lecturer"
	case RoleAdminStaff:
		return "/admin-staff"
	}
	return LoginPath
}

func (r Role) String() string {
	return string(r)
}

// RoleRecord is the persisted role catalog entry. Code holds a Role
// value; Privileges are the defaults granted to users with this role.
type RoleRecord struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        Role        `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// TableName specifies the table name for GORM
func (RoleRecord) TableName() string {
	return "roles"
}

// DefaultRoles defines the seeded role catalog.
var DefaultRoles = []RoleRecord{
	{
		Code:        RoleSuperAdmin,
		Name:        "Super Administrator",
		Description: "Full system access with all privileges",
	},
	{
		Code:        RoleHRAdmin,
		Name:        "HR Administrator",
		Description: "Manages attendance, payroll, leave, and hiring",
	},
	{
		Code:        RoleDean,
		Name:        "Dean",
		Description: "Faculty head with department oversight",
	},
	{
		Code:        RoleLecturer,
		Name:        "Lecturer",
		Description: "Teaching staff with self-service access",
	},
	{
		Code:        RoleAdminStaff,
		Name:        "Administrative Staff",
		Description: "Support staff with self-service access",
	},
}
