package model

// Privilege represents a fine-grained permission assignable to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "payroll:generate"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Departments
	{Code: "department:view", Name: "View Department"},
	{Code: "department:manage", Name: "Manage Department"},
	// Attendance (HR3)
	{Code: "attendance:view", Name: "View Attendance"},
	{Code: "attendance:view_all", Name: "View All Attendance"},
	// Leave (HR3)
	{Code: "leave:request", Name: "Request Leave"},
	{Code: "leave:approve", Name: "Approve Leave"},
	// Payroll (HR3)
	{Code: "payroll:view", Name: "View Own Payslips"},
	{Code: "payroll:view_all", Name: "View All Payslips"},
	{Code: "payroll:generate", Name: "Generate Payroll"},
	// Scheduling (HR3)
	{Code: "schedule:view", Name: "View Schedule"},
	{Code: "schedule:create", Name: "Create Schedule"},
	{Code: "schedule:update", Name: "Update Schedule"},
	{Code: "schedule:delete", Name: "Delete Schedule"},
	// Hiring pipeline (HR1)
	{Code: "hiring:view", Name: "View Hiring Pipeline"},
	{Code: "hiring:manage", Name: "Manage Hiring Pipeline"},
	{Code: "hiring:evaluate", Name: "Evaluate Applicants"},
	// Learning & competency (HR2)
	{Code: "learning:view", Name: "View Courses"},
	{Code: "learning:manage", Name: "Manage Courses"},
	{Code: "competency:view", Name: "View Competencies"},
	{Code: "competency:manage", Name: "Manage Competencies"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// RoleDefaultPrivileges maps each role to the privilege codes it is
// granted at seed time. Superadmin is handled separately (all codes).
var RoleDefaultPrivileges = map[Role][]string{
	RoleHRAdmin: {
		"user:view", "user:create", "user:update",
		"department:view", "department:manage",
		"attendance:view", "attendance:view_all",
		"leave:request", "leave:approve",
		"payroll:view", "payroll:view_all", "payroll:generate",
		"schedule:view", "schedule:create", "schedule:update", "schedule:delete",
		"hiring:view", "hiring:manage", "hiring:evaluate",
		"learning:view", "learning:manage",
		"competency:view", "competency:manage",
		"dashboard:view",
	},
	RoleDean: {
		"user:view", "department:view",
		"attendance:view", "attendance:view_all",
		"leave:request",
		"payroll:view",
		"schedule:view",
		"hiring:view", "hiring:evaluate",
		"learning:view", "competency:view",
		"dashboard:view",
	},
	RoleLecturer: {
		"attendance:view", "leave:request", "payroll:view",
		"schedule:view", "learning:view", "competency:view",
		"dashboard:view",
	},
	RoleAdminStaff: {
		"attendance:view", "leave:request", "payroll:view",
		"schedule:view", "learning:view", "competency:view",
		"dashboard:view",
	},
}
