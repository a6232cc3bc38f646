package routeguard

import (
	"strings"

	"go-hris-suite/internal/model"
)

// Layout names the dashboard shell a rule's views render inside.
type Layout string

const (
	LayoutAdminShell    Layout = "admin-shell"
	LayoutHRShell       Layout = "hr-shell"
	LayoutDeanShell     Layout = "dean-shell"
	LayoutLecturerShell Layout = "lecturer-shell"
	LayoutStaffShell    Layout = "staff-shell"
)

// Rule associates a path prefix with the shell it renders in and the
// roles allowed under it. Paths outside every rule (the login page)
// are implicitly public.
type Rule struct {
	Prefix       string
	Layout       Layout
	AllowedRoles []model.Role
}

// Table is the declarative dashboard route table: one rule per
// role-scoped shell, plus shared areas. Order matters: the first
// matching prefix wins.
var Table = []Rule{
	{Prefix: "/dashboard", Layout: LayoutAdminShell, AllowedRoles: []model.Role{model.RoleSuperAdmin}},
	{Prefix: "/hr-admin", Layout: LayoutHRShell, AllowedRoles: []model.Role{model.RoleHRAdmin, model.RoleSuperAdmin}},
	{Prefix: "/dean", Layout: LayoutDeanShell, AllowedRoles: []model.Role{model.RoleDean}},
	{Prefix: "/lecturer", Layout: LayoutLecturerShell, AllowedRoles: []model.Role{model.RoleLecturer}},
	{Prefix: "/admin-staff", Layout: LayoutStaffShell, AllowedRoles: []model.Role{model.RoleAdminStaff}},
}

// RuleFor returns the rule guarding the given path, or nil when the
// path is public.
func RuleFor(path string) *Rule {
	for i := range Table {
		prefix := Table[i].Prefix
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return &Table[i]
		}
	}
	return nil
}

// LayoutFor returns the shell the given path renders in, or the empty
// layout for public paths.
func LayoutFor(path string) Layout {
	if rule := RuleFor(path); rule != nil {
		return rule.Layout
	}
	return ""
}

// DecideForPath resolves the rule for path and gates it.
func DecideForPath(identity *model.Identity, loading bool, path string) Decision {
	rule := RuleFor(path)
	if rule == nil {
		return Decision{Outcome: OutcomeAllow}
	}
	return Decide(identity, loading, rule.AllowedRoles)
}
