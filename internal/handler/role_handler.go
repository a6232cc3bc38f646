package handler

import (
	"go-hris-suite/internal/model"
	"go-hris-suite/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	roleRepo      repository.RoleRepository
	privilegeRepo repository.PrivilegeRepository
}

func NewRoleHandler(roleRepo repository.RoleRepository, privilegeRepo repository.PrivilegeRepository) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo, privilegeRepo: privilegeRepo}
}

// GetRoles lists the role catalog with each role's dashboard root
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.roleRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	type roleEntry struct {
		model.RoleRecord
		HomePath string `json:"home_path"`
	}
	entries := make([]roleEntry, len(roles))
	for i, role := range roles {
		entries[i] = roleEntry{RoleRecord: role, HomePath: role.Code.HomePath()}
	}

	return c.JSON(fiber.Map{
		"data":  entries,
		"total": len(entries),
	})
}

// GetPrivileges lists all known privileges
// GET /api/v1/privileges
func (h *RoleHandler) GetPrivileges(c *fiber.Ctx) error {
	privileges, err := h.privilegeRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  privileges,
		"total": len(privileges),
	})
}
