package handler

import (
	"go-hris-suite/internal/model"
	"go-hris-suite/internal/repository"
	"go-hris-suite/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DepartmentHandler struct {
	departmentRepo repository.DepartmentRepository
}

func NewDepartmentHandler(departmentRepo repository.DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{departmentRepo: departmentRepo}
}

// GetDepartments lists all departments
// GET /api/v1/departments
func (h *DepartmentHandler) GetDepartments(c *fiber.Ctx) error {
	departments, err := h.departmentRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  departments,
		"total": len(departments),
	})
}

// CreateDepartment handles department creation
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *fiber.Ctx) error {
	var department model.Department
	if err := c.BodyParser(&department); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&department); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Department name is required"})
	}

	if existing, _ := h.departmentRepo.FindByName(department.Name); existing != nil {
		return c.Status(409).JSON(fiber.Map{"error": "Department name already exists"})
	}

	creatorID := c.Locals("user_id")
	if creatorID != nil {
		department.CreatedBy = creatorID.(string)
		department.UpdatedBy = creatorID.(string)
	}

	if err := h.departmentRepo.Create(&department); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Department created successfully",
		"data":    department,
	})
}

// UpdateDepartment handles department update
// PUT /api/v1/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid department ID"})
	}

	department, err := h.departmentRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Department not found"})
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		HeadID      *string `json:"head_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Name != nil && *req.Name != "" {
		department.Name = *req.Name
	}
	if req.Description != nil {
		department.Description = *req.Description
	}
	if req.HeadID != nil {
		headID, err := uuid.Parse(*req.HeadID)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid head_id"})
		}
		department.HeadID = &headID
	}

	if updaterID := c.Locals("user_id"); updaterID != nil {
		department.UpdatedBy = updaterID.(string)
	}

	if err := h.departmentRepo.Update(department); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Department updated successfully",
		"data":    department,
	})
}

// DeleteDepartment handles department deletion
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid department ID"})
	}

	if _, err := h.departmentRepo.FindByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Department not found"})
	}

	if err := h.departmentRepo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Department deleted successfully"})
}
