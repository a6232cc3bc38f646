package repository

import (
	"go-hris-suite/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll() ([]model.RoleRecord, error)
	FindByID(id uint) (*model.RoleRecord, error)
	FindByCode(code model.Role) (*model.RoleRecord, error)
	Create(role *model.RoleRecord) error
	SeedDefaults() error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll() ([]model.RoleRecord, error) {
	var roles []model.RoleRecord
	err := r.db.Preload("Privileges").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByID(id uint) (*model.RoleRecord, error) {
	var role model.RoleRecord
	err := r.db.Preload("Privileges").First(&role, id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByCode(code model.Role) (*model.RoleRecord, error) {
	var role model.RoleRecord
	err := r.db.Preload("Privileges").Where("code = ?", code).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) Create(role *model.RoleRecord) error {
	return r.db.Create(role).Error
}

func (r *roleRepo) SeedDefaults() error {
	for _, defaultRole := range model.DefaultRoles {
		var existingRole model.RoleRecord
		err := r.db.Where("code = ?", defaultRole.Code).First(&existingRole).Error
		if err == gorm.ErrRecordNotFound {
			// Role doesn't exist, create it
			if err := r.db.Create(&defaultRole).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
