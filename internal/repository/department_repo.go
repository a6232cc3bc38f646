package repository

import (
	"go-hris-suite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	FindAll() ([]model.Department, error)
	FindByID(id uuid.UUID) (*model.Department, error)
	FindByName(name string) (*model.Department, error)
	Create(department *model.Department) error
	Update(department *model.Department) error
	Delete(id uuid.UUID) error
}

type departmentRepo struct {
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db}
}

func (r *departmentRepo) FindAll() ([]model.Department, error) {
	var departments []model.Department
	if err := r.db.Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepo) FindByID(id uuid.UUID) (*model.Department, error) {
	var department model.Department
	if err := r.db.First(&department, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepo) FindByName(name string) (*model.Department, error) {
	var department model.Department
	if err := r.db.Where("name = ?", name).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepo) Create(department *model.Department) error {
	return r.db.Create(department).Error
}

func (r *departmentRepo) Update(department *model.Department) error {
	return r.db.Save(department).Error
}

func (r *departmentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Department{}, "id = ?", id).Error
}
