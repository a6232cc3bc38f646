package repository

import (
	"go-hris-suite/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PayrollRepository interface {
	Create(payslip *model.Payslip) error
	Update(payslip *model.Payslip) error
	FindByID(id uuid.UUID) (*model.Payslip, error)
	FindByUserAndPeriod(userID uuid.UUID, period string) (*model.Payslip, error)
	FindByUser(userID uuid.UUID) ([]model.Payslip, error)
	FindByPeriod(period string) ([]model.Payslip, error)
}

type payrollRepo struct {
	db *gorm.DB
}

func NewPayrollRepo(db *gorm.DB) PayrollRepository {
	return &payrollRepo{db}
}

func (r *payrollRepo) Create(payslip *model.Payslip) error {
	return r.db.Create(payslip).Error
}

func (r *payrollRepo) Update(payslip *model.Payslip) error {
	return r.db.Save(payslip).Error
}

func (r *payrollRepo) FindByID(id uuid.UUID) (*model.Payslip, error) {
	var payslip model.Payslip
	if err := r.db.Preload("User").First(&payslip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payslip, nil
}

func (r *payrollRepo) FindByUserAndPeriod(userID uuid.UUID, period string) (*model.Payslip, error) {
	var payslip model.Payslip
	err := r.db.Where("user_id = ? AND period = ?", userID, period).First(&payslip).Error
	if err != nil {
		return nil, err
	}
	return &payslip, nil
}

func (r *payrollRepo) FindByUser(userID uuid.UUID) ([]model.Payslip, error) {
	var payslips []model.Payslip
	err := r.db.Where("user_id = ?", userID).Order("period DESC").Find(&payslips).Error
	return payslips, err
}

func (r *payrollRepo) FindByPeriod(period string) ([]model.Payslip, error) {
	var payslips []model.Payslip
	err := r.db.Preload("User").Where("period = ?", period).Find(&payslips).Error
	return payslips, err
}
