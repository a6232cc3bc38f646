package service

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/repository"
)

var (
	ErrPayslipNotFound    = errors.New("payslip not found")
	ErrPayslipImmutable   = errors.New("paid payslips cannot be regenerated")
	ErrInvalidPayPeriod   = errors.New("invalid period format, use YYYY-MM")
	ErrPayslipAlreadyPaid = errors.New("payslip already marked paid")
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// DeductionPolicy holds the flat per-day deduction amounts.
type DeductionPolicy struct {
	PerAbsence float64
	PerLateDay float64
}

type PayrollService interface {
	GeneratePayslip(userID uuid.UUID, period string, generatedBy string) (*model.Payslip, error)
	GeneratePeriod(period string, generatedBy string) (int, error)
	MarkPaid(payslipID uuid.UUID, updaterID string) (*model.Payslip, error)
	GetUserPayslips(userID uuid.UUID) ([]model.Payslip, error)
	GetPeriodPayslips(period string) ([]model.Payslip, error)
}

type payrollService struct {
	payrollRepo    repository.PayrollRepository
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
	policy         DeductionPolicy
	now            func() time.Time
}

func NewPayrollService(payrollRepo repository.PayrollRepository, attendanceRepo repository.AttendanceRepository,
	userRepo repository.UserRepository, policy DeductionPolicy) PayrollService {
	return &payrollService{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		policy:         policy,
		now:            time.Now,
	}
}

// computePay derives the payslip amounts from salary and attendance
// counts. Net pay never goes below zero.
func computePay(base, allowance float64, absentDays, lateDays int, policy DeductionPolicy) (gross, absenceDeduction, lateDeduction, net float64) {
	gross = base + allowance
	absenceDeduction = float64(absentDays) * policy.PerAbsence
	lateDeduction = float64(lateDays) * policy.PerLateDay
	net = gross - absenceDeduction - lateDeduction
	if net < 0 {
		net = 0
	}
	return
}

func (s *payrollService) GeneratePayslip(userID uuid.UUID, period string, generatedBy string) (*model.Payslip, error) {
	if !periodPattern.MatchString(period) {
		return nil, ErrInvalidPayPeriod
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	start, _ := time.Parse("2006-01", period)
	end := start.AddDate(0, 1, -1)

	absent, err := s.attendanceRepo.CountByStatus(userID, start, end, model.AttendanceAbsent)
	if err != nil {
		return nil, err
	}
	late, err := s.attendanceRepo.CountByStatus(userID, start, end, model.AttendanceLate)
	if err != nil {
		return nil, err
	}

	gross, absenceDeduction, lateDeduction, net := computePay(
		user.BaseSalary, user.Allowance, int(absent), int(late), s.policy)

	// Regeneration replaces a draft; paid slips are immutable.
	existing, _ := s.payrollRepo.FindByUserAndPeriod(userID, period)
	if existing != nil {
		if existing.Status == model.PayslipPaid {
			return nil, ErrPayslipImmutable
		}
		existing.BaseSalary = user.BaseSalary
		existing.Allowance = user.Allowance
		existing.AbsentDays = int(absent)
		existing.LateDays = int(late)
		existing.AbsenceDeduction = absenceDeduction
		existing.LateDeduction = lateDeduction
		existing.GrossPay = gross
		existing.NetPay = net
		existing.UpdatedBy = generatedBy
		if err := s.payrollRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	payslip := &model.Payslip{
		UserID:           userID,
		Period:           period,
		BaseSalary:       user.BaseSalary,
		Allowance:        user.Allowance,
		AbsentDays:       int(absent),
		LateDays:         int(late),
		AbsenceDeduction: absenceDeduction,
		LateDeduction:    lateDeduction,
		GrossPay:         gross,
		NetPay:           net,
		Status:           model.PayslipDraft,
	}
	payslip.CreatedBy = generatedBy
	payslip.UpdatedBy = generatedBy

	if err := s.payrollRepo.Create(payslip); err != nil {
		return nil, err
	}
	return payslip, nil
}

// GeneratePeriod creates or refreshes payslips for every active user.
// Returns the number of payslips written; individual failures are
// collected into the returned error but do not stop the run.
func (s *payrollService) GeneratePeriod(period string, generatedBy string) (int, error) {
	if !periodPattern.MatchString(period) {
		return 0, ErrInvalidPayPeriod
	}

	users, err := s.userRepo.FindActive()
	if err != nil {
		return 0, err
	}

	generated := 0
	var firstErr error
	for _, user := range users {
		if _, err := s.GeneratePayslip(user.ID, period, generatedBy); err != nil {
			// Paid slips are expected to be skipped on a re-run.
			if errors.Is(err, ErrPayslipImmutable) {
				continue
			}
			if firstErr == nil {
				firstErr = fmt.Errorf("user %s: %w", user.ID, err)
			}
			continue
		}
		generated++
	}
	return generated, firstErr
}

func (s *payrollService) MarkPaid(payslipID uuid.UUID, updaterID string) (*model.Payslip, error) {
	payslip, err := s.payrollRepo.FindByID(payslipID)
	if err != nil {
		return nil, ErrPayslipNotFound
	}
	if payslip.Status == model.PayslipPaid {
		return nil, ErrPayslipAlreadyPaid
	}

	now := s.now()
	payslip.Status = model.PayslipPaid
	payslip.PaidAt = &now
	payslip.UpdatedBy = updaterID

	if err := s.payrollRepo.Update(payslip); err != nil {
		return nil, err
	}
	return payslip, nil
}

func (s *payrollService) GetUserPayslips(userID uuid.UUID) ([]model.Payslip, error) {
	return s.payrollRepo.FindByUser(userID)
}

func (s *payrollService) GetPeriodPayslips(period string) ([]model.Payslip, error) {
	if !periodPattern.MatchString(period) {
		return nil, ErrInvalidPayPeriod
	}
	return s.payrollRepo.FindByPeriod(period)
}
