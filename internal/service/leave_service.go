package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/repository"
)

var (
	ErrLeaveNotFound       = errors.New("leave request not found")
	ErrLeaveOverlap        = errors.New("leave request overlaps an existing request")
	ErrLeaveAlreadyDecided = errors.New("leave request already decided")
	ErrInsufficientBalance = errors.New("insufficient annual leave balance")
	ErrInvalidLeaveType    = errors.New("invalid leave type")
	ErrInvalidDateRange    = errors.New("end date cannot be before start date")
	ErrInvalidLeaveDate    = errors.New("invalid date format, use YYYY-MM-DD")
)

type LeaveService interface {
	RequestLeave(req *LeaveRequestInput, requesterID uuid.UUID) (*model.LeaveRequest, error)
	Decide(requestID uuid.UUID, approve bool, note string, deciderID uuid.UUID) (*model.LeaveRequest, error)
	GetUserRequests(userID uuid.UUID) ([]model.LeaveRequest, error)
	GetPending() ([]model.LeaveRequest, error)
	GetBalance(userID uuid.UUID, year int) (*model.LeaveBalance, error)
}

type LeaveRequestInput struct {
	Type      string `json:"type" validate:"required"`
	StartDate string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

type leaveService struct {
	leaveRepo repository.LeaveRepository
	userRepo  repository.UserRepository
	now       func() time.Time
}

func NewLeaveService(leaveRepo repository.LeaveRepository, userRepo repository.UserRepository) LeaveService {
	return &leaveService{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// inclusiveDays counts calendar days in [start, end], both ends included.
func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func parseLeaveType(raw string) (model.LeaveType, error) {
	switch model.LeaveType(raw) {
	case model.LeaveAnnual, model.LeaveSick, model.LeaveUnpaid:
		return model.LeaveType(raw), nil
	}
	return "", ErrInvalidLeaveType
}

func (s *leaveService) RequestLeave(req *LeaveRequestInput, requesterID uuid.UUID) (*model.LeaveRequest, error) {
	leaveType, err := parseLeaveType(req.Type)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidLeaveDate
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrInvalidLeaveDate
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	if _, err := s.userRepo.FindByID(requesterID); err != nil {
		return nil, ErrUserNotFound
	}

	days := inclusiveDays(start, end)

	// Annual leave must fit the remaining balance.
	if leaveType == model.LeaveAnnual {
		balance, err := s.GetBalance(requesterID, start.Year())
		if err != nil {
			return nil, err
		}
		if days > balance.Remaining {
			return nil, ErrInsufficientBalance
		}
	}

	overlapping, err := s.leaveRepo.FindOverlapping(requesterID, start, end)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, ErrLeaveOverlap
	}

	request := &model.LeaveRequest{
		UserID:    requesterID,
		Type:      leaveType,
		StartDate: start,
		EndDate:   end,
		Days:      days,
		Reason:    req.Reason,
		Status:    model.LeavePending,
	}
	request.CreatedBy = requesterID.String()
	request.UpdatedBy = requesterID.String()

	if err := s.leaveRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *leaveService) Decide(requestID uuid.UUID, approve bool, note string, deciderID uuid.UUID) (*model.LeaveRequest, error) {
	request, err := s.leaveRepo.FindByID(requestID)
	if err != nil {
		return nil, ErrLeaveNotFound
	}
	if request.Status != model.LeavePending {
		return nil, ErrLeaveAlreadyDecided
	}

	now := s.now()
	if approve {
		request.Status = model.LeaveApproved
	} else {
		request.Status = model.LeaveRejected
	}
	request.DecidedBy = &deciderID
	request.DecidedAt = &now
	request.DecisionNote = note
	request.UpdatedBy = deciderID.String()

	if err := s.leaveRepo.Update(request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *leaveService) GetUserRequests(userID uuid.UUID) ([]model.LeaveRequest, error) {
	return s.leaveRepo.FindByUser(userID)
}

func (s *leaveService) GetPending() ([]model.LeaveRequest, error) {
	return s.leaveRepo.FindByStatus(model.LeavePending)
}

func (s *leaveService) GetBalance(userID uuid.UUID, year int) (*model.LeaveBalance, error) {
	used, err := s.leaveRepo.SumApprovedDays(userID, model.LeaveAnnual, year)
	if err != nil {
		return nil, err
	}

	remaining := model.AnnualLeaveEntitlement - used
	if remaining < 0 {
		remaining = 0
	}

	return &model.LeaveBalance{
		UserID:      userID,
		Year:        year,
		Entitlement: model.AnnualLeaveEntitlement,
		UsedDays:    used,
		Remaining:   remaining,
	}, nil
}
