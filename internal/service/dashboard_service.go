package service

import (
	"context"
	"time"

	"go-hris-suite/internal/model"
	"go-hris-suite/internal/presence"
	"go-hris-suite/internal/repository"
)

type DashboardService interface {
	GetOverview(ctx context.Context) (*DashboardOverview, error)
}

// DashboardOverview aggregates the headline numbers shown on the
// landing dashboards.
type DashboardOverview struct {
	Headcount        int `json:"headcount"`
	OnlineUsers      int `json:"online_users"`
	PresentToday     int `json:"present_today"`
	LateToday        int `json:"late_today"`
	AbsentToday      int `json:"absent_today"`
	PendingLeaves    int `json:"pending_leaves"`
	OpenPostings     int `json:"open_postings"`
	ApplicantsInPipe int `json:"applicants_in_pipeline"`
}

type dashboardService struct {
	userRepo        repository.UserRepository
	attendanceRepo  repository.AttendanceRepository
	leaveRepo       repository.LeaveRepository
	recruitmentRepo repository.RecruitmentRepository
	tracker         *presence.Tracker
	now             func() time.Time
}

func NewDashboardService(userRepo repository.UserRepository, attendanceRepo repository.AttendanceRepository,
	leaveRepo repository.LeaveRepository, recruitmentRepo repository.RecruitmentRepository,
	tracker *presence.Tracker) DashboardService {
	return &dashboardService{
		userRepo:        userRepo,
		attendanceRepo:  attendanceRepo,
		leaveRepo:       leaveRepo,
		recruitmentRepo: recruitmentRepo,
		tracker:         tracker,
		now:             time.Now,
	}
}

func (s *dashboardService) GetOverview(ctx context.Context) (*DashboardOverview, error) {
	overview := &DashboardOverview{}

	users, err := s.userRepo.FindActive()
	if err != nil {
		return nil, err
	}
	overview.Headcount = len(users)

	online, err := s.tracker.OnlineCount(ctx)
	if err != nil {
		return nil, err
	}
	overview.OnlineUsers = online

	today := s.now()
	records, err := s.attendanceRepo.FindByDate(today)
	if err != nil {
		return nil, err
	}
	checkedIn := make(map[string]bool, len(records))
	for _, record := range records {
		checkedIn[record.UserID.String()] = true
		switch record.Status {
		case model.AttendancePresent:
			overview.PresentToday++
		case model.AttendanceLate:
			overview.LateToday++
		case model.AttendanceAbsent:
			overview.AbsentToday++
		}
	}
	// Active users with no record yet count as absent on the overview.
	for _, user := range users {
		if !checkedIn[user.ID.String()] {
			overview.AbsentToday++
		}
	}

	pending, err := s.leaveRepo.FindByStatus(model.LeavePending)
	if err != nil {
		return nil, err
	}
	overview.PendingLeaves = len(pending)

	open := model.PostingOpen
	postings, err := s.recruitmentRepo.FindPostings(&open)
	if err != nil {
		return nil, err
	}
	overview.OpenPostings = len(postings)

	for _, stage := range []model.ApplicationStage{model.StageApplied, model.StageScreening, model.StageInterview, model.StageOffer} {
		applications, err := s.recruitmentRepo.FindApplicationsByStage(stage)
		if err != nil {
			return nil, err
		}
		overview.ApplicantsInPipe += len(applications)
	}

	return overview, nil
}
