package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hris-suite/internal/model"
)

func TestGetOverview(t *testing.T) {
	userRepo := newMockUserRepo()
	attendanceRepo := newMockAttendanceRepo()
	leaveRepo := newMockLeaveRepo()
	recruitmentRepo := newMockRecruitmentRepo()

	present := userRepo.add(&model.User{FullName: "Present Person", Email: "present@campus.test", IsActive: true})
	late := userRepo.add(&model.User{FullName: "Late Person", Email: "late@campus.test", IsActive: true})
	userRepo.add(&model.User{FullName: "Missing Person", Email: "missing@campus.test", IsActive: true})
	userRepo.add(&model.User{FullName: "Former Person", Email: "former@campus.test", IsActive: false})

	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday
	require.NoError(t, attendanceRepo.Create(&model.Attendance{
		UserID: present.ID, WorkDate: today, Status: model.AttendancePresent,
	}))
	require.NoError(t, attendanceRepo.Create(&model.Attendance{
		UserID: late.ID, WorkDate: today, Status: model.AttendanceLate,
	}))

	require.NoError(t, leaveRepo.Create(&model.LeaveRequest{
		UserID: present.ID, Status: model.LeavePending,
		StartDate: today, EndDate: today,
	}))

	posting := &model.JobPosting{Title: "Lecturer, Mathematics", Status: model.PostingOpen}
	require.NoError(t, recruitmentRepo.CreatePosting(posting))
	closed := &model.JobPosting{Title: "Archivist", Status: model.PostingClosed}
	require.NoError(t, recruitmentRepo.CreatePosting(closed))

	require.NoError(t, recruitmentRepo.CreateApplication(&model.Application{
		PostingID: posting.ID, ApplicantName: "A", ApplicantEmail: "a@x.test", Stage: model.StageApplied,
	}))
	require.NoError(t, recruitmentRepo.CreateApplication(&model.Application{
		PostingID: posting.ID, ApplicantName: "B", ApplicantEmail: "b@x.test", Stage: model.StageInterview,
	}))
	require.NoError(t, recruitmentRepo.CreateApplication(&model.Application{
		PostingID: posting.ID, ApplicantName: "C", ApplicantEmail: "c@x.test", Stage: model.StageRejected,
	}))

	// nil tracker reports zero online without touching Redis
	svc := NewDashboardService(userRepo, attendanceRepo, leaveRepo, recruitmentRepo, nil).(*dashboardService)
	svc.now = func() time.Time { return today }

	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, overview.Headcount)
	assert.Equal(t, 0, overview.OnlineUsers)
	assert.Equal(t, 1, overview.PresentToday)
	assert.Equal(t, 1, overview.LateToday)
	// One active user never checked in today.
	assert.Equal(t, 1, overview.AbsentToday)
	assert.Equal(t, 1, overview.PendingLeaves)
	assert.Equal(t, 1, overview.OpenPostings)
	// Rejected applications are out of the pipeline.
	assert.Equal(t, 2, overview.ApplicantsInPipe)
}

func TestGetOverviewEmptySystem(t *testing.T) {
	svc := NewDashboardService(newMockUserRepo(), newMockAttendanceRepo(),
		newMockLeaveRepo(), newMockRecruitmentRepo(), nil)

	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &DashboardOverview{}, overview)
}
