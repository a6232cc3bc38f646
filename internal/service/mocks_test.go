package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-hris-suite/internal/model"
)

// Map-backed repository fakes. They assign IDs the way the gorm hook
// would so services can be exercised without a database.

type mockUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserRepo) add(user *model.User) *model.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(user *model.User) error {
	m.add(user)
	return nil
}

func (m *mockUserRepo) Update(user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	if user, ok := m.users[userID]; ok {
		user.Password = hashedPassword
	}
	return nil
}

func (m *mockUserRepo) UpdatePrivileges(userID uuid.UUID, privileges []model.Privilege) error {
	if user, ok := m.users[userID]; ok {
		user.Privileges = privileges
	}
	return nil
}

func (m *mockUserRepo) FindAll() ([]model.User, error) {
	var users []model.User
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func (m *mockUserRepo) FindByDepartment(departmentID uuid.UUID) ([]model.User, error) {
	var users []model.User
	for _, user := range m.users {
		if user.DepartmentID != nil && *user.DepartmentID == departmentID {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (m *mockUserRepo) FindActive() ([]model.User, error) {
	var users []model.User
	for _, user := range m.users {
		if user.IsActive {
			users = append(users, *user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (m *mockUserRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	if user, ok := m.users[userID]; ok {
		user.TokenVersion = version
	}
	return nil
}

func (m *mockUserRepo) UpdateLastSeen(userID uuid.UUID) error {
	if user, ok := m.users[userID]; ok {
		now := time.Now()
		user.LastSeenAt = &now
	}
	return nil
}

type mockAttendanceRepo struct {
	records map[uuid.UUID]*model.Attendance
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[uuid.UUID]*model.Attendance)}
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (m *mockAttendanceRepo) Create(record *model.Attendance) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockAttendanceRepo) Update(record *model.Attendance) error {
	m.records[record.ID] = record
	return nil
}

func (m *mockAttendanceRepo) FindByUserAndDate(userID uuid.UUID, date time.Time) (*model.Attendance, error) {
	for _, record := range m.records {
		if record.UserID == userID && sameDay(record.WorkDate, date) {
			return record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) FindByUserAndRange(userID uuid.UUID, start, end time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	for _, record := range m.records {
		if record.UserID == userID && !record.WorkDate.Before(start) && !record.WorkDate.After(end) {
			records = append(records, *record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].WorkDate.Before(records[j].WorkDate) })
	return records, nil
}

func (m *mockAttendanceRepo) FindByDate(date time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	for _, record := range m.records {
		if sameDay(record.WorkDate, date) {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (m *mockAttendanceRepo) FindByRange(start, end time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	for _, record := range m.records {
		if !record.WorkDate.Before(start) && !record.WorkDate.After(end) {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (m *mockAttendanceRepo) CountByStatus(userID uuid.UUID, start, end time.Time, status model.AttendanceStatus) (int64, error) {
	var count int64
	for _, record := range m.records {
		if record.UserID == userID && record.Status == status &&
			!record.WorkDate.Before(start) && !record.WorkDate.After(end) {
			count++
		}
	}
	return count, nil
}

type mockLeaveRepo struct {
	requests map[uuid.UUID]*model.LeaveRequest
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{requests: make(map[uuid.UUID]*model.LeaveRequest)}
}

func (m *mockLeaveRepo) Create(request *model.LeaveRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	m.requests[request.ID] = request
	return nil
}

func (m *mockLeaveRepo) Update(request *model.LeaveRequest) error {
	m.requests[request.ID] = request
	return nil
}

func (m *mockLeaveRepo) FindByID(id uuid.UUID) (*model.LeaveRequest, error) {
	if request, ok := m.requests[id]; ok {
		return request, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) FindByUser(userID uuid.UUID) ([]model.LeaveRequest, error) {
	var requests []model.LeaveRequest
	for _, request := range m.requests {
		if request.UserID == userID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (m *mockLeaveRepo) FindByStatus(status model.LeaveStatus) ([]model.LeaveRequest, error) {
	var requests []model.LeaveRequest
	for _, request := range m.requests {
		if request.Status == status {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (m *mockLeaveRepo) FindOverlapping(userID uuid.UUID, start, end time.Time) ([]model.LeaveRequest, error) {
	var requests []model.LeaveRequest
	for _, request := range m.requests {
		if request.UserID != userID || request.Status == model.LeaveRejected {
			continue
		}
		if !request.StartDate.After(end) && !request.EndDate.Before(start) {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (m *mockLeaveRepo) SumApprovedDays(userID uuid.UUID, leaveType model.LeaveType, year int) (int, error) {
	total := 0
	for _, request := range m.requests {
		if request.UserID == userID && request.Type == leaveType &&
			request.Status == model.LeaveApproved && request.StartDate.Year() == year {
			total += request.Days
		}
	}
	return total, nil
}

type mockPayrollRepo struct {
	payslips map[uuid.UUID]*model.Payslip
}

func newMockPayrollRepo() *mockPayrollRepo {
	return &mockPayrollRepo{payslips: make(map[uuid.UUID]*model.Payslip)}
}

func (m *mockPayrollRepo) Create(payslip *model.Payslip) error {
	if payslip.ID == uuid.Nil {
		payslip.ID = uuid.New()
	}
	m.payslips[payslip.ID] = payslip
	return nil
}

func (m *mockPayrollRepo) Update(payslip *model.Payslip) error {
	m.payslips[payslip.ID] = payslip
	return nil
}

func (m *mockPayrollRepo) FindByID(id uuid.UUID) (*model.Payslip, error) {
	if payslip, ok := m.payslips[id]; ok {
		return payslip, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPayrollRepo) FindByUserAndPeriod(userID uuid.UUID, period string) (*model.Payslip, error) {
	for _, payslip := range m.payslips {
		if payslip.UserID == userID && payslip.Period == period {
			return payslip, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPayrollRepo) FindByUser(userID uuid.UUID) ([]model.Payslip, error) {
	var payslips []model.Payslip
	for _, payslip := range m.payslips {
		if payslip.UserID == userID {
			payslips = append(payslips, *payslip)
		}
	}
	return payslips, nil
}

func (m *mockPayrollRepo) FindByPeriod(period string) ([]model.Payslip, error) {
	var payslips []model.Payslip
	for _, payslip := range m.payslips {
		if payslip.Period == period {
			payslips = append(payslips, *payslip)
		}
	}
	return payslips, nil
}

type mockRecruitmentRepo struct {
	postings     map[uuid.UUID]*model.JobPosting
	applications map[uuid.UUID]*model.Application
	evaluations  map[uuid.UUID]*model.Evaluation
}

func newMockRecruitmentRepo() *mockRecruitmentRepo {
	return &mockRecruitmentRepo{
		postings:     make(map[uuid.UUID]*model.JobPosting),
		applications: make(map[uuid.UUID]*model.Application),
		evaluations:  make(map[uuid.UUID]*model.Evaluation),
	}
}

func (m *mockRecruitmentRepo) CreatePosting(posting *model.JobPosting) error {
	if posting.ID == uuid.Nil {
		posting.ID = uuid.New()
	}
	m.postings[posting.ID] = posting
	return nil
}

func (m *mockRecruitmentRepo) UpdatePosting(posting *model.JobPosting) error {
	m.postings[posting.ID] = posting
	return nil
}

func (m *mockRecruitmentRepo) FindPostingByID(id uuid.UUID) (*model.JobPosting, error) {
	if posting, ok := m.postings[id]; ok {
		return posting, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecruitmentRepo) FindPostings(status *model.PostingStatus) ([]model.JobPosting, error) {
	var postings []model.JobPosting
	for _, posting := range m.postings {
		if status == nil || posting.Status == *status {
			postings = append(postings, *posting)
		}
	}
	return postings, nil
}

func (m *mockRecruitmentRepo) CreateApplication(application *model.Application) error {
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	m.applications[application.ID] = application
	return nil
}

func (m *mockRecruitmentRepo) UpdateApplication(application *model.Application) error {
	m.applications[application.ID] = application
	return nil
}

func (m *mockRecruitmentRepo) FindApplicationByID(id uuid.UUID) (*model.Application, error) {
	if application, ok := m.applications[id]; ok {
		return application, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecruitmentRepo) FindApplicationsByPosting(postingID uuid.UUID) ([]model.Application, error) {
	var applications []model.Application
	for _, application := range m.applications {
		if application.PostingID == postingID {
			applications = append(applications, *application)
		}
	}
	return applications, nil
}

func (m *mockRecruitmentRepo) FindApplicationsByStage(stage model.ApplicationStage) ([]model.Application, error) {
	var applications []model.Application
	for _, application := range m.applications {
		if application.Stage == stage {
			applications = append(applications, *application)
		}
	}
	return applications, nil
}

func (m *mockRecruitmentRepo) CreateEvaluation(evaluation *model.Evaluation) error {
	if evaluation.ID == uuid.Nil {
		evaluation.ID = uuid.New()
	}
	m.evaluations[evaluation.ID] = evaluation
	return nil
}

func (m *mockRecruitmentRepo) FindEvaluationsByApplication(applicationID uuid.UUID) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	for _, evaluation := range m.evaluations {
		if evaluation.ApplicationID == applicationID {
			evaluations = append(evaluations, *evaluation)
		}
	}
	return evaluations, nil
}

type mockLearningRepo struct {
	courses      map[uuid.UUID]*model.Course
	quizzes      map[uuid.UUID]*model.Quiz
	submissions  map[uuid.UUID]*model.QuizSubmission
	enrollments  map[uuid.UUID]*model.Enrollment
	competencies map[string]*model.Competency // userID+name
}

func newMockLearningRepo() *mockLearningRepo {
	return &mockLearningRepo{
		courses:      make(map[uuid.UUID]*model.Course),
		quizzes:      make(map[uuid.UUID]*model.Quiz),
		submissions:  make(map[uuid.UUID]*model.QuizSubmission),
		enrollments:  make(map[uuid.UUID]*model.Enrollment),
		competencies: make(map[string]*model.Competency),
	}
}

func (m *mockLearningRepo) CreateCourse(course *model.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockLearningRepo) UpdateCourse(course *model.Course) error {
	m.courses[course.ID] = course
	return nil
}

func (m *mockLearningRepo) FindCourseByID(id uuid.UUID) (*model.Course, error) {
	if course, ok := m.courses[id]; ok {
		return course, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLearningRepo) FindCourses() ([]model.Course, error) {
	var courses []model.Course
	for _, course := range m.courses {
		courses = append(courses, *course)
	}
	return courses, nil
}

func (m *mockLearningRepo) CreateQuiz(quiz *model.Quiz) error {
	if quiz.ID == uuid.Nil {
		quiz.ID = uuid.New()
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == uuid.Nil {
			quiz.Questions[i].ID = uuid.New()
		}
		quiz.Questions[i].QuizID = quiz.ID
	}
	m.quizzes[quiz.ID] = quiz
	return nil
}

func (m *mockLearningRepo) FindQuizByID(id uuid.UUID) (*model.Quiz, error) {
	if quiz, ok := m.quizzes[id]; ok {
		return quiz, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLearningRepo) CreateSubmission(submission *model.QuizSubmission) error {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	m.submissions[submission.ID] = submission
	return nil
}

func (m *mockLearningRepo) FindSubmissionsByUser(userID uuid.UUID) ([]model.QuizSubmission, error) {
	var submissions []model.QuizSubmission
	for _, submission := range m.submissions {
		if submission.UserID == userID {
			submissions = append(submissions, *submission)
		}
	}
	return submissions, nil
}

func (m *mockLearningRepo) CreateEnrollment(enrollment *model.Enrollment) error {
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	m.enrollments[enrollment.ID] = enrollment
	return nil
}

func (m *mockLearningRepo) UpdateEnrollment(enrollment *model.Enrollment) error {
	m.enrollments[enrollment.ID] = enrollment
	return nil
}

func (m *mockLearningRepo) FindEnrollment(courseID, userID uuid.UUID) (*model.Enrollment, error) {
	for _, enrollment := range m.enrollments {
		if enrollment.CourseID == courseID && enrollment.UserID == userID {
			return enrollment, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLearningRepo) FindEnrollmentsByUser(userID uuid.UUID) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	for _, enrollment := range m.enrollments {
		if enrollment.UserID == userID {
			enrollments = append(enrollments, *enrollment)
		}
	}
	return enrollments, nil
}

func (m *mockLearningRepo) UpsertCompetency(competency *model.Competency) error {
	key := competency.UserID.String() + "/" + competency.Name
	if existing, ok := m.competencies[key]; ok {
		existing.Level = competency.Level
		existing.UpdatedBy = competency.UpdatedBy
		*competency = *existing
		return nil
	}
	if competency.ID == uuid.Nil {
		competency.ID = uuid.New()
	}
	m.competencies[key] = competency
	return nil
}

func (m *mockLearningRepo) FindCompetenciesByUser(userID uuid.UUID) ([]model.Competency, error) {
	var competencies []model.Competency
	for _, competency := range m.competencies {
		if competency.UserID == userID {
			competencies = append(competencies, *competency)
		}
	}
	return competencies, nil
}

func (m *mockLearningRepo) DeleteCompetency(id uuid.UUID) error {
	for key, competency := range m.competencies {
		if competency.ID == id {
			delete(m.competencies, key)
		}
	}
	return nil
}

type mockDepartmentRepo struct {
	departments map[uuid.UUID]*model.Department
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{departments: make(map[uuid.UUID]*model.Department)}
}

func (m *mockDepartmentRepo) add(department *model.Department) *model.Department {
	if department.ID == uuid.Nil {
		department.ID = uuid.New()
	}
	m.departments[department.ID] = department
	return department
}

func (m *mockDepartmentRepo) FindAll() ([]model.Department, error) {
	var departments []model.Department
	for _, department := range m.departments {
		departments = append(departments, *department)
	}
	return departments, nil
}

func (m *mockDepartmentRepo) FindByID(id uuid.UUID) (*model.Department, error) {
	if department, ok := m.departments[id]; ok {
		return department, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) FindByName(name string) (*model.Department, error) {
	for _, department := range m.departments {
		if department.Name == name {
			return department, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) Create(department *model.Department) error {
	m.add(department)
	return nil
}

func (m *mockDepartmentRepo) Update(department *model.Department) error {
	m.departments[department.ID] = department
	return nil
}

func (m *mockDepartmentRepo) Delete(id uuid.UUID) error {
	delete(m.departments, id)
	return nil
}
