package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-hris-suite/internal/handler"
	"go-hris-suite/internal/middleware"
	"go-hris-suite/internal/model"
	"go-hris-suite/internal/presence"
	"go-hris-suite/internal/repository"
	"go-hris-suite/internal/service"
	"go-hris-suite/internal/ws"
	"go-hris-suite/pkg/config"
	"go-hris-suite/pkg/database"
	"go-hris-suite/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	jwt.SetSecret(cfg.JWTSecret)

	// 2. Setup Database
	db := database.Connect(cfg)
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.RoleRecord{}, &model.Department{},
		&model.Attendance{}, &model.LeaveRequest{}, &model.Payslip{}, &model.Schedule{},
		&model.JobPosting{}, &model.Application{}, &model.Evaluation{},
		&model.Course{}, &model.Quiz{}, &model.QuizQuestion{}, &model.QuizSubmission{},
		&model.Enrollment{}, &model.Competency{},
	)

	// 3. Seed default privileges, roles, and the bootstrap superadmin
	seedPrivilegesRolesAndAdmin(db)

	// 4. Redis: presence tracking and the background task queue
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	tracker := presence.NewTracker(redisClient, presence.DefaultTTL)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer asynqClient.Close()

	// 5. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 6. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	departmentRepo := repository.NewDepartmentRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	leaveRepo := repository.NewLeaveRepo(db)
	payrollRepo := repository.NewPayrollRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)
	recruitmentRepo := repository.NewRecruitmentRepo(db)
	learningRepo := repository.NewLearningRepo(db)

	authService := service.NewAuthService(userRepo, tracker, cfg.TokenExpiry)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo, departmentRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo, wsHub, service.WorkdayPolicy{
		Start: cfg.WorkdayStart,
		Grace: cfg.LateGrace,
	})
	leaveService := service.NewLeaveService(leaveRepo, userRepo)
	payrollService := service.NewPayrollService(payrollRepo, attendanceRepo, userRepo, service.DeductionPolicy{
		PerAbsence: cfg.AbsenceDeduction,
		PerLateDay: cfg.LatenessDeduction,
	})
	scheduleService := service.NewScheduleService(scheduleRepo, userRepo, wsHub)
	recruitmentService := service.NewRecruitmentService(recruitmentRepo, departmentRepo)
	learningService := service.NewLearningService(learningRepo, userRepo)
	dashboardService := service.NewDashboardService(userRepo, attendanceRepo, leaveRepo, recruitmentRepo, tracker)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo, privilegeRepo)
	departmentHandler := handler.NewDepartmentHandler(departmentRepo)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	leaveHandler := handler.NewLeaveHandler(leaveService)
	payrollHandler := handler.NewPayrollHandler(payrollService, asynqClient)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	recruitmentHandler := handler.NewRecruitmentHandler(recruitmentService)
	learningHandler := handler.NewLearningHandler(learningService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Campus HRIS Suite v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Auth Routes (No authentication required; /me parses its own Bearer header)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authHandler.Me)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/logout", middleware.RequireAuth(userRepo), authHandler.Logout)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// Applicants are not employees: the posting list and the application
	// form stay public.
	api.Get("/hiring/postings", recruitmentHandler.GetPostings)
	api.Post("/hiring/applications", recruitmentHandler.SubmitApplication)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/overview", middleware.RequirePrivilege("dashboard:view"), dashboardHandler.GetOverview)

	// User Management Routes (role-gated group, per-route privilege checks)
	users := protected.Group("/users", middleware.RequireRoles(model.RoleSuperAdmin, model.RoleHRAdmin, model.RoleDean))
	users.Get("/", middleware.RequirePrivilege("user:view"), userHandler.GetUsers)
	users.Get("/:id", middleware.RequirePrivilege("user:view"), userHandler.GetUser)
	users.Post("/", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	users.Put("/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	users.Delete("/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	users.Put("/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role and privilege catalogs
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// Departments
	protected.Get("/departments", middleware.RequirePrivilege("department:view"), departmentHandler.GetDepartments)
	protected.Post("/departments", middleware.RequirePrivilege("department:manage"), departmentHandler.CreateDepartment)
	protected.Put("/departments/:id", middleware.RequirePrivilege("department:manage"), departmentHandler.UpdateDepartment)
	protected.Delete("/departments/:id", middleware.RequirePrivilege("department:manage"), departmentHandler.DeleteDepartment)

	// Attendance (check-in/out is self-service for every employee)
	protected.Post("/attendance/check-in", attendanceHandler.CheckIn)
	protected.Post("/attendance/check-out", attendanceHandler.CheckOut)
	protected.Get("/attendance/me", middleware.RequirePrivilege("attendance:view"), attendanceHandler.GetMyAttendance)
	protected.Get("/attendance/daily", middleware.RequirePrivilege("attendance:view_all"), attendanceHandler.GetDailyOverview)
	protected.Get("/attendance/summary/:user_id", middleware.RequirePrivilege("attendance:view_all"), attendanceHandler.GetSummary)

	// Leave
	protected.Post("/leaves", middleware.RequirePrivilege("leave:request"), leaveHandler.RequestLeave)
	protected.Get("/leaves/me", middleware.RequirePrivilege("leave:request"), leaveHandler.GetMyLeaves)
	protected.Get("/leaves/balance", middleware.RequirePrivilege("leave:request"), leaveHandler.GetBalance)
	protected.Get("/leaves/pending", middleware.RequirePrivilege("leave:approve"), leaveHandler.GetPending)
	protected.Put("/leaves/:id/decision", middleware.RequirePrivilege("leave:approve"), leaveHandler.Decide)

	// Payroll
	protected.Get("/payroll/payslips/me", middleware.RequirePrivilege("payroll:view"), payrollHandler.GetMyPayslips)
	protected.Get("/payroll/payslips", middleware.RequireAnyPrivilege("payroll:view_all", "payroll:generate"), payrollHandler.GetPeriodPayslips)
	protected.Post("/payroll/runs", middleware.RequirePrivilege("payroll:generate"), payrollHandler.GeneratePeriod)
	protected.Post("/payroll/payslips/:user_id", middleware.RequirePrivilege("payroll:generate"), payrollHandler.GeneratePayslip)
	protected.Put("/payroll/payslips/:id/paid", middleware.RequirePrivilege("payroll:generate"), payrollHandler.MarkPaid)

	// Scheduling
	protected.Get("/schedules", middleware.RequirePrivilege("schedule:view"), scheduleHandler.GetSchedules)
	// The literal segment has to register before the :id catch-all.
	protected.Get("/schedules/user/:user_id", middleware.RequirePrivilege("schedule:view"), scheduleHandler.GetSchedulesByUser)
	protected.Get("/schedules/:id", middleware.RequirePrivilege("schedule:view"), scheduleHandler.GetSchedule)
	protected.Post("/schedules", middleware.RequirePrivilege("schedule:create"), scheduleHandler.CreateSchedule)
	protected.Put("/schedules/:id", middleware.RequirePrivilege("schedule:update"), scheduleHandler.UpdateSchedule)
	protected.Delete("/schedules/:id", middleware.RequirePrivilege("schedule:delete"), scheduleHandler.DeleteSchedule)

	// Hiring pipeline (staff-facing side)
	protected.Post("/hiring/postings", middleware.RequirePrivilege("hiring:manage"), recruitmentHandler.CreatePosting)
	protected.Put("/hiring/postings/:id/close", middleware.RequirePrivilege("hiring:manage"), recruitmentHandler.ClosePosting)
	protected.Get("/hiring/postings/:id/applications", middleware.RequirePrivilege("hiring:view"), recruitmentHandler.GetApplications)
	protected.Put("/hiring/applications/:id/stage", middleware.RequirePrivilege("hiring:manage"), recruitmentHandler.AdvanceApplication)
	protected.Post("/hiring/applications/:id/evaluations", middleware.RequirePrivilege("hiring:evaluate"), recruitmentHandler.AddEvaluation)
	protected.Get("/hiring/applications/:id/score", middleware.RequirePrivilege("hiring:view"), recruitmentHandler.GetAverageScore)

	// Learning & competency
	protected.Get("/learning/courses", middleware.RequirePrivilege("learning:view"), learningHandler.GetCourses)
	protected.Post("/learning/courses", middleware.RequirePrivilege("learning:manage"), learningHandler.CreateCourse)
	protected.Post("/learning/quizzes", middleware.RequirePrivilege("learning:manage"), learningHandler.CreateQuiz)
	protected.Post("/learning/courses/:id/enroll", middleware.RequirePrivilege("learning:view"), learningHandler.Enroll)
	protected.Get("/learning/enrollments/me", middleware.RequirePrivilege("learning:view"), learningHandler.GetMyEnrollments)
	protected.Post("/learning/quizzes/:id/submit", middleware.RequirePrivilege("learning:view"), learningHandler.SubmitQuiz)
	protected.Put("/learning/competencies/:user_id", middleware.RequirePrivilege("competency:manage"), learningHandler.SetCompetency)
	protected.Get("/learning/competencies/:user_id", middleware.RequirePrivilege("competency:view"), learningHandler.GetCompetencies)
	protected.Post("/learning/competencies/:user_id/gaps", middleware.RequirePrivilege("competency:view"), learningHandler.GetCompetencyGaps)

	// WebSocket Route (token goes in the query string; browsers cannot
	// set headers on websocket upgrades)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		claims, err := jwt.ValidateToken(c.Query("token"))
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		c.Locals("user_id", claims.UserID.String())
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("user_id").(string)
		wsHub.Register <- &ws.Client{Conn: c, UserID: userID}
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and the
// bootstrap superadmin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// Superadmin gets ALL privileges
	superRole, err := roleRepo.FindByCode(model.RoleSuperAdmin)
	if err == nil && len(superRole.Privileges) == 0 {
		db.Model(superRole).Association("Privileges").Replace(allPrivileges)
		log.Println("superadmin role assigned all privileges")
	}

	// Every other role gets its default grant
	for roleCode, codes := range model.RoleDefaultPrivileges {
		role, err := roleRepo.FindByCode(roleCode)
		if err != nil || len(role.Privileges) > 0 {
			continue
		}
		privileges, err := privilegeRepo.FindByCodes(codes)
		if err != nil {
			log.Printf("Warning: Failed to resolve privileges for %s: %v", roleCode, err)
			continue
		}
		db.Model(role).Association("Privileges").Replace(privileges)
		log.Printf("%s role assigned default privileges", roleCode)
	}

	// 4. Create the bootstrap superadmin
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		superRole, err := roleRepo.FindByCode(model.RoleSuperAdmin)
		if err != nil {
			log.Printf("Warning: superadmin role missing, skipping admin user: %v", err)
			return
		}

		admin := &model.User{
			Email:      "admin@example.com",
			FullName:   "Super Administrator",
			RoleID:     &superRole.ID,
			IsActive:   true,
			Privileges: superRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123 (superadmin)")
		}
	}
}
