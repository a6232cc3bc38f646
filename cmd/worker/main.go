package main

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"go-hris-suite/internal/jobs"
	"go-hris-suite/internal/repository"
	"go-hris-suite/internal/service"
	"go-hris-suite/internal/ws"
	"go-hris-suite/pkg/config"
	"go-hris-suite/pkg/database"
)

// The worker processes background tasks: monthly payroll runs and the
// nightly absence sweep. It shares the repositories and services with
// the API but runs as its own binary.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db := database.Connect(cfg)

	userRepo := repository.NewUserRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	payrollRepo := repository.NewPayrollRepo(db)

	// The worker has no websocket clients; broadcasts go nowhere but the
	// hub still has to drain them.
	hub := ws.NewHub()
	go hub.Run()

	payrollSvc := service.NewPayrollService(payrollRepo, attendanceRepo, userRepo, service.DeductionPolicy{
		PerAbsence: cfg.AbsenceDeduction,
		PerLateDay: cfg.LatenessDeduction,
	})
	attendanceSvc := service.NewAttendanceService(attendanceRepo, userRepo, hub, service.WorkdayPolicy{
		Start: cfg.WorkdayStart,
		Grace: cfg.LateGrace,
	})

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	jobs.NewHandler(payrollSvc, attendanceSvc).Register(mux)

	log.Printf("Worker listening on %s", cfg.RedisAddr)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Worker stopped: %v", err)
	}
}
