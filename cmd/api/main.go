package main

import (
	"fmt"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/config"
	appHTTP "github.com/attendly/attendance-backend-go/internal/handler/http"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/cron"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly/attendance-backend-go/internal/service/attendance"
	penaltyService "github.com/attendly/attendance-backend-go/internal/service/penalty"
	policyService "github.com/attendly/attendance-backend-go/internal/service/policy"
	regularizationService "github.com/attendly/attendance-backend-go/internal/service/regularization"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	orgClock, err := clock.New(cfg.Attendance.Timezone)
	if err != nil {
		fmt.Println("Error loading attendance timezone:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	penaltyRepo := postgresql.NewPenaltyRepository(db)
	regularizationRepo := postgresql.NewRegularizationRepository(db)
	shiftPolicyRepo := postgresql.NewShiftPolicyRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	policyProvider := policyService.NewShiftPolicyProvider(shiftPolicyRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, orgClock, attendanceRepo, penaltyRepo, policyProvider)
	penaltySvc := penaltyService.NewPenaltyService(penaltyRepo)
	regularizationSvc := regularizationService.NewRegularizationService(db, orgClock, regularizationRepo, attendanceRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	penaltyHandler := appHTTP.NewPenaltyHandler(penaltySvc)
	regularizationHandler := appHTTP.NewRegularizationHandler(regularizationSvc)
	policyHandler := appHTTP.NewPolicyHandler(policyProvider)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, policyProvider, orgClock).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		penaltyHandler,
		regularizationHandler,
		policyHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
