package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/oduyemi/preschool-api/api/swagger"
	"github.com/oduyemi/preschool-api/internal/handler"
	"github.com/oduyemi/preschool-api/internal/middleware"
	"github.com/oduyemi/preschool-api/internal/models"
	"github.com/oduyemi/preschool-api/internal/repository"
	"github.com/oduyemi/preschool-api/internal/service"
	"github.com/oduyemi/preschool-api/pkg/cache"
	"github.com/oduyemi/preschool-api/pkg/config"
	"github.com/oduyemi/preschool-api/pkg/database"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
	"github.com/oduyemi/preschool-api/pkg/export"
	"github.com/oduyemi/preschool-api/pkg/logger"
	corsmiddleware "github.com/oduyemi/preschool-api/pkg/middleware/cors"
	reqidmiddleware "github.com/oduyemi/preschool-api/pkg/middleware/requestid"
	"github.com/oduyemi/preschool-api/pkg/response"
)

// @title Preschool API
// @version 1.0.0
// @description Administrative backend for preschool management
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, login limiting disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	// Repositories
	programRepo := repository.NewProgramRepository(db)
	classRepo := repository.NewClassRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	parentRepo := repository.NewParentRepository(db)
	admissionRepo := repository.NewAdmissionRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	// Services
	metricsSvc := service.NewMetricsService()
	limiter := cache.NewLoginLimiter(redisClient, cfg.Login.MaxAttempts, cfg.Login.AttemptsWindow)
	authSvc := service.NewAuthService(staffRepo, parentRepo, limiter, cfg.JWT, validate, logr)
	programSvc := service.NewProgramService(programRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, programRepo, studentRepo, validate, logr)
	lookupSvc := service.NewLookupService(lookupRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, lookupRepo, lookupRepo, validate, logr)
	staffSvc := service.NewStaffService(staffRepo, lookupRepo, classRepo, validate, logr)
	parentSvc := service.NewParentService(parentRepo, lookupRepo, validate, logr)
	admissionSvc := service.NewAdmissionService(admissionRepo, studentRepo, programRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, studentRepo, validate, logr)
	activitySvc := service.NewActivityService(activityRepo, studentRepo, validate, logr)
	billingSvc := service.NewBillingService(billingRepo, studentRepo, export.NewPDFExporter(), validate, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, staffRepo, validate, logr)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, metricsSvc)
	programHandler := handler.NewProgramHandler(programSvc)
	classHandler := handler.NewClassHandler(classSvc)
	lookupHandler := handler.NewLookupHandler(lookupSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	staffHandler := handler.NewStaffHandler(staffSvc)
	parentHandler := handler.NewParentHandler(parentSvc)
	admissionHandler := handler.NewAdmissionHandler(admissionSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)
	billingHandler := handler.NewBillingHandler(billingSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// Public routes
	api.POST("/auth/staff/login", authHandler.StaffLogin)
	api.POST("/auth/parent/login", authHandler.ParentLogin)
	api.POST("/parents/register", parentHandler.Register)

	// Authenticated routes
	auth := api.Group("")
	auth.Use(middleware.JWT(authSvc))

	auth.GET("/auth/me", authHandler.Me)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staffRoles := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher, models.RoleAccountant, models.RoleStaff)
	teacherRoles := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)
	accountantRoles := middleware.RequireRoles(models.RoleAdmin, models.RoleAccountant)

	// Programs
	auth.GET("/programs", programHandler.List)
	auth.GET("/programs/:id", programHandler.Get)
	auth.POST("/programs", staffRoles, programHandler.Create)
	auth.PUT("/programs/:id", staffRoles, programHandler.Update)
	auth.DELETE("/programs/:id", adminOnly, programHandler.Delete)

	// Classes
	auth.GET("/classes", classHandler.List)
	auth.GET("/classes/:id", classHandler.Get)
	auth.POST("/classes", staffRoles, classHandler.Create)
	auth.PUT("/classes/:id", staffRoles, classHandler.Update)
	auth.DELETE("/classes/:id", adminOnly, classHandler.Delete)
	auth.POST("/classes/:id/students/:studentId", staffRoles, classHandler.Enroll)
	auth.DELETE("/classes/:id/students/:studentId", staffRoles, classHandler.Unenroll)
	auth.GET("/classes/:id/roster", classHandler.Roster)
	auth.GET("/classes/:id/roster/export", staffRoles, classHandler.ExportRoster)

	// Lookups
	auth.GET("/departments", lookupHandler.ListDepartments)
	auth.POST("/departments", staffRoles, lookupHandler.CreateDepartment)
	auth.DELETE("/departments/:id", adminOnly, lookupHandler.DeleteDepartment)
	auth.GET("/roles", lookupHandler.ListRoles)
	auth.POST("/roles", adminOnly, lookupHandler.CreateRole)
	auth.DELETE("/roles/:id", adminOnly, lookupHandler.DeleteRole)
	auth.GET("/genders", lookupHandler.ListGenders)
	auth.POST("/genders", staffRoles, lookupHandler.CreateGender)
	auth.DELETE("/genders/:id", adminOnly, lookupHandler.DeleteGender)
	auth.GET("/emergency-contacts", lookupHandler.ListEmergencyContacts)
	auth.POST("/emergency-contacts", staffRoles, lookupHandler.CreateEmergencyContact)
	auth.DELETE("/emergency-contacts/:id", adminOnly, lookupHandler.DeleteEmergencyContact)
	auth.GET("/medical-categories", lookupHandler.ListMedicalCategories)
	auth.POST("/medical-categories", staffRoles, lookupHandler.CreateMedicalCategory)
	auth.DELETE("/medical-categories/:id", adminOnly, lookupHandler.DeleteMedicalCategory)
	auth.GET("/medical-conditions", lookupHandler.ListMedicalConditions)
	auth.POST("/medical-conditions", staffRoles, lookupHandler.CreateMedicalCondition)
	auth.DELETE("/medical-conditions/:id", adminOnly, lookupHandler.DeleteMedicalCondition)

	// Students
	auth.GET("/students", studentHandler.List)
	auth.GET("/students/:id", studentHandler.Get)
	auth.POST("/students", staffRoles, studentHandler.Create)
	auth.PUT("/students/:id", staffRoles, studentHandler.Update)
	auth.DELETE("/students/:id", adminOnly, studentHandler.Delete)
	auth.GET("/students/:id/medical-conditions", studentHandler.ListMedicalConditions)
	auth.POST("/students/:id/medical-conditions/:conditionId", staffRoles, studentHandler.AddMedicalCondition)
	auth.DELETE("/students/:id/medical-conditions/:conditionId", staffRoles, studentHandler.RemoveMedicalCondition)
	auth.GET("/students/:id/attendance", attendanceHandler.History)

	// Staff and teachers
	auth.GET("/staff", staffHandler.List)
	auth.GET("/staff/:id", staffHandler.Get)
	auth.POST("/staff", adminOnly, staffHandler.Create)
	auth.PUT("/staff/:id", middleware.RequireRoles(models.RoleAdmin, middleware.SelfRole), staffHandler.Update)
	auth.DELETE("/staff/:id", adminOnly, staffHandler.Delete)
	auth.POST("/staff/:id/teacher", adminOnly, staffHandler.PromoteTeacher)
	auth.GET("/staff/:id/classes", staffHandler.ListAssignments)
	auth.POST("/staff/:id/classes", adminOnly, staffHandler.AssignClass)
	auth.DELETE("/staff/:id/classes/:classId", adminOnly, staffHandler.UnassignClass)
	auth.GET("/staff/:id/schedules", scheduleHandler.ListByStaff)

	// Parents
	auth.GET("/parents", staffRoles, parentHandler.List)
	auth.GET("/parents/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher, models.RoleAccountant, models.RoleStaff, middleware.SelfRole), parentHandler.Get)
	auth.PUT("/parents/:id", middleware.RequireRoles(models.RoleAdmin, middleware.SelfRole), parentHandler.Update)
	auth.DELETE("/parents/:id", adminOnly, parentHandler.Delete)

	// Admissions
	auth.GET("/admissions", staffRoles, admissionHandler.List)
	auth.GET("/admissions/:id", staffRoles, admissionHandler.Get)
	auth.POST("/admissions", staffRoles, admissionHandler.Create)

	// Attendance and activities
	auth.POST("/attendance", teacherRoles, attendanceHandler.Mark)
	auth.GET("/activities", activityHandler.List)
	auth.GET("/activities/:id", activityHandler.Get)
	auth.POST("/activities", teacherRoles, activityHandler.Create)
	auth.DELETE("/activities/:id", adminOnly, activityHandler.Delete)

	// Billing
	auth.GET("/bills", accountantRoles, billingHandler.ListBills)
	auth.GET("/bills/:id", accountantRoles, billingHandler.GetBill)
	auth.POST("/bills", accountantRoles, billingHandler.CreateBill)
	auth.GET("/bills/:id/payments", accountantRoles, billingHandler.ListPayments)
	auth.POST("/payments", accountantRoles, billingHandler.RecordPayment)
	auth.GET("/payments/:id", accountantRoles, billingHandler.GetPayment)
	auth.GET("/payments/:id/receipt", accountantRoles, billingHandler.Receipt)
	auth.DELETE("/payments/:id", adminOnly, billingHandler.DeletePayment)

	// Schedules
	auth.POST("/schedules", adminOnly, scheduleHandler.Create)
	auth.DELETE("/schedules/:id", adminOnly, scheduleHandler.Delete)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
