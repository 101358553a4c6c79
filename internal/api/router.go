package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neurocare-ai/portal/internal/api/handler"
	"github.com/neurocare-ai/portal/internal/api/middleware"
	"github.com/neurocare-ai/portal/internal/core/domain"
	"github.com/neurocare-ai/portal/internal/core/ports"
)

// Deps carries everything the HTTP surface needs. Redis may be nil when the
// in-memory token store is configured.
type Deps struct {
	Sessions     ports.SessionService
	Upstream     ports.UpstreamGateway
	Audit        ports.AuditRecorder
	AuditReader  ports.AuditReader
	Redis        *redis.Client
	Mongo        *mongo.Client
	CookieName   string
	SecureCookie bool
	Logger       zerolog.Logger
}

// NewRouter assembles the Echo instance: middleware stack, error mapping,
// and the full route table.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echoprometheus.NewMiddleware("neurocare_portal"))

	auth := handler.NewAuthHandler(d.Sessions, d.Upstream, d.Audit, d.CookieName, d.SecureCookie)
	admin := handler.NewAdminHandler(d.Upstream, d.Audit, d.AuditReader)
	doctor := handler.NewDoctorHandler(d.Upstream, d.Audit)
	health := handler.NewHealthHandler(d.Redis, d.Mongo, d.Upstream)

	sessionMW := middleware.Session(d.Sessions, d.CookieName)

	// Unauthenticated surface.
	e.POST("/auth/login", auth.Login)
	e.POST("/auth/forgot-password", auth.ForgotPassword)
	e.POST("/auth/reset-password", auth.ResetPassword)
	e.POST("/auth/logout", auth.Logout)
	e.GET("/session", auth.Session)

	// Admin surface.
	adminGroup := e.Group("/admin", sessionMW, middleware.RBAC(domain.RoleAdmin))
	adminGroup.GET("/doctors", admin.ListDoctors)
	adminGroup.POST("/doctors", admin.CreateDoctor)
	adminGroup.DELETE("/doctors/:id", admin.DeleteDoctor)
	adminGroup.POST("/doctors/verification-otp", admin.SendVerificationOTP)
	adminGroup.POST("/doctors/verify-email", admin.VerifyDoctorEmail)
	adminGroup.GET("/statistics/dementia-classification", admin.DementiaStatistics)
	adminGroup.GET("/audit", admin.AuditTrail)

	// Doctor surface. Admin passes through RBAC implicitly.
	doctorGroup := e.Group("/doctor", sessionMW, middleware.RBAC(domain.RoleDoctor))
	doctorGroup.GET("/profile", doctor.Profile)
	doctorGroup.PUT("/profile", doctor.UpdateProfile)
	doctorGroup.GET("/patients-history", doctor.PatientsHistory)
	doctorGroup.GET("/patients", doctor.ListPatients)
	doctorGroup.POST("/patients", doctor.CreatePatient)
	doctorGroup.DELETE("/patients/:id", doctor.DeletePatient)
	doctorGroup.GET("/patients/:id/visits", doctor.PatientVisits)
	doctorGroup.POST("/patients/:id/upload-mri", doctor.UploadMRI)
	doctorGroup.POST("/patients/:id/upload-eeg", doctor.UploadEEG)
	doctorGroup.GET("/patients/:id/images", doctor.PatientImages)
	doctorGroup.POST("/scan-mri", doctor.ScanMRI)
	doctorGroup.GET("/scans/:id", doctor.ScanResult)

	// Operational surface.
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
