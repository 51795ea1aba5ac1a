package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/mentoria-api/internal/handler"
	"github.com/noah-isme/mentoria-api/internal/middleware"
	"github.com/noah-isme/mentoria-api/internal/service"
	"github.com/noah-isme/mentoria-api/pkg/config"
	"github.com/noah-isme/mentoria-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/mentoria-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/mentoria-api/pkg/middleware/requestid"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth      *service.AuthService
	Teachers  *service.TeacherService
	Students  *service.StudentService
	Questions *service.QuestionService
	Exports   *service.ExportService
	Metrics   *service.MetricsService
	DB        handler.Pinger
}

// NewRouter builds the gin engine with every route mounted under cfg.APIPrefix.
func NewRouter(cfg *config.Config, svc Services, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svc.Metrics))

	ops := handler.NewMetricsHandler(svc.Metrics, svc.DB)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(svc.Auth)
	teacherHandler := handler.NewTeacherHandler(svc.Teachers, svc.Exports)
	studentHandler := handler.NewStudentHandler(svc.Students)
	questionHandler := handler.NewQuestionHandler(svc.Questions)

	requireSession := middleware.Session(svc.Auth)
	requireTeacher := middleware.RequireTeacher(svc.Teachers)
	requireStudent := middleware.RequireStudent(svc.Students)
	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginWindow)

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", loginLimiter.Middleware(), authHandler.Login)
	auth.GET("/session", requireSession, authHandler.Session)

	teachers := api.Group("/teachers")
	teachers.POST("", teacherHandler.Create)
	teacherOnly := teachers.Group("", requireSession, requireTeacher)
	teacherOnly.GET("/me", teacherHandler.Me)
	teacherOnly.GET("/me/tag", teacherHandler.Tag)
	teacherOnly.DELETE("/me", teacherHandler.Deactivate)
	teacherOnly.GET("/me/students", teacherHandler.Students)
	teacherOnly.GET("/students/:id/answers", teacherHandler.StudentAnswers)
	teacherOnly.GET("/students/:id/answers/export", teacherHandler.ExportStudentAnswers)

	students := api.Group("/students")
	students.POST("/self-register", studentHandler.SelfRegister)
	students.POST("", requireSession, requireTeacher, studentHandler.Create)
	studentOnly := students.Group("", requireSession, requireStudent)
	studentOnly.GET("/me", studentHandler.Me)
	studentOnly.POST("/me/tags", studentHandler.AttachTag)

	questions := api.Group("/questions", requireSession, requireStudent)
	questions.GET("/random", questionHandler.Random)
	questions.GET("/:id", questionHandler.Detail)
	questions.POST("/:id/answer", questionHandler.Answer)

	return r
}
