package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/config"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/handler"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/middleware"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/service"
)

type Server struct {
	echo           *echo.Echo
	paymentHandler *handler.PaymentHandler
	courseHandler  *handler.CourseHandler
	userHandler    *handler.UserHandler
	adminHandler   *handler.AdminHandler
	rateLimiter    *middleware.RateLimiter
	authCfg        config.Auth
}

func NewServer(
	paymentService service.PaymentService,
	courseService service.CourseService,
	userService service.UserService,
	adminService service.AdminService,
	rateLimiter *middleware.RateLimiter,
	authCfg config.Auth,
	log *slog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.HTTPErrorHandler = newHTTPErrorHandler(log)

	s := &Server{
		echo:           e,
		paymentHandler: handler.NewPaymentHandler(paymentService),
		courseHandler:  handler.NewCourseHandler(courseService, paymentService),
		userHandler:    handler.NewUserHandler(userService),
		adminHandler:   handler.NewAdminHandler(adminService),
		rateLimiter:    rateLimiter,
		authCfg:        authCfg,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api/v1", s.rateLimiter.Limit(middleware.GeneralPolicy))

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	userAuth := middleware.Auth(s.authCfg.UserSecret)
	adminAuth := middleware.Auth(s.authCfg.AdminSecret)

	// -------- users --------
	user := api.Group("/user")
	user.POST("/signup", s.userHandler.Signup, s.rateLimiter.Limit(middleware.SignupPolicy))
	user.POST("/signin", s.userHandler.Signin, s.rateLimiter.Limit(middleware.SigninPolicy))
	user.POST("/google-signin", s.userHandler.GoogleSignin, s.rateLimiter.Limit(middleware.SigninPolicy))
	user.POST("/logout", s.userHandler.Logout)
	user.GET("/purchases", s.userHandler.Purchases, userAuth)

	// -------- instructors --------
	admin := api.Group("/admin")
	admin.POST("/signup", s.adminHandler.Signup, s.rateLimiter.Limit(middleware.SignupPolicy))
	admin.POST("/signin", s.adminHandler.Signin, s.rateLimiter.Limit(middleware.SigninPolicy))
	admin.POST("/course", s.adminHandler.CreateCourse, adminAuth)
	admin.PUT("/course", s.adminHandler.UpdateCourse, adminAuth)
	admin.GET("/course/bulk", s.adminHandler.ListCourses, adminAuth)

	// -------- courses --------
	course := api.Group("/course")
	course.GET("/preview", s.courseHandler.Preview)
	course.POST("/purchase", s.courseHandler.Purchase, userAuth)

	// -------- payments --------
	pay := api.Group("/payment")
	pay.POST("/create-order", s.paymentHandler.CreateOrder)
	pay.POST("/verify", s.paymentHandler.VerifyPayment, userAuth)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

// newHTTPErrorHandler maps the error taxonomy onto HTTP statuses. Validation
// and signature failures are terminal 400s; gateway failures are 502 and
// retryable by the client; a purchase-write failure after a verified payment
// is reported as 500 only after the service has exhausted its own retries.
func newHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var httpErr *echo.HTTPError
		var inputErr *apperr.InputError
		var gatewayErr *apperr.GatewayError
		var persistErr *apperr.PersistenceError

		switch {
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		case errors.As(err, &inputErr):
			status = http.StatusBadRequest
			message = inputErr.Msg
		case errors.Is(err, apperr.ErrAmountTooSmall):
			status = http.StatusBadRequest
			message = "Amount must be at least ₹1"
		case errors.Is(err, apperr.ErrAmountTooLarge):
			status = http.StatusBadRequest
			message = "Course price exceeds gateway maximum limit of ₹5,00,000"
		case errors.Is(err, apperr.ErrAmountMismatch),
			errors.Is(err, apperr.ErrCourseNotFound):
			status = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, apperr.ErrSignatureMismatch):
			status = http.StatusBadRequest
			message = "Invalid signature"
		case errors.Is(err, apperr.ErrEmailTaken):
			status = http.StatusConflict
			message = apperr.ErrEmailTaken.Error()
		case errors.Is(err, apperr.ErrInvalidCredentials):
			status = http.StatusUnauthorized
			message = apperr.ErrInvalidCredentials.Error()
		case errors.As(err, &gatewayErr):
			status = http.StatusBadGateway
			message = "payment gateway unavailable, please retry"
		case errors.As(err, &persistErr):
			// the payment itself went through; make that explicit
			message = "payment verified, purchase recording delayed; it will appear shortly"
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Any("error", err))
		}

		_ = c.JSON(status, &dto.StatusResponse{
			Success: false,
			Message: message,
		})
	}
}
