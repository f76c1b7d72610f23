package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/middleware"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/service"
)

type CourseHandler struct {
	courseService  service.CourseService
	paymentService service.PaymentService
}

func NewCourseHandler(courseService service.CourseService, paymentService service.PaymentService) *CourseHandler {
	return &CourseHandler{
		courseService:  courseService,
		paymentService: paymentService,
	}
}

func (h *CourseHandler) Preview(c echo.Context) error {
	ctx := c.Request().Context()

	courses, err := h.courseService.Preview(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"courses": courses,
	})
}

// Purchase records a course purchase. Unlike the open insert it replaces,
// it only accepts a gateway payment confirmation and runs it through
// signature verification; an unsigned request can never mint an entitlement.
func (h *CourseHandler) Purchase(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.CourseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "courseId is required")
	}

	if err := h.paymentService.VerifyPayment(ctx, middleware.UserID(c), &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.StatusResponse{
		Success: true,
		Message: "You have successfully bought the course",
	})
}
