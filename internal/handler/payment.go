package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/middleware"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.CourseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "courseId is required")
	}

	resp, err := h.paymentService.CreateOrder(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payment confirmation fields")
	}
	if req.CourseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "courseId is required")
	}

	if err := h.paymentService.VerifyPayment(ctx, middleware.UserID(c), &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.StatusResponse{
		Success: true,
		Message: "Payment verified successfully",
	})
}
