package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/middleware"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/service"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.adminService.Signup(ctx, &req)
	if err != nil {
		return err
	}

	setSessionCookie(c, resp.Token)
	return c.JSON(http.StatusCreated, resp)
}

func (h *AdminHandler) Signin(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.adminService.Signin(ctx, &req)
	if err != nil {
		return err
	}

	setSessionCookie(c, resp.Token)
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateCourse(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	course, err := h.adminService.CreateCourse(ctx, middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "course created",
		"courseId": course.ID,
	})
}

func (h *AdminHandler) UpdateCourse(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.adminService.UpdateCourse(ctx, middleware.UserID(c), &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "course updated",
		"courseId": req.CourseID,
	})
}

func (h *AdminHandler) ListCourses(c echo.Context) error {
	ctx := c.Request().Context()

	courses, err := h.adminService.ListCourses(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"courses": courses,
	})
}
