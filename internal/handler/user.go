package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/middleware"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.userService.Signup(ctx, &req)
	if err != nil {
		return err
	}

	setSessionCookie(c, resp.Token)
	return c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Signin(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.userService.Signin(ctx, &req)
	if err != nil {
		return err
	}

	setSessionCookie(c, resp.Token)
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GoogleSignin(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.GoogleSigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.userService.GoogleSignin(ctx, &req)
	if err != nil {
		return err
	}

	setSessionCookie(c, resp.Token)
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
	})

	return c.JSON(http.StatusOK, &dto.StatusResponse{
		Success: true,
		Message: "Logged Out Successfully!",
	})
}

func (h *UserHandler) Purchases(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := h.userService.Purchases(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
