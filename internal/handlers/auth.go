package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/mykafka"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

const (
	RefreshCookieName = "refreshToken"
	AdminCookieName   = "adminToken"
)

type AuthHandler struct {
	Service   *service.AuthService
	Producer  *mykafka.Producer
	Domain    string
	CookieTTL time.Duration
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

type AdminRegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Name      string `json:"name"`
	SecretKey string `json:"secretKey" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	SecretKey string `json:"secretKey" validate:"required"`
}

type authResponse struct {
	User        service.PublicUser `json:"user"`
	AccessToken string             `json:"accessToken"`
}

func (h *AuthHandler) createCookie(name, value string, exp time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.Domain,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
	return cookie
}

func (h *AuthHandler) attachCookie(c echo.Context, name, value string) {
	c.SetCookie(h.createCookie(name, value, time.Now().Add(h.CookieTTL)))
}

func (h *AuthHandler) clearCookie(c echo.Context, name string) {
	cookie := h.createCookie(name, "", time.Unix(0, 0))
	cookie.MaxAge = -1
	c.SetCookie(cookie)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.Service.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	h.publishUserEvent(c, "user_registered", result.User.ID, result.User.Email)
	h.attachCookie(c, RefreshCookieName, result.RefreshToken)

	return c.JSON(http.StatusOK, authResponse{User: result.User, AccessToken: result.AccessToken})
}

func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var req AdminRegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.Service.RegisterAdmin(c.Request().Context(), req.Email, req.Password, req.Name, req.SecretKey)
	if err != nil {
		return err
	}

	h.publishUserEvent(c, "admin_registered", result.User.ID, result.User.Email)
	h.attachCookie(c, RefreshCookieName, result.RefreshToken)
	h.attachCookie(c, AdminCookieName, result.AdminToken)

	return c.JSON(http.StatusOK, authResponse{User: result.User, AccessToken: result.AccessToken})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.Service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.publishUserEvent(c, "user_logged_in", result.User.ID, result.User.Email)
	h.attachCookie(c, RefreshCookieName, result.RefreshToken)

	return c.JSON(http.StatusOK, authResponse{User: result.User, AccessToken: result.AccessToken})
}

func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.Service.LoginAdmin(c.Request().Context(), req.Email, req.Password, req.SecretKey)
	if err != nil {
		return err
	}

	h.publishUserEvent(c, "admin_logged_in", result.User.ID, result.User.Email)
	h.attachCookie(c, RefreshCookieName, result.RefreshToken)
	h.attachCookie(c, AdminCookieName, result.AdminToken)

	return c.JSON(http.StatusOK, authResponse{User: result.User, AccessToken: result.AccessToken})
}

// Refresh mints a new token pair from the refresh cookie. A missing or
// bad cookie clears the session so the client stops retrying with it.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		h.clearCookie(c, RefreshCookieName)
		return apperr.New(apperr.Unauthorized, "refresh token not passed")
	}

	result, err := h.Service.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		if apperr.KindOf(err) == apperr.Unauthorized {
			h.clearCookie(c, RefreshCookieName)
		}
		return err
	}

	h.attachCookie(c, RefreshCookieName, result.RefreshToken)

	return c.JSON(http.StatusOK, authResponse{User: result.User, AccessToken: result.AccessToken})
}

// Logout only clears cookies. Issued tokens stay valid until expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearCookie(c, RefreshCookieName)
	h.clearCookie(c, AdminCookieName)
	return c.JSON(http.StatusOK, true)
}

func (h *AuthHandler) publishUserEvent(c echo.Context, eventType string, userID uint, email string) {
	event := map[string]interface{}{
		"type":   eventType,
		"userId": userID,
		"email":  email,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(userID), event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}
