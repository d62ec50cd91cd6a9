package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/config"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
	"github.com/ruslansymonenko/server-electro-grand/internal/tokens"
	"github.com/ruslansymonenko/server-electro-grand/internal/validate"
)

const testAdminKey = "test-admin-key"

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.New()
	return e
}

func newAuthHandler(db *gorm.DB) *AuthHandler {
	issuer := tokens.NewIssuer([]byte("access-secret"), []byte("refresh-secret"), []byte("admin-secret"))
	return &AuthHandler{
		Service:   &service.AuthService{DB: db, Issuer: issuer, AdminSecretKey: testAdminKey},
		Domain:    "localhost",
		CookieTTL: 24 * time.Hour,
	}
}

func postJSON(e *echo.Echo, target string, payload any) (echo.Context, *httptest.ResponseRecorder) {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	c, rec := postJSON(e, "/api/auth/register", map[string]string{
		"email":    "user@example.com",
		"password": "password123",
	})
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.User.ID)
	require.Equal(t, "user@example.com", resp.User.Email)
	require.Equal(t, "Customer #1", resp.User.Name)
	require.NotEmpty(t, resp.AccessToken)

	// password material must never appear in the response
	require.NotContains(t, strings.ToLower(rec.Body.String()), "password")

	cookie := findCookie(rec, RefreshCookieName)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteNoneMode, cookie.SameSite)

	var stored models.User
	require.NoError(t, db.Where("email = ?", "user@example.com").First(&stored).Error)
	require.Equal(t, models.RoleCustomer, stored.Role)
	require.NotEqual(t, "password123", stored.PasswordHash)
}

func TestRegisterDuplicate(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	payload := map[string]string{"email": "dup@example.com", "password": "password123"}

	c, _ := postJSON(e, "/api/auth/register", payload)
	require.NoError(t, h.Register(c))

	c2, _ := postJSON(e, "/api/auth/register", payload)
	err := h.Register(c2)
	require.Error(t, err)
	require.Equal(t, http.StatusConflict, apperr.Status(err))

	var count int64
	db.Model(&models.User{}).Where("email = ?", "dup@example.com").Count(&count)
	require.EqualValues(t, 1, count)
}

func TestLogin(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	c, rec := postJSON(e, "/api/auth/register", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	require.NoError(t, h.Register(c))

	var registered struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	c2, rec2 := postJSON(e, "/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	require.NoError(t, h.Login(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	var resp struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp))
	require.Equal(t, registered.User.ID, resp.User.ID)
	require.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, findCookie(rec2, RefreshCookieName))
}

func TestLoginWrongPassword(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	c, _ := postJSON(e, "/api/auth/register", map[string]string{
		"email":    "victim@example.com",
		"password": "password123",
	})
	require.NoError(t, h.Register(c))

	c2, rec2 := postJSON(e, "/api/auth/login", map[string]string{
		"email":    "victim@example.com",
		"password": "wrong-password",
	})
	err := h.Login(c2)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, apperr.Status(err))
	require.Nil(t, findCookie(rec2, RefreshCookieName))
}

func TestLoginRevealsNothingAboutEmails(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	c, _ := postJSON(e, "/api/auth/register", map[string]string{
		"email":    "known@example.com",
		"password": "password123",
	})
	require.NoError(t, h.Register(c))

	c2, _ := postJSON(e, "/api/auth/login", map[string]string{
		"email":    "known@example.com",
		"password": "wrong-password",
	})
	errKnown := h.Login(c2)

	c3, _ := postJSON(e, "/api/auth/login", map[string]string{
		"email":    "unknown@example.com",
		"password": "wrong-password",
	})
	errUnknown := h.Login(c3)

	require.Error(t, errKnown)
	require.Error(t, errUnknown)
	require.Equal(t, apperr.Status(errKnown), apperr.Status(errUnknown))
	require.Equal(t, apperr.Message(errKnown), apperr.Message(errUnknown))
}

func TestRefresh(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	c, rec := postJSON(e, "/api/auth/register", map[string]string{
		"email":    "refresh@example.com",
		"password": "password123",
	})
	require.NoError(t, h.Register(c))
	refreshCookie := findCookie(rec, RefreshCookieName)
	require.NotNil(t, refreshCookie)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/access-token", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: refreshCookie.Value})
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req, rec2)

	require.NoError(t, h.Refresh(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, findCookie(rec2, RefreshCookieName))
}

func TestRefreshMissingCookie(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/access-token", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Refresh(c)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, apperr.Status(err))

	cleared := findCookie(rec, RefreshCookieName)
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
	require.Equal(t, -1, cleared.MaxAge)
}

func TestRefreshGarbageToken(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/access-token", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Refresh(c)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, apperr.Status(err))

	cleared := findCookie(rec, RefreshCookieName)
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
}

func TestRegisterAdmin(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	c, rec := postJSON(e, "/api/auth/register-admin", map[string]string{
		"email":     "admin@example.com",
		"password":  "password123",
		"secretKey": testAdminKey,
	})
	require.NoError(t, h.RegisterAdmin(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, findCookie(rec, RefreshCookieName))
	require.NotNil(t, findCookie(rec, AdminCookieName))

	var stored models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&stored).Error)
	require.Equal(t, models.RoleAdmin, stored.Role)
}

func TestLoginAdminWrongSecret(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	c, _ := postJSON(e, "/api/auth/register-admin", map[string]string{
		"email":     "admin2@example.com",
		"password":  "password123",
		"secretKey": testAdminKey,
	})
	require.NoError(t, h.RegisterAdmin(c))

	c2, rec2 := postJSON(e, "/api/auth/login-admin", map[string]string{
		"email":     "admin2@example.com",
		"password":  "password123",
		"secretKey": "wrong-key",
	})
	err := h.LoginAdmin(c2)
	require.Error(t, err)
	require.Equal(t, http.StatusForbidden, apperr.Status(err))
	require.Nil(t, findCookie(rec2, RefreshCookieName))
	require.Nil(t, findCookie(rec2, AdminCookieName))
}

func TestLogout(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newAuthHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "true\n", rec.Body.String())

	refresh := findCookie(rec, RefreshCookieName)
	admin := findCookie(rec, AdminCookieName)
	require.NotNil(t, refresh)
	require.NotNil(t, admin)
	require.Empty(t, refresh.Value)
	require.Empty(t, admin.Value)
	require.Equal(t, -1, refresh.MaxAge)
}
