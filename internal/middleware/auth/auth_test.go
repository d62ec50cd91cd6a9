package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/tokens"
)

func newTestGuard() *Guard {
	return &Guard{Issuer: tokens.NewIssuer([]byte("access"), []byte("refresh"), []byte("admin"))}
}

func request(e *echo.Echo, authorization string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	guard := newTestGuard()

	raw, err := guard.Issuer.IssueAccess(7, "customer")
	require.NoError(t, err)

	c := request(e, "Bearer "+raw)
	require.NoError(t, guard.RequireAuth(ok)(c))

	id, found := UserID(c)
	require.True(t, found)
	require.EqualValues(t, 7, id)

	role, found := Role(c)
	require.True(t, found)
	require.Equal(t, "customer", role)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	e := echo.New()
	guard := newTestGuard()

	err := guard.RequireAuth(ok)(request(e, ""))
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}

func TestRequireAuthBadToken(t *testing.T) {
	e := echo.New()
	guard := newTestGuard()

	err := guard.RequireAuth(ok)(request(e, "Bearer garbage"))
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}

func TestRequireAuthRejectsRefreshToken(t *testing.T) {
	e := echo.New()
	guard := newTestGuard()

	refresh, err := guard.Issuer.IssueRefresh(7, "customer")
	require.NoError(t, err)

	err = guard.RequireAuth(ok)(request(e, "Bearer "+refresh))
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}

func TestRequireRoles(t *testing.T) {
	e := echo.New()
	guard := newTestGuard()

	admin, err := guard.Issuer.IssueAccess(1, "admin")
	require.NoError(t, err)
	customer, err := guard.Issuer.IssueAccess(2, "customer")
	require.NoError(t, err)

	handler := guard.RequireAuth(guard.RequireRoles("admin")(ok))

	require.NoError(t, handler(request(e, "Bearer "+admin)))

	err = handler(request(e, "Bearer "+customer))
	require.Error(t, err)
	require.Equal(t, http.StatusForbidden, apperr.Status(err))
}

func TestRequireRolesWithoutAuth(t *testing.T) {
	e := echo.New()
	guard := newTestGuard()

	err := guard.RequireRoles("admin")(ok)(request(e, ""))
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}
