package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/config"
	"github.com/ruslansymonenko/server-electro-grand/internal/handlers"
	authmw "github.com/ruslansymonenko/server-electro-grand/internal/middleware/auth"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
	"github.com/ruslansymonenko/server-electro-grand/internal/tokens"
	"github.com/ruslansymonenko/server-electro-grand/internal/validate"
)

const testAdminKey = "router-admin-key"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	issuer := tokens.NewIssuer([]byte("access"), []byte("refresh"), []byte("admin"))

	userSvc := &service.UserService{DB: db}
	authSvc := &service.AuthService{DB: db, Issuer: issuer, AdminSecretKey: testAdminKey}
	categorySvc := &service.CategoryService{DB: db}
	subcategorySvc := &service.SubcategoryService{DB: db, Categories: categorySvc}
	brandSvc := &service.BrandService{DB: db}
	attributeSvc := &service.AttributeService{DB: db}
	attributeValueSvc := &service.AttributeValueService{DB: db, Attributes: attributeSvc}
	productSvc := &service.ProductService{DB: db, Categories: categorySvc, Subcategories: subcategorySvc, Brands: brandSvc}
	productAttributeSvc := &service.ProductAttributeService{DB: db, Products: productSvc, AttributeValues: attributeValueSvc}
	orderSvc := &service.OrderService{DB: db, Users: userSvc, Products: productSvc}
	orderItemSvc := &service.OrderItemService{DB: db, Orders: orderSvc, Products: productSvc}
	paymentSvc := &service.PaymentService{DB: db, Orders: orderSvc, Users: userSvc}
	reviewSvc := &service.ReviewService{DB: db, Users: userSvc, Products: productSvc}
	filesSvc := &service.FilesService{Root: t.TempDir()}

	e := echo.New()
	e.Validator = validate.New()

	Register(e, &Deps{
		DB:    db,
		Guard: &authmw.Guard{Issuer: issuer},
		AuthHandler: &handlers.AuthHandler{
			Service:   authSvc,
			Domain:    "localhost",
			CookieTTL: 24 * time.Hour,
		},
		UserHandler:             &handlers.UserHandler{Service: userSvc},
		CategoryHandler:         &handlers.CategoryHandler{Service: categorySvc, Files: filesSvc},
		SubcategoryHandler:      &handlers.SubcategoryHandler{Service: subcategorySvc, Files: filesSvc},
		BrandHandler:            &handlers.BrandHandler{Service: brandSvc, Files: filesSvc},
		AttributeHandler:        &handlers.AttributeHandler{Service: attributeSvc},
		AttributeValueHandler:   &handlers.AttributeValueHandler{Service: attributeValueSvc},
		ProductAttributeHandler: &handlers.ProductAttributeHandler{Service: productAttributeSvc},
		ProductHandler:          &handlers.ProductHandler{Service: productSvc, Files: filesSvc},
		OrderHandler:            &handlers.OrderHandler{Service: orderSvc},
		OrderItemHandler:        &handlers.OrderItemHandler{Service: orderItemSvc},
		PaymentHandler:          &handlers.PaymentHandler{Service: paymentSvc},
		ReviewHandler:           &handlers.ReviewHandler{Service: reviewSvc},
		FilesHandler:            &handlers.FilesHandler{Service: filesSvc},
		MailerHandler:           &handlers.MailerHandler{Service: &service.MailerService{}},
	})

	return e
}

func do(e *echo.Echo, method, target, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, e *echo.Echo, target string, payload map[string]string) string {
	t.Helper()

	rec := do(e, http.MethodPost, target, "", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealthEndpoints(t *testing.T) {
	e := newTestServer(t)

	require.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health/live", "", nil).Code)
	require.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health/ready", "", nil).Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	e := newTestServer(t)

	payload := map[string]string{"name": "Dishwashers"}

	// anonymous
	rec := do(e, http.MethodPost, "/api/category", "", payload)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var errResp struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	require.Equal(t, http.StatusUnauthorized, errResp.StatusCode)
	require.NotEmpty(t, errResp.Message)

	// authenticated customer
	customerToken := registerUser(t, e, "/api/auth/register", map[string]string{
		"email":    "customer@example.com",
		"password": "password123",
	})
	rec = do(e, http.MethodPost, "/api/category", customerToken, payload)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// admin
	adminToken := registerUser(t, e, "/api/auth/register-admin", map[string]string{
		"email":     "admin@example.com",
		"password":  "password123",
		"secretKey": testAdminKey,
	})
	rec = do(e, http.MethodPost, "/api/category", adminToken, payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPublicCatalogRoutes(t *testing.T) {
	e := newTestServer(t)

	adminToken := registerUser(t, e, "/api/auth/register-admin", map[string]string{
		"email":     "admin@example.com",
		"password":  "password123",
		"secretKey": testAdminKey,
	})
	rec := do(e, http.MethodPost, "/api/category", adminToken, map[string]string{"name": "Microwaves"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/category", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/category/by-slug/microwaves", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/category/by-slug/nothing-here", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var errResp struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	require.Equal(t, http.StatusNotFound, errResp.StatusCode)
}

func TestValidationErrorsAre400(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "short@example.com",
		"password": "abc",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserProfileRoute(t *testing.T) {
	e := newTestServer(t)

	token := registerUser(t, e, "/api/auth/register", map[string]string{
		"email":    "profile@example.com",
		"password": "password123",
	})

	rec := do(e, http.MethodGet, "/api/user/by-id", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, "profile@example.com", profile.Email)
	require.Equal(t, "Customer #1", profile.Name)

	rec = do(e, http.MethodGet, "/api/user/by-id", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshRoute(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "refresher@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshValue string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == handlers.RefreshCookieName {
			refreshValue = cookie.Value
		}
	}
	require.NotEmpty(t, refreshValue)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/access-token", nil)
	req.AddCookie(&http.Cookie{Name: handlers.RefreshCookieName, Value: refreshValue})
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req)

	require.Equal(t, http.StatusOK, rec2.Code, rec2.Body.String())

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	// no cookie gets a 401, never a 404
	rec3 := do(e, http.MethodPost, "/api/auth/access-token", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec3.Code)
}

func TestAdminUserScopedLookups(t *testing.T) {
	e := newTestServer(t)

	customerToken := registerUser(t, e, "/api/auth/register", map[string]string{
		"email":    "shopper@example.com",
		"password": "password123",
	})
	adminToken := registerUser(t, e, "/api/auth/register-admin", map[string]string{
		"email":     "root@example.com",
		"password":  "password123",
		"secretKey": testAdminKey,
	})

	for _, target := range []string{"/api/order/by-userId/1", "/api/payment/by-userId/1"} {
		rec := do(e, http.MethodGet, target, adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, target)

		rec = do(e, http.MethodGet, target, customerToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code, target)

		rec = do(e, http.MethodGet, target, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}
