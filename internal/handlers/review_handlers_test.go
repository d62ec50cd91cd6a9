package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

func newReviewHandler(db *gorm.DB) *ReviewHandler {
	userSvc := &service.UserService{DB: db}
	categorySvc := &service.CategoryService{DB: db}
	subcategorySvc := &service.SubcategoryService{DB: db, Categories: categorySvc}
	brandSvc := &service.BrandService{DB: db}
	productSvc := &service.ProductService{DB: db, Categories: categorySvc, Subcategories: subcategorySvc, Brands: brandSvc}
	return &ReviewHandler{
		Service: &service.ReviewService{DB: db, Users: userSvc, Products: productSvc},
	}
}

func registerTestUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()

	e := newTestEcho()
	h := newAuthHandler(db)
	c, rec := postJSON(e, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.NoError(t, h.Register(c))

	var resp struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.User.ID
}

func TestReviewCreate(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	reviews := newReviewHandler(db)

	userID := registerTestUser(t, db, "reviewer@example.com")
	product := seedProduct(t, db, "Blender", 59.0)

	c, rec := postJSON(e, "/api/review", map[string]any{
		"productId": product.ID,
		"rating":    5,
		"text":      "Works great",
	})
	setAuthContext(c, userID, models.RoleCustomer)

	require.NoError(t, reviews.Create(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp service.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 5, resp.Review.Rating)
	require.Equal(t, userID, resp.Review.UserID)
	require.Equal(t, "Customer #1", resp.User.Name)
}

func TestReviewAuthorComesFromToken(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	reviews := newReviewHandler(db)

	userID := registerTestUser(t, db, "honest@example.com")
	otherID := registerTestUser(t, db, "other@example.com")
	product := seedProduct(t, db, "Mixer", 45.0)

	// body claims another author, the token wins
	c, rec := postJSON(e, "/api/review", map[string]any{
		"productId": product.ID,
		"rating":    4,
		"userId":    otherID,
	})
	setAuthContext(c, userID, models.RoleCustomer)

	require.NoError(t, reviews.Create(c))

	var resp service.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, userID, resp.Review.UserID)
	require.NotEqual(t, otherID, resp.Review.UserID)
}

func TestReviewUnknownProduct(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	reviews := newReviewHandler(db)

	userID := registerTestUser(t, db, "lost@example.com")

	c, _ := postJSON(e, "/api/review", map[string]any{
		"productId": 999,
		"rating":    3,
	})
	setAuthContext(c, userID, models.RoleCustomer)

	err := reviews.Create(c)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, apperr.Status(err))
}

func TestReviewRatingBounds(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	reviews := newReviewHandler(db)

	userID := registerTestUser(t, db, "bounds@example.com")
	product := seedProduct(t, db, "Iron", 20.0)

	c, _ := postJSON(e, "/api/review", map[string]any{
		"productId": product.ID,
		"rating":    6,
	})
	setAuthContext(c, userID, models.RoleCustomer)

	err := reviews.Create(c)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, apperr.Status(err))
}

func TestReviewsByProduct(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	reviews := newReviewHandler(db)

	userID := registerTestUser(t, db, "lister@example.com")
	product := seedProduct(t, db, "Vacuum", 150.0)
	other := seedProduct(t, db, "Fan", 30.0)

	for _, target := range []models.Product{product, product, other} {
		c, _ := postJSON(e, "/api/review", map[string]any{
			"productId": target.ID,
			"rating":    4,
		})
		setAuthContext(c, userID, models.RoleCustomer)
		require.NoError(t, reviews.Create(c))
	}

	c, rec := getWithParam(e, "/api/review/by-product/1", "id", "1")
	require.NoError(t, reviews.GetByProductID(c))

	var resp []service.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
}
