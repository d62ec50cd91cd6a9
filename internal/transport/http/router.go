package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/handlers"
	"github.com/ruslansymonenko/server-electro-grand/internal/middleware/auth"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type Deps struct {
	DB *gorm.DB

	Guard *auth.Guard

	AuthHandler             *handlers.AuthHandler
	UserHandler             *handlers.UserHandler
	CategoryHandler         *handlers.CategoryHandler
	SubcategoryHandler      *handlers.SubcategoryHandler
	BrandHandler            *handlers.BrandHandler
	AttributeHandler        *handlers.AttributeHandler
	AttributeValueHandler   *handlers.AttributeValueHandler
	ProductAttributeHandler *handlers.ProductAttributeHandler
	ProductHandler          *handlers.ProductHandler
	OrderHandler            *handlers.OrderHandler
	OrderItemHandler        *handlers.OrderItemHandler
	PaymentHandler          *handlers.PaymentHandler
	ReviewHandler           *handlers.ReviewHandler
	FilesHandler            *handlers.FilesHandler
	MailerHandler           *handlers.MailerHandler
}

// ErrorHandler maps application errors to HTTP statuses. Responses are
// always JSON {statusCode, message}; unclassified errors become a bare 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := apperr.Status(err)
	message := apperr.Message(err)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}

	if status == http.StatusInternalServerError {
		c.Logger().Errorf("internal error: %v", err)
		message = "internal server error"
	}

	_ = c.JSON(status, echo.Map{
		"statusCode": status,
		"message":    message,
	})
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Static("/public", "public")

	api := e.Group("/api")

	requireAuth := d.Guard.RequireAuth
	adminOnly := d.Guard.RequireRoles(models.RoleAdmin)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", d.AuthHandler.Register)
	authGroup.POST("/register-admin", d.AuthHandler.RegisterAdmin)
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.POST("/login-admin", d.AuthHandler.LoginAdmin)
	authGroup.POST("/access-token", d.AuthHandler.Refresh)
	// kept for clients still calling the old path
	authGroup.POST("/login/access-token", d.AuthHandler.Refresh)
	authGroup.POST("/logout", d.AuthHandler.Logout)

	user := api.Group("/user", requireAuth)
	user.GET("/by-id", d.UserHandler.Profile)
	user.PUT("/update", d.UserHandler.UpdateProfile)

	category := api.Group("/category")
	category.GET("", d.CategoryHandler.GetAll)
	category.GET("/by-id/:id", d.CategoryHandler.GetByID)
	category.GET("/by-slug/:slug", d.CategoryHandler.GetBySlug)
	category.POST("", d.CategoryHandler.Create, requireAuth, adminOnly)
	category.PUT("/update/:id", d.CategoryHandler.Update, requireAuth, adminOnly)
	category.PATCH("/set-image/:id", d.CategoryHandler.SetImage, requireAuth, adminOnly)
	category.DELETE("/:id", d.CategoryHandler.Delete, requireAuth, adminOnly)

	subcategory := api.Group("/subcategory")
	subcategory.GET("", d.SubcategoryHandler.GetAll)
	subcategory.GET("/by-id/:id", d.SubcategoryHandler.GetByID)
	subcategory.GET("/by-slug/:slug", d.SubcategoryHandler.GetBySlug)
	subcategory.POST("", d.SubcategoryHandler.Create, requireAuth, adminOnly)
	subcategory.PUT("/update/:id", d.SubcategoryHandler.Update, requireAuth, adminOnly)
	subcategory.PATCH("/set-image/:id", d.SubcategoryHandler.SetImage, requireAuth, adminOnly)
	subcategory.DELETE("/:id", d.SubcategoryHandler.Delete, requireAuth, adminOnly)

	brand := api.Group("/brand")
	brand.GET("", d.BrandHandler.GetAll)
	brand.GET("/by-id/:id", d.BrandHandler.GetByID)
	brand.GET("/by-slug/:slug", d.BrandHandler.GetBySlug)
	brand.POST("", d.BrandHandler.Create, requireAuth, adminOnly)
	brand.PUT("/update/:id", d.BrandHandler.Update, requireAuth, adminOnly)
	brand.PATCH("/set-image/:id", d.BrandHandler.SetImage, requireAuth, adminOnly)
	brand.DELETE("/:id", d.BrandHandler.Delete, requireAuth, adminOnly)

	attribute := api.Group("/attribute", requireAuth, adminOnly)
	attribute.POST("", d.AttributeHandler.Create)
	attribute.GET("", d.AttributeHandler.GetAll)
	attribute.GET("/by-id/:id", d.AttributeHandler.GetByID)
	attribute.PUT("/update/:id", d.AttributeHandler.Update)
	attribute.DELETE("/:id", d.AttributeHandler.Delete)

	attributeValue := api.Group("/attribute-value", requireAuth, adminOnly)
	attributeValue.POST("", d.AttributeValueHandler.Create)
	attributeValue.GET("", d.AttributeValueHandler.GetAll)
	attributeValue.GET("/by-id/:id", d.AttributeValueHandler.GetByID)
	attributeValue.PUT("/update/:id", d.AttributeValueHandler.Update)
	attributeValue.DELETE("/:id", d.AttributeValueHandler.Delete)

	productAttribute := api.Group("/product-attribute", requireAuth, adminOnly)
	productAttribute.POST("", d.ProductAttributeHandler.Create)
	productAttribute.GET("", d.ProductAttributeHandler.GetAll)
	productAttribute.GET("/by-id/:id", d.ProductAttributeHandler.GetByID)
	productAttribute.GET("/by-product/:id", d.ProductAttributeHandler.GetByProductID)
	productAttribute.DELETE("/:id", d.ProductAttributeHandler.Delete)

	product := api.Group("/product")
	product.GET("", d.ProductHandler.GetAll)
	product.GET("/search", d.ProductHandler.Search)
	product.GET("/by-id/:id", d.ProductHandler.GetByID)
	product.GET("/by-slug/:slug", d.ProductHandler.GetBySlug)
	product.GET("/by-brand/:slug", d.ProductHandler.GetByBrandSlug)
	product.GET("/by-category/:slug", d.ProductHandler.GetByCategorySlug)
	product.GET("/by-subcategory/:slug", d.ProductHandler.GetBySubcategorySlug)
	product.POST("", d.ProductHandler.Create, requireAuth, adminOnly)
	product.PUT("/update/:id", d.ProductHandler.Update, requireAuth, adminOnly)
	product.PATCH("/set-images/:id", d.ProductHandler.SetImages, requireAuth, adminOnly)
	product.DELETE("/:id", d.ProductHandler.Delete, requireAuth, adminOnly)

	// guest checkout stays open, management is admin territory
	order := api.Group("/order")
	order.POST("", d.OrderHandler.Create)
	order.GET("/by-user-orders", d.OrderHandler.GetMine, requireAuth)
	order.GET("", d.OrderHandler.GetAll, requireAuth, adminOnly)
	order.GET("/by-id/:id", d.OrderHandler.GetByID, requireAuth, adminOnly)
	order.GET("/by-userId/:id", d.OrderHandler.GetByUserID, requireAuth, adminOnly)
	order.PUT("/update/:id", d.OrderHandler.Update, requireAuth, adminOnly)
	order.DELETE("/:id", d.OrderHandler.Delete, requireAuth, adminOnly)

	orderItem := api.Group("/order-item")
	orderItem.GET("/by-order/:id", d.OrderItemHandler.GetByOrderID, requireAuth)
	orderItem.POST("", d.OrderItemHandler.Create, requireAuth, adminOnly)
	orderItem.GET("/by-id/:id", d.OrderItemHandler.GetByID, requireAuth, adminOnly)
	orderItem.PUT("/update/:id", d.OrderItemHandler.Update, requireAuth, adminOnly)
	orderItem.DELETE("/:id", d.OrderItemHandler.Delete, requireAuth, adminOnly)

	payment := api.Group("/payment")
	payment.POST("", d.PaymentHandler.Create)
	payment.GET("/by-user-payments", d.PaymentHandler.GetMine, requireAuth)
	payment.GET("", d.PaymentHandler.GetAll, requireAuth, adminOnly)
	payment.GET("/by-id/:id", d.PaymentHandler.GetByID, requireAuth, adminOnly)
	payment.GET("/by-order/:id", d.PaymentHandler.GetByOrderID, requireAuth, adminOnly)
	payment.GET("/by-userId/:id", d.PaymentHandler.GetByUserID, requireAuth, adminOnly)
	payment.PUT("/update/:id", d.PaymentHandler.Update, requireAuth, adminOnly)
	payment.DELETE("/:id", d.PaymentHandler.Delete, requireAuth, adminOnly)

	review := api.Group("/review")
	review.GET("", d.ReviewHandler.GetAll)
	review.GET("/by-id/:id", d.ReviewHandler.GetByID)
	review.GET("/by-product/:id", d.ReviewHandler.GetByProductID)
	review.POST("", d.ReviewHandler.Create, requireAuth)
	review.PUT("/update/:id", d.ReviewHandler.Update, requireAuth, adminOnly)
	review.DELETE("/:id", d.ReviewHandler.Delete, requireAuth, adminOnly)

	files := api.Group("/files", requireAuth, adminOnly)
	files.POST("/upload", d.FilesHandler.Upload)

	mailer := api.Group("/mailer")
	mailer.POST("/callback", d.MailerHandler.Callback)
}
