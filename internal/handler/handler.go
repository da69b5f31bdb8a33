// Package handler exposes the marketplace over HTTP with gin.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kisan-be/internal/admin"
	"kisan-be/internal/apperror"
	"kisan-be/internal/auth"
	"kisan-be/internal/order"
	"kisan-be/internal/product"
	"kisan-be/internal/user"
	"kisan-be/internal/utils"
	"kisan-be/internal/vendor"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type Deps struct {
	Products product.Service
	Orders   order.Service
	Users    user.Service
	Vendors  vendor.Service
	Admin    admin.Service
}

type Handler struct {
	products product.Service
	orders   order.Service
	users    user.Service
	vendors  vendor.Service
	admin    admin.Service
}

func New(d Deps) *Handler {
	return &Handler{
		products: d.Products,
		orders:   d.Orders,
		users:    d.Users,
		vendors:  d.Vendors,
		admin:    d.Admin,
	}
}

// Router builds the gin engine. Identity comes from the request context,
// which the auth middleware fills before gin sees the request.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.GET("/products", h.listProducts)
	r.GET("/products/:id", h.getProduct)

	r.POST("/auth/register", h.registerUser)
	r.POST("/auth/login", h.loginUser)

	purchaser := r.Group("/", requireRole(auth.RoleUser))
	purchaser.GET("/profile", h.getProfile)
	purchaser.GET("/checkout/prefill", h.getPrefill)
	purchaser.POST("/orders", h.placeOrder)
	purchaser.GET("/orders", h.listMyOrders)

	r.POST("/vendor/register", h.registerVendor)
	r.POST("/vendor/login", h.loginVendor)

	v := r.Group("/vendor", requireRole(auth.RoleVendor))
	v.GET("/me", h.getVendor)
	v.GET("/orders", h.listVendorOrders)
	v.PATCH("/orders/:id/status", h.updateOrderStatus)
	v.GET("/products", h.listVendorProducts)
	v.POST("/products", h.createProduct)
	v.POST("/products/:id/images", h.addProductImage)

	r.POST("/admin/login", h.loginAdmin)

	a := r.Group("/admin", requireRole(auth.RoleAdmin))
	a.GET("/overview", h.adminOverview)
	a.GET("/orders", h.adminOrders)

	return r
}

type caller struct {
	ID    uint
	Email string
	Name  string
}

// requireRole rejects anonymous callers and callers with another role.
func requireRole(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		got := utils.GetUserRoleFromContext(ctx)
		if got == "" {
			respondError(c, apperror.Unauthorized("sign in required"))
			return
		}
		if got != string(role) {
			respondError(c, apperror.Forbidden("not allowed for this account"))
			return
		}
		c.Next()
	}
}

func callerFrom(c *gin.Context) caller {
	ctx := c.Request.Context()
	id, _ := utils.GetUserIDFromContext(ctx)
	return caller{
		ID:    id,
		Email: utils.GetUserEmailFromContext(ctx),
		Name:  utils.GetUserNameFromContext(ctx),
	}
}

func pathID(c *gin.Context) (uint, error) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil || id == 0 {
		return 0, apperror.Validation("invalid id", map[string]string{"id": "must be a positive integer"})
	}
	return id, nil
}
