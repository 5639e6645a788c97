package router

import (
	"context"
	"net/http"
	"time"

	"cuattro/internal/auth"
	"cuattro/internal/cart"
	"cuattro/internal/catalog"
	"cuattro/internal/category"
	"cuattro/internal/llm"
	"cuattro/internal/middleware"
	"cuattro/internal/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger func(ctx context.Context) error

type Deps struct {
	Logger         *zap.Logger
	Tokens         auth.TokenConfig
	AllowedOrigins []string
	AILimiter      middleware.Limiter

	// Checks run by /health; each must answer within a second.
	Checks map[string]Pinger

	Users      *auth.Handler
	Categories *category.Handler
	Catalog    *catalog.Handler
	Cart       *cart.Handler
	Orders     *order.Handler
	Assistant  *llm.Handler
}

func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", health(d.Checks))

	authn := middleware.AuthMiddleware(d.Tokens, d.Logger)
	staff := middleware.RequireStaff()
	admin := middleware.RequireRole(auth.RoleAdmin)

	// ───────────────────────── CATALOG ─────────────────────────
	if d.Catalog != nil {
		items := r.Group("/Item")
		{
			items.GET("", d.Catalog.List)
			items.GET("/agrupado", d.Catalog.Grouped)
			items.GET("/:id", d.Catalog.Get)

			write := items.Group("", authn, staff)
			write.POST("", d.Catalog.Create)
			write.PUT("/:id", d.Catalog.Update)
			write.DELETE("/:id", d.Catalog.Delete)
			write.POST("/:id/imagem", d.Catalog.UploadImage)
		}
	}

	if d.Categories != nil {
		categories := r.Group("/Categoria")
		{
			categories.GET("", d.Categories.List)
			categories.GET("/:id", d.Categories.Get)

			write := categories.Group("", authn, admin)
			write.POST("", d.Categories.Create)
			write.PUT("/:id", d.Categories.Update)
			write.POST("/obter-ou-criar", d.Categories.GetOrCreate)
		}
	}

	// ───────────────────────── CUSTOMER ─────────────────────────
	if d.Cart != nil {
		carts := r.Group("/Carrinho", authn)
		{
			carts.GET("", d.Cart.Get)
			carts.DELETE("", d.Cart.Clear)
			carts.POST("/itens", d.Cart.Add)
			carts.POST("/itens/:itemId/decrementar", d.Cart.Decrement)
			carts.DELETE("/itens/:itemId", d.Cart.Remove)
		}
	}

	if d.Orders != nil {
		orders := r.Group("/Pedido", authn)
		{
			orders.GET("", d.Orders.List)
			orders.POST("", d.Orders.Create)
			orders.POST("/checkout", d.Orders.Checkout)
			orders.GET("/:id", d.Orders.Get)
			orders.PATCH("/:id/status", staff, d.Orders.UpdateStatus)
		}
	}

	if d.Users != nil {
		users := r.Group("/Usuario", authn)
		{
			users.GET("", d.Users.Me)
			users.PUT("", d.Users.UpdateMe)
			users.GET("/todos", admin, d.Users.List)
			users.PUT("/role/:id", admin, d.Users.UpdateRole)
		}
	}

	if d.Assistant != nil {
		ai := r.Group("/ai", authn)
		if d.AILimiter != nil {
			ai.Use(middleware.RateLimit(d.AILimiter, "ai"))
		}
		ai.POST("/sugestoes", d.Assistant.Suggest)
	}

	return r
}

func health(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		results := gin.H{}
		for name, ping := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			err := ping(ctx)
			cancel()
			if err != nil {
				status = http.StatusServiceUnavailable
				results[name] = "down"
				continue
			}
			results[name] = "up"
		}

		body := gin.H{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(results) > 0 {
			body["checks"] = results
		}
		c.JSON(status, body)
	}
}
