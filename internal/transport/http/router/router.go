package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"inventory-admin/internal/transport/http/handler"
	mdw "inventory-admin/internal/transport/http/middleware"
)

type Handlers struct {
	Users      *handler.UserHandler
	Posts      *handler.PostHandler
	Categories *handler.CategoryHandler
	Suppliers  *handler.SupplierHandler
	Products   *handler.ProductHandler
}

func New(l *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	h.Users.Register(api)
	h.Posts.Register(api)
	h.Categories.Register(api)
	h.Suppliers.Register(api)
	h.Products.Register(api)

	return r
}
