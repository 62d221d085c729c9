// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soxlite/api/controller"
	"github.com/soxlite/api/middleware"
)

type Options struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
	MaxUploadBytes    int64
}

func SetupRouter(controllers *controller.Controllers, opts Options) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = opts.MaxUploadBytes
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(opts.RateLimitRequests, opts.RateLimitWindow))
	router.Use(middleware.Timeout(opts.RequestTimeout))
	router.Use(middleware.MaxBodySize(opts.MaxUploadBytes))

	api := router.Group("/api/v1")
	controllers.Scan.RegisterRoutes(api)

	return router
}
