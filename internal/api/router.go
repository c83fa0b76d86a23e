// Package api exposes the forecaster over HTTP.
package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sumesh-12/energy-demand-prediction/internal/accounts"
)

// Options wires the router. Accounts, WebSocket and Gatherer are optional.
type Options struct {
	Forecast    Forecaster
	Accounts    *accounts.Service
	WebSocket   http.Handler
	Gatherer    prometheus.Gatherer
	FrontendDir string
	Logger      *zap.Logger
}

// NewRouter builds the gin engine.
func NewRouter(opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(requestID(), accessLog(log), recovery(log))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	fh := &forecastHandler{forecast: opts.Forecast, log: log}
	router.GET("/ready", fh.Ready)
	router.POST("/predict", fh.Predict)

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	if opts.WebSocket != nil {
		router.GET("/ws", gin.WrapH(opts.WebSocket))
	}

	if opts.Accounts != nil {
		ah := &accountHandler{accounts: opts.Accounts, log: log}
		router.POST("/register", ah.Register)
		router.POST("/login", ah.Login)
		router.POST("/contact", ah.SubmitContact)

		private := router.Group("/contacts", requireAuth(opts.Accounts))
		private.GET("", ah.Contacts)
		private.GET("/:id", ah.Contact)
	}

	// Serve frontend if directory exists
	if info, err := os.Stat(opts.FrontendDir); opts.FrontendDir != "" && err == nil && info.IsDir() {
		files := http.FileServer(http.Dir(opts.FrontendDir))
		router.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, MessageResponse{Message: "Not found."})
				return
			}
			files.ServeHTTP(c.Writer, c.Request)
		})
		log.Info("serving frontend", zap.String("dir", opts.FrontendDir))
	}

	return router
}
