package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger verifica que el almacenamiento responde.
type Pinger func(ctx context.Context) error

// NewRouter configura el router de Gin con middlewares y la tabla de rutas.
func NewRouter(
	logger *zap.Logger,
	corsOrigin string,
	ping Pinger,
	verifier TokenVerifier,
	userH *UserHandler,
	marksH *MarksHandler,
	assessmentH *AssessmentHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(corsOrigin))

	r.GET("/health", healthHandler(ping))

	auth := r.Group("/auth")
	auth.POST("/signup", userH.Signup)
	auth.POST("/login", userH.Login)

	gate := JWTAuthMiddleware(verifier)
	auth.GET("/profile", gate, userH.Profile)
	auth.POST("/analyze", gate, assessmentH.Analyze)

	marks := r.Group("/marks", gate)
	marks.POST("", marksH.SaveMarks)
	marks.GET("", marksH.ListMarks)

	// el preflight se responde en corsMiddleware; la ruta evita el 404 de gin
	r.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	return r
}

func healthHandler(ping Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
