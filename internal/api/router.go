package api

import (
	"context"
	"net/http"
	"time"

	"github.com/blog-comment-api/internal/config"
	"github.com/blog-comment-api/internal/ratelimit"
	"github.com/blog-comment-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, db Pinger, throttle *ratelimit.Throttle, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.CORSOrigin))
	router.Use(throttleMiddleware(throttle))

	// Handlers
	commentHandler := NewCommentHandler(services, cfg, log)
	articleHandler := NewArticleHandler(services, cfg, log)

	// Health check and metrics
	router.GET("/health", healthCheck(db))
	router.GET("/metrics", metricsHandler(services))

	// The public API dispatches on (path, method): registered paths
	// answer 400 for a wrong method, everything else is a 404.
	router.Any("/", root)
	router.Any("/addcomment", requireMethod(http.MethodPost, commentHandler.AddComment))
	router.Any("/getcontents", requireMethod(http.MethodGet, articleHandler.GetContents))
	router.Any("/getarticleinfo", requireMethod(http.MethodGet, articleHandler.GetArticleInfo))
	router.Any("/addarticle", requireMethod(http.MethodPost, articleHandler.AddArticle))

	router.NoRoute(func(c *gin.Context) {
		respond(c, http.StatusNotFound, "Unknown API")
	})

	return router
}

// root answers any method on /
func root(c *gin.Context) {
	respond(c, http.StatusOK, "There is nothing here!! Go away! ⁄(⁄ ⁄•⁄ω⁄•⁄ ⁄)⁄")
}

// requireMethod gates a handler on one HTTP method. Mismatches are a
// 400, not a 405: the route exists, the request shape is wrong.
func requireMethod(method string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != method {
			respond(c, http.StatusBadRequest, "Invalid request method")
			return
		}
		h(c)
	}
}

// healthCheck returns the health status, pinging the store when one
// is attached
func healthCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				status = "unhealthy"
				code = http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "blog-comment-api",
		})
	}
}

// metricsHandler returns storage counts and saga health
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		articlesCount, _ := services.Article.Count(ctx)
		commentsCount, _ := services.Comment.Count(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"articles": articlesCount,
				"comments": commentsCount,
			},
			"compensation_failures": services.Comment.CompensationFailures(),
			"timestamp":             time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics. Deliberate connection aborts
// (oversized bodies) are rethrown so net/http kills the connection
// without writing a response.
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		requestID := uuid.New().String()
		c.Set("request_id", requestID)

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware permits exactly one origin
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// throttleMiddleware applies the per-client token bucket to the write
// endpoints. Reads stay unthrottled.
func throttleMiddleware(throttle *ratelimit.Throttle) gin.HandlerFunc {
	return func(c *gin.Context) {
		if throttle == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if !throttle.Allow(c.ClientIP()) {
			respond(c, http.StatusTooManyRequests, "Too many requests.")
			c.Abort()
			return
		}
		c.Next()
	}
}
