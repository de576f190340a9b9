package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(advisorHandler *handlers.AdvisorHandler, settingsHandler *handlers.SettingsHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/recommendations", advisorHandler.Recommendations)
		api.POST("/recommendations/:id/accept", advisorHandler.AcceptRecommendation)
		api.POST("/recommendations/:id/dismiss", advisorHandler.DismissRecommendation)
		api.POST("/recommendations/:id/defer", advisorHandler.DeferRecommendation)

		api.GET("/alerts", advisorHandler.Alerts)
		api.POST("/alerts/:id/acknowledge", advisorHandler.AcknowledgeAlert)
		api.POST("/alerts/:id/resolve", advisorHandler.ResolveAlert)

		api.GET("/tasks", advisorHandler.Tasks)
		api.POST("/tasks/:id/complete", advisorHandler.CompleteTask)
		api.POST("/tasks/:id/dismiss", advisorHandler.DismissTask)

		api.GET("/breeding", advisorHandler.BreedingRecords)
		api.POST("/breeding", advisorHandler.ScheduleBreeding)
		api.POST("/breeding/:id/complete", advisorHandler.CompleteBreeding)
		api.GET("/breeding/match/:animalId", advisorHandler.BestMatch)

		api.POST("/coach/tick", advisorHandler.CoachTick)
		api.POST("/coach/hints/:key/dismiss", advisorHandler.DismissHint)
		api.POST("/coach/visit", advisorHandler.MarkVisited)
		api.POST("/coach/reset", advisorHandler.ResetSession)

		api.GET("/settings/:category", settingsHandler.Current)
		api.GET("/settings/:category/history", settingsHandler.History)
		api.PUT("/settings/:category", settingsHandler.Update)
		api.POST("/settings/:category/rollback", settingsHandler.Rollback)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
