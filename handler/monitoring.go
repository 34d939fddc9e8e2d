package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// HealthHandler reports process and database health for probes.
func (app *App) HealthHandler(c *gin.Context) {
	if err := app.Store.Ping(); err != nil {
		log.WithError(err).Error("Health check failed. Database unreachable.")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"database": "unhealthy",
		})
		return
	}

	totalSurveys, errCode := app.Store.GetTotalResponseCount()
	if errCode != http.StatusFound {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"database": "unhealthy",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"database":      "connected",
		"total_surveys": totalSurveys,
	})
}
