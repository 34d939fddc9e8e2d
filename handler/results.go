package handler

import (
	"fmt"
	"net/http"

	"surveyor/model/model"
	U "surveyor/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	recentResponsesLimit  = 10
	dailyCountsWindowDays = 7
)

// roundRatings rounds means for display. Stored aggregates stay exact
// until this point.
func roundRatings(averages map[string]float64) map[string]float64 {
	rounded := make(map[string]float64, len(averages))
	for field, value := range averages {
		rounded[field], _ = U.FloatRoundOffWithPrecision(value, U.DefaultPrecision)
	}
	return rounded
}

// ViewResultsHandler renders the aggregate view: overall means, the
// per program breakdown, recent submissions and the daily trend.
func (app *App) ViewResultsHandler(c *gin.Context) {
	stats, errCode := app.Store.GetResponseStats()
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load survey results."})
		return
	}

	programStats, errCode := app.Store.GetGroupStats("program")
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load survey results."})
		return
	}

	recentResponses, errCode := app.Store.GetRecentResponses(recentResponsesLimit)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load survey results."})
		return
	}

	dailyCounts, errCode := app.Store.GetDailySubmissionCounts(dailyCountsWindowDays)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load survey results."})
		return
	}

	recent := make([]map[string]interface{}, 0, len(recentResponses))
	for i := range recentResponses {
		recent = append(recent, recentResponses[i].ToMap())
	}

	groups := make([]gin.H, 0, len(programStats))
	for _, stat := range programStats {
		groups = append(groups, gin.H{
			"group":           stat.Group,
			"count":           stat.Count,
			"average_ratings": roundRatings(stat.AverageRatings),
		})
	}

	c.HTML(http.StatusOK, "results.html", gin.H{
		"appName":         app.Config.AppName,
		"averageRatings":  roundRatings(stats.AverageRatings),
		"totalResponses":  stats.TotalResponses,
		"programStats":    groups,
		"recentResponses": recent,
		"dailyCounts":     dailyCounts,
		"fields":          model.ResponseFields,
	})
}

// GetStatsHandler serves survey statistics as JSON. An optional
// group_by query parameter partitions the aggregates by a declared
// categorical field.
func (app *App) GetStatsHandler(c *gin.Context) {
	groupBy := c.Query("group_by")
	if groupBy != "" {
		groupStats, errCode := app.Store.GetGroupStats(groupBy)
		if errCode == http.StatusBadRequest {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				gin.H{"error": fmt.Sprintf("Cannot group by field %s.", groupBy)})
			return
		}
		if errCode != http.StatusFound {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load survey statistics."})
			return
		}

		groups := make([]gin.H, 0, len(groupStats))
		for _, stat := range groupStats {
			groups = append(groups, gin.H{
				"group":           stat.Group,
				"count":           stat.Count,
				"average_ratings": roundRatings(stat.AverageRatings),
			})
		}
		c.JSON(http.StatusOK, gin.H{"group_by": groupBy, "groups": groups})
		return
	}

	stats, errCode := app.Store.GetResponseStats()
	if errCode != http.StatusFound {
		log.Error("Failed to compute survey stats for API response.")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load survey statistics."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"average_ratings": roundRatings(stats.AverageRatings),
		"total_responses": stats.TotalResponses,
	})
}
