package handler

import (
	"surveyor/config"
	mid "surveyor/middleware"
	"surveyor/model/store"

	"github.com/gin-gonic/gin"
)

// App bundles the dependencies shared by request handlers. Constructed
// explicitly at startup; tests build isolated instances with fake stores.
type App struct {
	Store  store.Model
	Config *config.Configuration
}

// InitAppRoutes registers the middleware chain and the survey routes.
func InitAppRoutes(r *gin.Engine, app *App) {
	r.Use(mid.RequestIdGenerator())
	r.Use(mid.Logger())
	r.Use(mid.Recovery())
	if !app.Config.IsDevelopment() {
		r.Use(mid.RestrictHosts(app.Config.AllowedHosts))
	}
	r.Use(mid.CustomCors(app.Config.IsDevelopment(), app.Config.CORSOrigins))

	r.GET("/survey", app.ShowSurveyFormHandler)
	r.POST("/survey/submit", app.SubmitSurveyHandler)
	r.GET("/survey/thank-you", app.ThankYouHandler)
	r.GET("/results", app.ViewResultsHandler)
	r.GET("/api/stats", app.GetStatsHandler)
	r.GET("/health", app.HealthHandler)
}
