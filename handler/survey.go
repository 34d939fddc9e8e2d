package handler

import (
	"net/http"

	mid "surveyor/middleware"
	"surveyor/model/model"
	U "surveyor/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ShowSurveyFormHandler renders the submission form.
func (app *App) ShowSurveyFormHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "survey.html", gin.H{
		"appName":     app.Config.AppName,
		"fields":      model.ResponseFields,
		"ratingScale": model.RatingScale(),
	})
}

// SubmitSurveyHandler validates one form submission and persists it.
// Validation failures are reported with the offending field before any
// transaction begins; persistence failures surface as a generic 500
// with the detailed cause logged server side only.
func (app *App) SubmitSurveyHandler(c *gin.Context) {
	logCtx := log.WithFields(log.Fields{
		"reqId": U.GetScopeByKeyAsString(c, mid.SCOPE_REQ_ID),
	})

	if err := c.Request.ParseForm(); err != nil {
		logCtx.WithError(err).Error("Survey submission failed. Form decode failed.")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Survey submission failed. Malformed form payload."})
		return
	}

	response, err := model.ParseSubmission(c.Request.PostForm)
	if err != nil {
		logCtx.WithError(err).Error("Survey submission failed validation.")
		payload := gin.H{"error": err.Error()}
		if validationErr, ok := model.AsValidationError(err); ok {
			payload["field"] = validationErr.Field
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, payload)
		return
	}

	id, errCode := app.Store.CreateSurveyResponse(response)
	if errCode != http.StatusCreated {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			gin.H{"error": "Failed to record survey response. Please try again."})
		return
	}

	logCtx.WithFields(log.Fields{"response_id": id}).Info("Survey response recorded.")
	c.Redirect(http.StatusSeeOther, "/survey/thank-you")
}

// ThankYouHandler renders the acknowledgment view after a successful
// submission.
func (app *App) ThankYouHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "thank_you.html", gin.H{
		"appName": app.Config.AppName,
	})
}
