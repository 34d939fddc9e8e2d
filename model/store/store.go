package store

import (
	"surveyor/model/model"
	"surveyor/model/store/postgres"

	"github.com/jinzhu/gorm"
)

// Model - Interface of all methods to be implemented by the stores.
// Write methods return http.StatusCreated on success; read methods
// return http.StatusFound. Anything else is a failure the caller maps
// to a response status.
type Model interface {
	// survey_response
	CreateSurveyResponse(response *model.SurveyResponse) (uint64, int)
	GetResponseStats() (*model.ResponseStats, int)
	GetGroupStats(groupField string) ([]model.GroupStat, int)
	GetRecentResponses(limit int) ([]model.SurveyResponse, int)
	GetDailySubmissionCounts(days int) ([]model.DailyCount, int)
	GetTotalResponseCount() (int64, int)

	// monitoring
	Ping() error
}

// GetStore returns the store implementation backed by the given
// database handle. Constructed explicitly so tests can build isolated
// instances.
func GetStore(db *gorm.DB) Model {
	return postgres.New(db)
}
