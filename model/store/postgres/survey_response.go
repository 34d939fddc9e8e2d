package postgres

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"surveyor/model/model"

	"github.com/jinzhu/gorm"
	"github.com/jinzhu/now"
	log "github.com/sirupsen/logrus"
)

// Postgres implements the store interface on a gorm database handle.
type Postgres struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

// CreateSurveyResponse persists one validated response in a single
// transaction and returns the assigned id. The transaction is rolled
// back before any failure surfaces, so no partial row is ever visible.
// Submissions are not idempotent: identical payloads create distinct rows.
func (pg *Postgres) CreateSurveyResponse(response *model.SurveyResponse) (uint64, int) {
	logCtx := log.WithFields(log.Fields{"program": response.Program, "semester": response.Semester})

	// Assigned once at insert time, immutable thereafter.
	response.SubmittedAt = gorm.NowFunc()

	tx := pg.db.Begin()
	if tx.Error != nil {
		logCtx.WithError(tx.Error).Error("Failed to begin transaction for survey response.")
		return 0, http.StatusInternalServerError
	}

	if err := tx.Create(response).Error; err != nil {
		tx.Rollback()
		logCtx.WithError(err).Error("Insert into survey_responses table failed.")
		return 0, http.StatusInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		logCtx.WithError(err).Error("Commit of survey response failed.")
		return 0, http.StatusInternalServerError
	}

	return response.ID, http.StatusCreated
}

// GetResponseStats computes the mean of every rating field and the
// total row count in one query. COALESCE reports 0 for a rating with
// no observations. Means are returned exact, unrounded.
func (pg *Postgres) GetResponseStats() (*model.ResponseStats, int) {
	ratingFields := model.RatingFieldNames()

	selects := make([]string, 0, len(ratingFields)+1)
	for _, field := range ratingFields {
		selects = append(selects, fmt.Sprintf("COALESCE(AVG(%s), 0) AS %s", field, field))
	}
	selects = append(selects, "COUNT(*) AS total_responses")
	queryStr := "SELECT " + strings.Join(selects, ", ") + " FROM survey_responses"

	rows, err := pg.db.Raw(queryStr).Rows()
	if err != nil {
		log.WithError(err).Error("Survey stats query failed.")
		return nil, http.StatusInternalServerError
	}
	defer rows.Close()

	stats := &model.ResponseStats{AverageRatings: make(map[string]float64, len(ratingFields))}
	for _, field := range ratingFields {
		stats.AverageRatings[field] = 0
	}

	if rows.Next() {
		averages := make([]float64, len(ratingFields))
		dest := make([]interface{}, 0, len(ratingFields)+1)
		for i := range averages {
			dest = append(dest, &averages[i])
		}
		dest = append(dest, &stats.TotalResponses)

		if err := rows.Scan(dest...); err != nil {
			log.WithError(err).Error("Failed to scan survey stats row.")
			return nil, http.StatusInternalServerError
		}
		for i, field := range ratingFields {
			stats.AverageRatings[field] = averages[i]
		}
	}

	return stats, http.StatusFound
}

// GetGroupStats computes per group rating means and counts partitioned
// by a groupable categorical field. The field name is interpolated
// into the query, so it must come from the declared schema.
func (pg *Postgres) GetGroupStats(groupField string) ([]model.GroupStat, int) {
	if !model.IsGroupableField(groupField) {
		log.WithFields(log.Fields{"group_field": groupField}).Error("Rejected group stats query for undeclared field.")
		return nil, http.StatusBadRequest
	}

	ratingFields := model.RatingFieldNames()
	selects := make([]string, 0, len(ratingFields)+2)
	selects = append(selects, groupField, "COUNT(*) AS count")
	for _, field := range ratingFields {
		selects = append(selects, fmt.Sprintf("COALESCE(AVG(%s), 0) AS %s", field, field))
	}
	queryStr := fmt.Sprintf("SELECT %s FROM survey_responses GROUP BY %s ORDER BY count DESC",
		strings.Join(selects, ", "), groupField)

	rows, err := pg.db.Raw(queryStr).Rows()
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"group_field": groupField}).Error("Group stats query failed.")
		return nil, http.StatusInternalServerError
	}
	defer rows.Close()

	groupStats := make([]model.GroupStat, 0)
	for rows.Next() {
		stat := model.GroupStat{AverageRatings: make(map[string]float64, len(ratingFields))}
		averages := make([]float64, len(ratingFields))

		dest := make([]interface{}, 0, len(ratingFields)+2)
		dest = append(dest, &stat.Group, &stat.Count)
		for i := range averages {
			dest = append(dest, &averages[i])
		}

		if err := rows.Scan(dest...); err != nil {
			log.WithError(err).Error("Failed to scan group stats row.")
			return nil, http.StatusInternalServerError
		}
		for i, field := range ratingFields {
			stat.AverageRatings[field] = averages[i]
		}
		groupStats = append(groupStats, stat)
	}

	return groupStats, http.StatusFound
}

// GetRecentResponses returns the latest submissions, newest first.
func (pg *Postgres) GetRecentResponses(limit int) ([]model.SurveyResponse, int) {
	var responses []model.SurveyResponse
	if err := pg.db.Order("submitted_at DESC").Limit(limit).Find(&responses).Error; err != nil {
		log.WithError(err).Error("Recent responses query failed.")
		return nil, http.StatusInternalServerError
	}
	return responses, http.StatusFound
}

// GetDailySubmissionCounts returns per day submission counts over a
// trailing window of the given number of days, today included.
func (pg *Postgres) GetDailySubmissionCounts(days int) ([]model.DailyCount, int) {
	if days <= 0 {
		days = 7
	}
	windowStart := now.New(time.Now().UTC()).BeginningOfDay().AddDate(0, 0, -(days - 1))

	queryStr := "SELECT DATE(submitted_at) AS day, COUNT(*) AS count FROM survey_responses" +
		" WHERE submitted_at >= ? GROUP BY day ORDER BY day ASC"
	rows, err := pg.db.Raw(queryStr, windowStart).Rows()
	if err != nil {
		log.WithError(err).Error("Daily submission counts query failed.")
		return nil, http.StatusInternalServerError
	}
	defer rows.Close()

	dailyCounts := make([]model.DailyCount, 0, days)
	for rows.Next() {
		var day time.Time
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			log.WithError(err).Error("Failed to scan daily submission counts row.")
			return nil, http.StatusInternalServerError
		}
		dailyCounts = append(dailyCounts, model.DailyCount{Date: day.Format("2006-01-02"), Count: count})
	}

	return dailyCounts, http.StatusFound
}

// GetTotalResponseCount returns the number of stored responses.
func (pg *Postgres) GetTotalResponseCount() (int64, int) {
	var count int64
	if err := pg.db.Model(&model.SurveyResponse{}).Count(&count).Error; err != nil {
		log.WithError(err).Error("Survey response count query failed.")
		return 0, http.StatusInternalServerError
	}
	return count, http.StatusFound
}

// Ping verifies database connectivity for health reporting.
func (pg *Postgres) Ping() error {
	return pg.db.DB().Ping()
}
