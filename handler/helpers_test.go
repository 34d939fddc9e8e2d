package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"surveyor/config"
	"surveyor/model/model"

	"github.com/gin-gonic/gin"
)

// fakeStore is an in-memory store used to exercise handlers without a
// database.
type fakeStore struct {
	responses     []model.SurveyResponse
	nextID        uint64
	createErrCode int
	readErrCode   int
	pingErr       error
}

func (f *fakeStore) CreateSurveyResponse(response *model.SurveyResponse) (uint64, int) {
	if f.createErrCode != 0 {
		return 0, f.createErrCode
	}
	f.nextID++
	response.ID = f.nextID
	response.SubmittedAt = time.Now().UTC()
	f.responses = append(f.responses, *response)
	return response.ID, http.StatusCreated
}

func (f *fakeStore) GetResponseStats() (*model.ResponseStats, int) {
	if f.readErrCode != 0 {
		return nil, f.readErrCode
	}
	stats := &model.ResponseStats{
		AverageRatings: make(map[string]float64),
		TotalResponses: int64(len(f.responses)),
	}
	for _, field := range model.RatingFieldNames() {
		stats.AverageRatings[field] = 0
		if len(f.responses) == 0 {
			continue
		}
		var sum int
		for i := range f.responses {
			sum += f.responses[i].Rating(field)
		}
		stats.AverageRatings[field] = float64(sum) / float64(len(f.responses))
	}
	return stats, http.StatusFound
}

func (f *fakeStore) GetGroupStats(groupField string) ([]model.GroupStat, int) {
	if !model.IsGroupableField(groupField) {
		return nil, http.StatusBadRequest
	}
	if f.readErrCode != 0 {
		return nil, f.readErrCode
	}

	grouped := make(map[string][]model.SurveyResponse)
	order := make([]string, 0)
	for i := range f.responses {
		group := f.responses[i].Program
		if groupField == "semester" {
			group = f.responses[i].Semester
		}
		if _, seen := grouped[group]; !seen {
			order = append(order, group)
		}
		grouped[group] = append(grouped[group], f.responses[i])
	}

	groupStats := make([]model.GroupStat, 0, len(grouped))
	for _, group := range order {
		members := grouped[group]
		stat := model.GroupStat{
			Group:          group,
			Count:          int64(len(members)),
			AverageRatings: make(map[string]float64),
		}
		for _, field := range model.RatingFieldNames() {
			var sum int
			for i := range members {
				sum += members[i].Rating(field)
			}
			stat.AverageRatings[field] = float64(sum) / float64(len(members))
		}
		groupStats = append(groupStats, stat)
	}
	return groupStats, http.StatusFound
}

func (f *fakeStore) GetRecentResponses(limit int) ([]model.SurveyResponse, int) {
	if f.readErrCode != 0 {
		return nil, f.readErrCode
	}
	recent := make([]model.SurveyResponse, 0, limit)
	for i := len(f.responses) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, f.responses[i])
	}
	return recent, http.StatusFound
}

func (f *fakeStore) GetDailySubmissionCounts(days int) ([]model.DailyCount, int) {
	if f.readErrCode != 0 {
		return nil, f.readErrCode
	}
	counts := make(map[string]int64)
	order := make([]string, 0)
	for i := range f.responses {
		day := f.responses[i].SubmittedAt.Format("2006-01-02")
		if _, seen := counts[day]; !seen {
			order = append(order, day)
		}
		counts[day]++
	}
	dailyCounts := make([]model.DailyCount, 0, len(order))
	for _, day := range order {
		dailyCounts = append(dailyCounts, model.DailyCount{Date: day, Count: counts[day]})
	}
	return dailyCounts, http.StatusFound
}

func (f *fakeStore) GetTotalResponseCount() (int64, int) {
	if f.readErrCode != 0 {
		return 0, f.readErrCode
	}
	return int64(len(f.responses)), http.StatusFound
}

func (f *fakeStore) Ping() error {
	return f.pingErr
}

func newTestRouter(fake *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.LoadHTMLGlob("../templates/*.html")
	InitAppRoutes(r, &App{
		Store: fake,
		Config: &config.Configuration{
			Env:     config.DEVELOPMENT,
			AppName: "Test Satisfaction Survey",
		},
	})
	return r
}

func servePostForm(r *gin.Engine, uri string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, uri, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func serveGetRequest(r *gin.Engine, uri string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, uri, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSONResponseToMap(buf *bytes.Buffer) map[string]interface{} {
	response := make(map[string]interface{})
	_ = json.Unmarshal(buf.Bytes(), &response)
	return response
}

func validSubmissionForm() url.Values {
	return url.Values{
		"program":                  {"Culinary Arts"},
		"semester":                 {"1st"},
		"instructor_effectiveness": {"4"},
		"curriculum_quality":       {"5"},
		"facility_rating":          {"3"},
		"equipment_quality":        {"4"},
		"support_services":         {"5"},
		"overall_satisfaction":     {"4"},
	}
}
