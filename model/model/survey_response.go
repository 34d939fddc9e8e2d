package model

import (
	"time"
)

// SurveyResponse is one submitted questionnaire. Rows are insert only:
// id and submitted_at are assigned once at creation and no code path
// updates or deletes a committed row.
type SurveyResponse struct {
	ID          uint64    `gorm:"primary_key" json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`

	// Student information.
	StudentID *string `gorm:"type:varchar(50)" json:"student_id"`
	Program   string  `gorm:"type:varchar(100);not null" json:"program"`
	Semester  string  `gorm:"type:varchar(50);not null" json:"semester"`

	// Ratings on a 1-5 scale. Range is enforced by ParseSubmission
	// before any write, not by the schema.
	InstructorEffectiveness int `json:"instructor_effectiveness"`
	CurriculumQuality       int `json:"curriculum_quality"`
	FacilityRating          int `json:"facility_rating"`
	EquipmentQuality        int `json:"equipment_quality"`
	SupportServices         int `json:"support_services"`
	OverallSatisfaction     int `json:"overall_satisfaction"`

	// Open ended feedback.
	PositiveComments       *string `gorm:"type:text" json:"positive_comments"`
	ImprovementSuggestions *string `gorm:"type:text" json:"improvement_suggestions"`
	AdditionalComments     *string `gorm:"type:text" json:"additional_comments"`

	// Optional demographics.
	AgeGroup        *string `gorm:"type:varchar(20)" json:"age_group"`
	PriorExperience *string `gorm:"type:varchar(50)" json:"prior_experience"`

	FollowUpPermission bool `gorm:"default:false" json:"follow_up_permission"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}

// Rating returns the value of the named rating field.
func (response *SurveyResponse) Rating(name string) int {
	switch name {
	case "instructor_effectiveness":
		return response.InstructorEffectiveness
	case "curriculum_quality":
		return response.CurriculumQuality
	case "facility_rating":
		return response.FacilityRating
	case "equipment_quality":
		return response.EquipmentQuality
	case "support_services":
		return response.SupportServices
	case "overall_satisfaction":
		return response.OverallSatisfaction
	}
	return 0
}

func (response *SurveyResponse) setRating(name string, value int) {
	switch name {
	case "instructor_effectiveness":
		response.InstructorEffectiveness = value
	case "curriculum_quality":
		response.CurriculumQuality = value
	case "facility_rating":
		response.FacilityRating = value
	case "equipment_quality":
		response.EquipmentQuality = value
	case "support_services":
		response.SupportServices = value
	case "overall_satisfaction":
		response.OverallSatisfaction = value
	}
}

func (response *SurveyResponse) setString(name, value string) {
	switch name {
	case "student_id":
		response.StudentID = &value
	case "program":
		response.Program = value
	case "semester":
		response.Semester = value
	case "positive_comments":
		response.PositiveComments = &value
	case "improvement_suggestions":
		response.ImprovementSuggestions = &value
	case "additional_comments":
		response.AdditionalComments = &value
	case "age_group":
		response.AgeGroup = &value
	case "prior_experience":
		response.PriorExperience = &value
	}
}

func (response *SurveyResponse) setBool(name string, value bool) {
	switch name {
	case "follow_up_permission":
		response.FollowUpPermission = value
	}
}

// ToMap converts the response for API and template consumption.
func (response *SurveyResponse) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":                       response.ID,
		"submitted_at":             response.SubmittedAt.UTC().Format(time.RFC3339),
		"student_id":               response.StudentID,
		"program":                  response.Program,
		"semester":                 response.Semester,
		"instructor_effectiveness": response.InstructorEffectiveness,
		"curriculum_quality":       response.CurriculumQuality,
		"facility_rating":          response.FacilityRating,
		"equipment_quality":        response.EquipmentQuality,
		"support_services":         response.SupportServices,
		"overall_satisfaction":     response.OverallSatisfaction,
		"positive_comments":        response.PositiveComments,
		"improvement_suggestions":  response.ImprovementSuggestions,
		"additional_comments":      response.AdditionalComments,
		"age_group":                response.AgeGroup,
		"prior_experience":         response.PriorExperience,
		"follow_up_permission":     response.FollowUpPermission,
	}
}
