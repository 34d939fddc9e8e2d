package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type FieldType string

const (
	FieldTypeCategorical FieldType = "categorical"
	FieldTypeIdentifier  FieldType = "identifier"
	FieldTypeRating      FieldType = "rating"
	FieldTypeText        FieldType = "text"
	FieldTypeBool        FieldType = "bool"
)

// Likert scale bounds for rating fields.
const (
	RatingMin = 1
	RatingMax = 5
)

// FieldSpec declares one submittable field of the survey variant.
type FieldSpec struct {
	Name      string
	Type      FieldType
	Required  bool
	MaxLength int
	// Groupable marks categorical fields usable as a group by
	// column on aggregation queries.
	Groupable bool
	Label     string
}

// ResponseFields is the declared schema of the student satisfaction
// survey. Validation and aggregation are driven from this list, not
// from per-field code.
var ResponseFields = []FieldSpec{
	{Name: "student_id", Type: FieldTypeIdentifier, MaxLength: 50, Label: "Student ID"},
	{Name: "program", Type: FieldTypeCategorical, Required: true, MaxLength: 100, Groupable: true, Label: "Program"},
	{Name: "semester", Type: FieldTypeCategorical, Required: true, MaxLength: 50, Groupable: true, Label: "Semester"},
	{Name: "instructor_effectiveness", Type: FieldTypeRating, Required: true, Label: "Instructor Effectiveness"},
	{Name: "curriculum_quality", Type: FieldTypeRating, Required: true, Label: "Curriculum Quality"},
	{Name: "facility_rating", Type: FieldTypeRating, Required: true, Label: "Facilities"},
	{Name: "equipment_quality", Type: FieldTypeRating, Required: true, Label: "Equipment Quality"},
	{Name: "support_services", Type: FieldTypeRating, Required: true, Label: "Support Services"},
	{Name: "overall_satisfaction", Type: FieldTypeRating, Required: true, Label: "Overall Satisfaction"},
	{Name: "positive_comments", Type: FieldTypeText, Label: "What is working well?"},
	{Name: "improvement_suggestions", Type: FieldTypeText, Label: "What could be improved?"},
	{Name: "additional_comments", Type: FieldTypeText, Label: "Anything else?"},
	{Name: "age_group", Type: FieldTypeIdentifier, MaxLength: 20, Label: "Age Group"},
	{Name: "prior_experience", Type: FieldTypeIdentifier, MaxLength: 50, Label: "Prior Experience"},
	{Name: "follow_up_permission", Type: FieldTypeBool, Label: "May we contact you for follow up?"},
}

// Template helpers for schema driven form rendering.
func (s FieldSpec) IsRating() bool { return s.Type == FieldTypeRating }
func (s FieldSpec) IsText() bool   { return s.Type == FieldTypeText }
func (s FieldSpec) IsBool() bool   { return s.Type == FieldTypeBool }

// RatingScale returns the selectable rating values in order.
func RatingScale() []int {
	scale := make([]int, 0, RatingMax-RatingMin+1)
	for value := RatingMin; value <= RatingMax; value++ {
		scale = append(scale, value)
	}
	return scale
}

// RatingFieldNames returns the rating column names in declaration order.
func RatingFieldNames() []string {
	names := make([]string, 0, len(ResponseFields))
	for _, spec := range ResponseFields {
		if spec.Type == FieldTypeRating {
			names = append(names, spec.Name)
		}
	}
	return names
}

// GroupableFieldNames returns categorical columns allowed on group by queries.
func GroupableFieldNames() []string {
	names := make([]string, 0, len(ResponseFields))
	for _, spec := range ResponseFields {
		if spec.Groupable {
			names = append(names, spec.Name)
		}
	}
	return names
}

// IsGroupableField reports whether the given column may be interpolated
// as a group by identifier. Guards aggregation queries against
// arbitrary column names from the request.
func IsGroupableField(name string) bool {
	for _, groupable := range GroupableFieldNames() {
		if groupable == name {
			return true
		}
	}
	return false
}

// ParseSubmission validates a decoded form payload against
// ResponseFields and builds the response to persist. The first
// violated rule fails the whole submission with a *ValidationError
// naming the field. Unset optional fields are left null.
func ParseSubmission(form url.Values) (*SurveyResponse, error) {
	response := &SurveyResponse{}

	for _, spec := range ResponseFields {
		raw := strings.TrimSpace(form.Get(spec.Name))
		if raw == "" {
			if spec.Required {
				return nil, NewValidationError(spec.Name, "is required")
			}
			continue
		}

		switch spec.Type {
		case FieldTypeRating:
			value, err := strconv.Atoi(raw)
			if err != nil {
				return nil, NewValidationError(spec.Name, "must be a whole number")
			}
			if value < RatingMin || value > RatingMax {
				return nil, NewValidationError(spec.Name,
					fmt.Sprintf("must be between %d and %d", RatingMin, RatingMax))
			}
			response.setRating(spec.Name, value)

		case FieldTypeBool:
			response.setBool(spec.Name, raw == "on" || raw == "true" || raw == "1")

		default:
			if spec.MaxLength > 0 && len(raw) > spec.MaxLength {
				return nil, NewValidationError(spec.Name,
					fmt.Sprintf("must be at most %d characters", spec.MaxLength))
			}
			response.setString(spec.Name, raw)
		}
	}

	return response, nil
}
