package dto

import "github.com/lumenhq/lumen-api/internal/models"

// SyllabusModuleRequest mirrors one syllabus unit in course payloads.
type SyllabusModuleRequest struct {
	Module string   `json:"module" validate:"required"`
	Topics []string `json:"topics" validate:"required,min=1,dive,required"`
}

// CourseCreateRequest is the payload for creating a course. The course starts
// in draft status regardless of input.
type CourseCreateRequest struct {
	Title        string                  `json:"title" validate:"required"`
	Description  string                  `json:"description"`
	Category     string                  `json:"category"`
	Level        string                  `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Duration     string                  `json:"duration"`
	Price        float64                 `json:"price" validate:"gte=0"`
	Image        string                  `json:"image"`
	Objectives   []string                `json:"objectives"`
	Requirements []string                `json:"requirements"`
	Syllabus     []SyllabusModuleRequest `json:"syllabus" validate:"dive"`
}

// CourseUpdateRequest carries a partial course update; nil fields are left
// untouched.
type CourseUpdateRequest struct {
	Title        *string                  `json:"title"`
	Description  *string                  `json:"description"`
	Category     *string                  `json:"category"`
	Level        *string                  `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Duration     *string                  `json:"duration"`
	Price        *float64                 `json:"price" validate:"omitempty,gte=0"`
	Image        *string                  `json:"image"`
	Status       *string                  `json:"status" validate:"omitempty,oneof=draft published archived"`
	Objectives   *[]string                `json:"objectives"`
	Requirements *[]string                `json:"requirements"`
	Syllabus     *[]SyllabusModuleRequest `json:"syllabus" validate:"omitempty,dive"`
}

// SyllabusModules converts request units into model units.
func SyllabusModules(in []SyllabusModuleRequest) []models.SyllabusModule {
	out := make([]models.SyllabusModule, 0, len(in))
	for _, module := range in {
		out = append(out, models.SyllabusModule{Module: module.Module, Topics: module.Topics})
	}
	return out
}
