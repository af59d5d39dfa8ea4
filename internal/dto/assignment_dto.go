package dto

import (
	"time"

	"github.com/cryptovlab/coursework-api/internal/models"
)

// AssignmentCreateRequest describes the payload for creating a new assignment.
type AssignmentCreateRequest struct {
	Title        string   `json:"title" validate:"required,min=3"`
	Description  string   `json:"description" validate:"required"`
	LabModule    string   `json:"lab_module" validate:"required"`
	Difficulty   string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Points       int      `json:"points" validate:"required,min=1,max=100"`
	DueDays      int      `json:"due_days" validate:"required,min=1"`
	CreatedBy    string   `json:"created_by" validate:"required"`
	Instructions string   `json:"instructions"`
	Resources    []string `json:"resources"`
}

// AssignmentUpdateRequest carries the optional fields merged into an
// existing assignment. Nil fields are left untouched.
type AssignmentUpdateRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=3"`
	Description  *string    `json:"description"`
	LabModule    *string    `json:"lab_module" validate:"omitempty,min=1"`
	Difficulty   *string    `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Points       *int       `json:"points" validate:"omitempty,min=1,max=100"`
	DueDate      *time.Time `json:"due_date"`
	Instructions *string    `json:"instructions"`
	Resources    *[]string  `json:"resources"`
	IsActive     *bool      `json:"is_active"`
}

// AssignmentResponse is the serialized representation returned to callers.
type AssignmentResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	LabModule    string    `json:"lab_module"`
	Difficulty   string    `json:"difficulty"`
	Points       int       `json:"points"`
	DueDate      time.Time `json:"due_date"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	Instructions string    `json:"instructions"`
	Resources    []string  `json:"resources"`
	IsActive     bool      `json:"is_active"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:           model.ID,
		Title:        model.Title,
		Description:  model.Description,
		LabModule:    model.LabModule,
		Difficulty:   model.Difficulty,
		Points:       model.Points,
		DueDate:      model.DueDate,
		CreatedBy:    model.CreatedBy,
		CreatedAt:    model.CreatedAt,
		Instructions: model.Instructions,
		Resources:    model.Resources,
		IsActive:     model.IsActive,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
