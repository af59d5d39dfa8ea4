package dto

import (
	"time"

	"github.com/cryptovlab/coursework-api/internal/models"
)

// SubmissionCreateRequest describes the payload for recording a submission.
type SubmissionCreateRequest struct {
	AssignmentID    string   `json:"assignment_id" validate:"required"`
	StudentUsername string   `json:"student_username" validate:"required"`
	Content         string   `json:"content"`
	Files           []string `json:"files"`
}

// SubmissionResponse is the serialized representation of a submission.
type SubmissionResponse struct {
	ID              string     `json:"id"`
	AssignmentID    string     `json:"assignment_id"`
	StudentUsername string     `json:"student_username"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	Content         string     `json:"content"`
	Files           []string   `json:"files"`
	Status          string     `json:"status"`
	Grade           *int       `json:"grade"`
	Feedback        *string    `json:"feedback"`
	GradedBy        *string    `json:"graded_by"`
	GradedAt        *time.Time `json:"graded_at"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:              model.ID,
		AssignmentID:    model.AssignmentID,
		StudentUsername: model.StudentUsername,
		SubmittedAt:     model.SubmittedAt,
		Content:         model.Content,
		Files:           model.Files,
		Status:          model.Status,
		Grade:           model.Grade,
		Feedback:        model.Feedback,
		GradedBy:        model.GradedBy,
		GradedAt:        model.GradedAt,
		ApprovedBy:      model.ApprovedBy,
		ApprovedAt:      model.ApprovedAt,
	}
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
