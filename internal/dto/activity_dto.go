package dto

import (
	"time"

	"github.com/cryptovlab/coursework-api/internal/models"
)

// ActivityResponse is the serialized representation of an audit event.
type ActivityResponse struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewActivityResponse converts a model into a DTO.
func NewActivityResponse(model models.ActivityEvent) ActivityResponse {
	return ActivityResponse{
		ID:         model.ID,
		Actor:      model.Actor,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Detail:     model.Detail,
		CreatedAt:  model.CreatedAt,
	}
}

// NewActivityResponseSlice converts a slice of models into DTOs.
func NewActivityResponseSlice(events []models.ActivityEvent) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, NewActivityResponse(event))
	}

	return responses
}
