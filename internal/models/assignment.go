package models

import "time"

// Difficulty levels accepted for an assignment.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Assignment represents a cipher-lab assignment definition.
type Assignment struct {
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

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
