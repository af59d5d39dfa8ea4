package models

import "time"

const (
	// SubmissionStatusSubmitted indicates the submission arrived on time and is not graded.
	SubmissionStatusSubmitted = "submitted"
	// SubmissionStatusLate indicates the submission arrived after the due date.
	SubmissionStatusLate = "late"
	// SubmissionStatusGraded indicates the submission has been evaluated.
	SubmissionStatusGraded = "graded"
	// SubmissionStatusApproved indicates the submission has been signed off by faculty.
	SubmissionStatusApproved = "approved"
)

// Submission represents a student's attempt against an assignment.
type Submission struct {
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

// IsGraded reports whether the submission carries a final grade.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}

// IsLate reports whether the submission arrived after the deadline.
func (s Submission) IsLate() bool {
	return s.Status == SubmissionStatusLate
}
