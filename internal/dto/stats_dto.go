package dto

// StatsResponse aggregates coursework counts for dashboard consumers.
type StatsResponse struct {
	TotalActiveAssignments int                  `json:"total_active_assignments"`
	TotalSubmissions       int                  `json:"total_submissions"`
	GradedSubmissions      int                  `json:"graded_submissions"`
	PendingGrading         int                  `json:"pending_grading"`
	AssignmentsByModule    map[string]int       `json:"assignments_by_module"`
	RecentSubmissions      []SubmissionResponse `json:"recent_submissions"`
}
