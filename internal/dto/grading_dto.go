package dto

// GradeRequest describes the payload for grading a single submission.
type GradeRequest struct {
	Grade    int    `json:"grade" validate:"min=0,max=100"`
	Feedback string `json:"feedback"`
	GradedBy string `json:"graded_by" validate:"required"`
}

// BulkGradeRequest applies one grade and feedback to many submissions.
type BulkGradeRequest struct {
	SubmissionIDs []string `json:"submission_ids" validate:"required,min=1,dive,required"`
	Grade         int      `json:"grade" validate:"min=0,max=100"`
	Feedback      string   `json:"feedback"`
	GradedBy      string   `json:"graded_by" validate:"required"`
}

// BulkApproveRequest marks many submissions as approved.
type BulkApproveRequest struct {
	SubmissionIDs []string `json:"submission_ids" validate:"required,min=1,dive,required"`
	ApprovedBy    string   `json:"approved_by" validate:"required"`
}

// BulkResult reports the outcome of a best-effort batch mutation.
type BulkResult struct {
	Updated   int      `json:"updated"`
	FailedIDs []string `json:"failed_ids"`
}
