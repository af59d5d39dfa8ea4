package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce             sync.Once
	assignmentsCreatedTotal  prometheus.Counter
	assignmentsDeletedTotal  prometheus.Counter
	submissionsRecordedTotal *prometheus.CounterVec
	gradingsAppliedTotal     prometheus.Counter
	approvalsAppliedTotal    prometheus.Counter
	storeWritesTotal         *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used for coursework observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		assignmentsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coursework_assignments_created_total",
			Help: "Total number of assignments created.",
		})

		assignmentsDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coursework_assignments_deleted_total",
			Help: "Total number of assignments hard-deleted (including cascades).",
		})

		submissionsRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursework_submissions_recorded_total",
			Help: "Total number of submissions recorded, labelled by initial status.",
		}, []string{"status"})

		gradingsAppliedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coursework_gradings_applied_total",
			Help: "Total number of grades applied to submissions.",
		})

		approvalsAppliedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coursework_approvals_applied_total",
			Help: "Total number of submission approvals applied.",
		})

		storeWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursework_store_writes_total",
			Help: "Total number of whole-document rewrites, labelled by collection.",
		}, []string{"collection"})

		prometheus.MustRegister(
			assignmentsCreatedTotal,
			assignmentsDeletedTotal,
			submissionsRecordedTotal,
			gradingsAppliedTotal,
			approvalsAppliedTotal,
			storeWritesTotal,
		)
	})
}

// AssignmentsCreated exposes the counter for created assignments.
func AssignmentsCreated() prometheus.Counter {
	RegisterMetrics()
	return assignmentsCreatedTotal
}

// AssignmentsDeleted exposes the counter for deleted assignments.
func AssignmentsDeleted() prometheus.Counter {
	RegisterMetrics()
	return assignmentsDeletedTotal
}

// SubmissionsRecorded exposes the counter for recorded submissions.
func SubmissionsRecorded() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsRecordedTotal
}

// GradingsApplied exposes the counter for applied grades.
func GradingsApplied() prometheus.Counter {
	RegisterMetrics()
	return gradingsAppliedTotal
}

// ApprovalsApplied exposes the counter for applied approvals.
func ApprovalsApplied() prometheus.Counter {
	RegisterMetrics()
	return approvalsAppliedTotal
}

// StoreWrites exposes the counter for store document rewrites.
func StoreWrites() *prometheus.CounterVec {
	RegisterMetrics()
	return storeWritesTotal
}
