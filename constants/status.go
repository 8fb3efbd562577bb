package constants

// JobStatus is the canonical status for rows in extract_jobs.
type JobStatus string

// Stable values (store these exact strings in the DB).
const (
	JobStatusRunning  JobStatus = "RUNNING"  // request accepted, pipeline in progress
	JobStatusOK       JobStatus = "OK"       // classified and extracted
	JobStatusRejected JobStatus = "REJECTED" // classifier returned Unknown
	JobStatusFailed   JobStatus = "FAILED"   // terminal failure
)
