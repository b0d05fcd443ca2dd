package models

// JobState is the lifecycle state of a job as rendered by the platform.
// State is always inferred from the DOM, never tracked locally.
type JobState string

const (
	JobUnassigned JobState = "UNASSIGNED"
	JobInProgress JobState = "IN_PROGRESS"
	JobCompleted  JobState = "COMPLETED"
	JobUnknown    JobState = "UNKNOWN"
)

// JobRecord is one entry in the local job-tracking file. Jobs created during
// a test run are registered here so a later cleanup pass can remove them
// from the platform.
type JobRecord struct {
	JobCode        string `json:"job_code"`
	TestName       string `json:"test_name"`
	CreatedAt      string `json:"created_at"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}
