package dto

// JobRequest represents request for a single job lookup
type JobRequest struct {
	// job_id arrives as a path parameter
}

// JobResponse represents the observable state of one scheduled job
type JobResponse struct {
	JobID        string `json:"job_id"`
	DayOfWeek    int    `json:"day_of_week"`
	Hour         int    `json:"hour"`
	Minute       int    `json:"minute"`
	Timezone     string `json:"timezone"`
	NextRunTime  string `json:"next_run_time,omitempty"`
	CallbackName string `json:"callback_name,omitempty"`
}

// JobListRequest represents request for listing all jobs
type JobListRequest struct{}

// JobListResponse represents response for listing all jobs
type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Count int           `json:"count"`
}
