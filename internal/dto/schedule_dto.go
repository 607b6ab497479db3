package dto

// ScheduleRequest represents request to set a user's weekly notification slot
type ScheduleRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	Hour      int    `json:"hour" binding:"min=0,max=23"`
	Minute    int    `json:"minute" binding:"min=0,max=59"`
	Timezone  string `json:"timezone"`
}

// ScheduleResponse represents response after a schedule change
type ScheduleResponse struct {
	JobID     string `json:"job_id,omitempty"`
	Scheduled bool   `json:"scheduled"`
	Message   string `json:"message"`
}

// RemoveScheduleRequest represents request to drop a user's schedule
type RemoveScheduleRequest struct{}

// RemoveScheduleResponse represents response after a schedule removal
type RemoveScheduleResponse struct {
	Removed bool   `json:"removed"`
	Message string `json:"message"`
}
