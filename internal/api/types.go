package api

// Health is the GET /health response.
type Health struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Operational reports whether the service declared itself healthy.
func (h Health) Operational() bool { return h.Status == "operational" }

// Change is one detected model change.
type Change struct {
	ID             string   `json:"id"`
	ElementName    string   `json:"element_name"`
	ChangeType     string   `json:"change_type"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	CostImpact     float64  `json:"cost_impact"`
	ScheduleImpact float64  `json:"schedule_impact"`
	AffectedTrades []string `json:"affected_trades"`
	ClashDetected  bool     `json:"clash_detected"`
	DetectedAt     string   `json:"detected_at"`
}

// ChangeSummary is the GET /api/projects/{id}/changes response.
type ChangeSummary struct {
	TotalChanges        int      `json:"total_changes"`
	CriticalChanges     int      `json:"critical_changes"`
	TotalCostImpact     float64  `json:"total_cost_impact"`
	TotalScheduleImpact float64  `json:"total_schedule_impact"`
	AISummary           string   `json:"ai_summary"`
	Changes             []Change `json:"changes"`
}

// ROIMetrics is the GET /api/projects/{id}/roi response.
type ROIMetrics struct {
	ProjectID            string  `json:"project_id"`
	Period               string  `json:"period"`
	MeetingsSaved        int     `json:"meetings_saved"`
	HoursSaved           float64 `json:"hours_saved"`
	CostSaved            float64 `json:"cost_saved"`
	DecisionsAccelerated int     `json:"decisions_accelerated"`
	Message              string  `json:"message"`
}

// SeedResult is the POST /api/demo/seed response.
type SeedResult struct {
	Success   bool   `json:"success"`
	ProjectID string `json:"project_id"`
	Message   string `json:"message"`
	DemoURL   string `json:"demo_url"`
}

// ChangeDraft is the body for creating a manual change. The service assigns
// the priority from the impact figures.
type ChangeDraft struct {
	ElementName    string   `json:"element_name"`
	ChangeType     string   `json:"change_type"`
	Description    string   `json:"description"`
	CostImpact     float64  `json:"cost_impact"`
	ScheduleImpact float64  `json:"schedule_impact"`
	AffectedTrades []string `json:"affected_trades"`
}

// CreateResult is the POST /api/projects/{id}/changes response.
type CreateResult struct {
	Success  bool   `json:"success"`
	ChangeID string `json:"change_id"`
}

// AuthLogin is the GET /auth/login response.
type AuthLogin struct {
	AuthURL  string `json:"auth_url"`
	Provider string `json:"provider"`
}
