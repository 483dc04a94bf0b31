package dashboard

// Summary is the landing page snapshot. Counts honor the caller's
// ownership scope, so two users with different roles see different
// numbers. PendingApprovals is only populated for admins.
type Summary struct {
	LeadsByStatus    map[string]int64 `json:"leads_by_status"`
	OpenDeals        int64            `json:"open_deals"`
	PipelineValue    float64          `json:"pipeline_value"`
	OpenTickets      int64            `json:"open_tickets"`
	ActiveProjects   int64            `json:"active_projects"`
	TasksDue         int64            `json:"tasks_due"`
	PendingApprovals *int64           `json:"pending_approvals,omitempty"`
}
