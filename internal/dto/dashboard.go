package dto

type DashboardStatsDTO struct {
	TotalEquipment int `json:"total_equipment"`
	ActiveTickets  int `json:"active_tickets"`
	CriticalIssues int `json:"critical_issues"`
	ResolvedToday  int `json:"resolved_today"`
}

// EquipmentBreakdownDTO - количество оборудования по статусам.
type EquipmentBreakdownDTO struct {
	Available   int `json:"available"`
	InUse       int `json:"in_use"`
	Maintenance int `json:"maintenance"`
}

type ActivityDTO struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Item  string `json:"item"`
	Time  string `json:"time"`
}

type DashboardDTO struct {
	Stats          DashboardStatsDTO     `json:"stats"`
	Equipment      EquipmentBreakdownDTO `json:"equipment"`
	RecentActivity []ActivityDTO         `json:"recent_activity"`
}
