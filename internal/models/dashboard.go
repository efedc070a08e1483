package models

// ScheduleEntry is a manually added event that lives only in the dashboard,
// alongside whatever the remote calendar returns.
type ScheduleEntry struct {
	ID       string `json:"id"`
	Time     string `json:"time"` // freeform, e.g. "9:00 AM"
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Manual   bool   `json:"manual"`
}

// ChecklistItem is one entry in a daily checklist category.
type ChecklistItem struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}
