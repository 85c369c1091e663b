package domain

// Calendar event kinds.
const (
	EventGoal      = "goal"
	EventInterview = "interview"
)

// CalendarEvent is a dated item shown on the calendar page.
type CalendarEvent struct {
	ID          string `json:"id"`
	OriginalID  string `json:"original_id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Status      string `json:"status,omitempty"`
	Stage       string `json:"stage,omitempty"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
}
