package dto

import "time"

// DashboardResultDTO is one row of the supervisor dashboard.
type DashboardResultDTO struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Username       string    `json:"username"`
	TestID         uint      `json:"test_id"`
	TestTitle      string    `json:"test_title"`
	AnswersJSON    string    `json:"answers_json"`
	StartTime      time.Time `json:"start_time"`
	FinishTime     time.Time `json:"finish_time"`
	FocusLossCount int       `json:"focus_loss_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type DashboardResponse struct {
	Results []DashboardResultDTO `json:"results"`
}

// ValidationErrorResponse reports form errors keyed by field name.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type FormSchemaResponse struct {
	Fields []string `json:"fields"`
	Next   string   `json:"next,omitempty"`
	Error  string   `json:"error,omitempty"`
}
