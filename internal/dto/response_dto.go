package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// StatusResponse is the body of the proctoring endpoints. Failures other than
// a missing session are reported with Status "error" and HTTP 200.
type StatusResponse struct {
	Status string `json:"status"`
	Msg    string `json:"msg,omitempty"`
}

type TestResponseDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}

type TestListResponse struct {
	Tests []TestResponseDTO `json:"tests"`
	Msg   string            `json:"msg,omitempty"`
}

type ResultDTO struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	TestID         uint      `json:"test_id"`
	AnswersJSON    string    `json:"answers_json"`
	StartTime      time.Time `json:"start_time"`
	FinishTime     time.Time `json:"finish_time"`
	FocusLossCount int       `json:"focus_loss_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// StartTestResponse is everything the test player needs: the result id it
// must echo back and the endpoints it reports to.
type StartTestResponse struct {
	Test          TestResponseDTO `json:"test"`
	ResultID      uint            `json:"result_id"`
	StartTime     time.Time       `json:"start_time"`
	FileURL       string          `json:"file_url"`
	FocusURL      string          `json:"focus_url"`
	ScreenshotURL string          `json:"screenshot_url"`
	SubmitURL     string          `json:"submit_url"`
}

type SubmitResponse struct {
	Status   string    `json:"status"`
	Redirect string    `json:"redirect"`
	Result   ResultDTO `json:"result"`
}

type LoginResponse struct {
	Token       string    `json:"token"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	IsSuperuser bool      `json:"is_superuser"`
	ExpiresAt   time.Time `json:"expires_at"`
	Redirect    string    `json:"redirect"`
}

// ScreenshotOutcome is what the capture service reports back to the controller.
type ScreenshotOutcome struct {
	ScreenshotID uint
	ImagePath    string
	Sent         bool
}
