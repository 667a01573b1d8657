package dto

import "time"

// QuestionRequest creates or updates a question in the bank
// @Description Request body for question create/update
type QuestionRequest struct {
	Text         string `json:"text"`
	ChoiceA      string `json:"choice_a"`
	ChoiceB      string `json:"choice_b"`
	ChoiceC      string `json:"choice_c"`
	ChoiceD      string `json:"choice_d"`
	CorrectLabel string `json:"correct_label"`
	Difficulty   string `json:"difficulty"`
	IsActive     *bool  `json:"is_active,omitempty"` // defaults to true on create
}

// QuestionResponse is the admin view of a question, correct label included.
type QuestionResponse struct {
	ID           string            `json:"id"`
	Text         string            `json:"text"`
	Choices      map[string]string `json:"choices"`
	CorrectLabel string            `json:"correct_label"`
	Difficulty   string            `json:"difficulty"`
	IsActive     bool              `json:"is_active"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// QuestionListResponse is a page of the question bank.
type QuestionListResponse struct {
	Questions      []QuestionResponse `json:"questions"`
	PaginationInfo PaginationInfo     `json:"pagination"`
}

// BulkIDsRequest addresses a set of questions for a bulk action
// @Description Request body for bulk question operations
type BulkIDsRequest struct {
	IDs []string `json:"ids"`
}

// BulkActionResponse reports how many rows a bulk action touched.
type BulkActionResponse struct {
	Affected int `json:"affected"`
}
