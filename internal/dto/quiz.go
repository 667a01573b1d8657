package dto

import "time"

// Pagination carries limit/offset paging parameters.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// PaginationInfo describes the page returned by a listing endpoint.
type PaginationInfo struct {
	TotalItems  int `json:"total_items"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// NewPaginationInfo derives page numbers from a limit/offset pair and the
// total match count.
func NewPaginationInfo(p Pagination, total int) PaginationInfo {
	info := PaginationInfo{
		TotalItems: total,
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
	if p.Limit > 0 {
		info.CurrentPage = p.Offset/p.Limit + 1
		info.TotalPages = (total + p.Limit - 1) / p.Limit
	}
	return info
}

// StartQuizRequest configures a new quiz attempt
// @Description Request body for starting a quiz attempt
type StartQuizRequest struct {
	Difficulty string `json:"difficulty"` // ALL, EASY, MEDIUM or HARD; empty means ALL
	Count      int    `json:"count"`
}

// AttemptQuestionView is one question as presented to the quiz taker.
// The correct label is never included.
type AttemptQuestionView struct {
	QuestionID  string            `json:"question_id"`
	Text        string            `json:"text"`
	Choices     map[string]string `json:"choices"`
	ChosenLabel string            `json:"chosen_label,omitempty"`
}

// AttemptResponse is the in-progress attempt state returned to the quiz taker.
type AttemptResponse struct {
	AttemptID  string                `json:"attempt_id"`
	Difficulty string                `json:"difficulty"`
	Count      int                   `json:"count"`
	Questions  []AttemptQuestionView `json:"questions"`
	Answered   int                   `json:"answered"`
	StartedAt  time.Time             `json:"started_at"`
}

// RecordAnswerRequest stores one answer on an attempt
// @Description Request body for answering a question
type RecordAnswerRequest struct {
	QuestionID  string `json:"question_id"`
	ChosenLabel string `json:"chosen_label"`
}

// AnswerDetailView is the scored outcome for one question of a submitted attempt.
type AnswerDetailView struct {
	QuestionID   string            `json:"question_id"`
	Text         string            `json:"text"`
	Choices      map[string]string `json:"choices"`
	ChosenLabel  string            `json:"chosen_label,omitempty"`
	CorrectLabel string            `json:"correct_label"`
	CorrectText  string            `json:"correct_text"`
	IsCorrect    bool              `json:"is_correct"`
}

// ResultResponse is a scored result with its per-question breakdown.
type ResultResponse struct {
	ResultID      string             `json:"result_id"`
	AttemptID     string             `json:"attempt_id"`
	Correct       int                `json:"correct"`
	Total         int                `json:"total"`
	Percentage    float64            `json:"percentage"`
	Grade         string             `json:"grade"`
	Passed        bool               `json:"passed"`
	Difficulty    string             `json:"difficulty"`
	TimeTakenSecs int64              `json:"time_taken_secs"`
	CompletedAt   time.Time          `json:"completed_at"`
	Breakdown     []AnswerDetailView `json:"breakdown,omitempty"`
}

// HistoryItem is one row of a user's result history.
type HistoryItem struct {
	ResultID    string    `json:"result_id"`
	Correct     int       `json:"correct"`
	Total       int       `json:"total"`
	Percentage  float64   `json:"percentage"`
	Grade       string    `json:"grade"`
	Passed      bool      `json:"passed"`
	Difficulty  string    `json:"difficulty"`
	CompletedAt time.Time `json:"completed_at"`
}

// HistoryResponse is a page of a user's past results, newest first.
type HistoryResponse struct {
	Results        []HistoryItem  `json:"results"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// LeaderboardResponse is the ranked leaderboard.
type LeaderboardResponse struct {
	Entries     []LeaderboardEntryView `json:"entries"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// LeaderboardEntryView is one ranked leaderboard row.
type LeaderboardEntryView struct {
	Rank           int       `json:"rank"`
	Username       string    `json:"username"`
	BestPercentage float64   `json:"best_percentage"`
	TotalAttempts  int       `json:"total_attempts"`
	AchievedAt     time.Time `json:"achieved_at"`
	IsMe           bool      `json:"is_me,omitempty"` // set per request, never cached
}

// HomeStatsResponse is the public landing-page statistics block.
type HomeStatsResponse struct {
	ActiveQuestions int `json:"active_questions"`
	TotalResults    int `json:"total_results"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
