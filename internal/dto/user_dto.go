package dto

// UserProfileResponse is the authenticated user's own profile.
type UserProfileResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
}

// UpdateProfileRequest updates the authenticated user's own profile.
// @Description Request body for updating the profile
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

// UserStatsResponse aggregates the user's quiz history.
type UserStatsResponse struct {
	TotalAttempts     int     `json:"total_attempts"`
	BestPercentage    float64 `json:"best_percentage"`
	AveragePercentage float64 `json:"average_percentage"`
	QuestionsAnswered int     `json:"questions_answered"`
	CorrectAnswers    int     `json:"correct_answers"`
	OverallAccuracy   float64 `json:"overall_accuracy"`
}
