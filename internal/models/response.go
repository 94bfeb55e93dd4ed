package models

// uniform error payload
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// lets ErrorResponse be returned from Validate
func (e *ErrorResponse) Error() string {
	return e.Message
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

type QuestionsResponse struct {
	Questions []string `json:"questions"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
