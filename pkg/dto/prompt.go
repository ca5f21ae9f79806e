package dto

type CreatePromptRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category *string `json:"category,omitempty"`
}

// UpdatePromptRequest is a partial update: nil fields are left out of the
// body and keep their server-side values.
type UpdatePromptRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r UpdatePromptRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Category == nil
}

type MessageResponse struct {
	Message string `json:"message" yaml:"message"`
}

type HealthResponse struct {
	Status string `json:"status" yaml:"status"`
}

// ErrorResponse covers both error body shapes a prompt server may send.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r ErrorResponse) Text() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Error
}

// String returns a pointer to s, for filling optional payload fields.
func String(s string) *string {
	return &s
}
