package models

import (
	"fmt"
	"time"
)

// Prompt is the managed resource record. ID, CreatedAt and UpdatedAt are
// assigned by the server and only ever read from responses.
type Prompt struct {
	ID        int64   `json:"id" yaml:"id"`
	Title     string  `json:"title" yaml:"title"`
	Content   string  `json:"content" yaml:"content"`
	Category  *string `json:"category" yaml:"category"`
	CreatedAt string  `json:"created_at" yaml:"created_at"`
	UpdatedAt string  `json:"updated_at" yaml:"updated_at"`
}

// naive ISO-8601 timestamps without a zone are treated as UTC
const localTimestamp = "2006-01-02T15:04:05"

func (p *Prompt) CreatedTime() (time.Time, error) {
	return ParseTimestamp(p.CreatedAt)
}

func (p *Prompt) UpdatedTime() (time.Time, error) {
	return ParseTimestamp(p.UpdatedAt)
}

// CategoryOrEmpty returns the category, or "" when the server sent none.
func (p *Prompt) CategoryOrEmpty() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}

// ParseTimestamp parses the ISO-8601 strings the prompt server emits,
// including fractional seconds.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(localTimestamp, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}
