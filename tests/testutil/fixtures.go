package testutil

import (
	"fmt"
	"testing"

	"github.com/dimitrije/prompthub/internal/models"
)

// Fixtures provides factory methods for seeding a PromptServer
type Fixtures struct {
	server  *PromptServer
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(server *PromptServer) *Fixtures {
	return &Fixtures{server: server}
}

// CreatePrompt stores a prompt with default values and returns it as the
// server will report it
func (f *Fixtures) CreatePrompt(t *testing.T, opts ...PromptOption) models.Prompt {
	t.Helper()
	f.counter++

	prompt := models.Prompt{
		Title:   fmt.Sprintf("Test Prompt %d", f.counter),
		Content: fmt.Sprintf("Test content %d", f.counter),
	}

	for _, opt := range opts {
		opt(&prompt)
	}

	return f.server.Put(prompt)
}

// PromptOption configures a test prompt
type PromptOption func(*models.Prompt)

// WithID pins the prompt's id
func WithID(id int64) PromptOption {
	return func(p *models.Prompt) {
		p.ID = id
	}
}

// WithTitle sets the prompt's title
func WithTitle(title string) PromptOption {
	return func(p *models.Prompt) {
		p.Title = title
	}
}

// WithContent sets the prompt's content
func WithContent(content string) PromptOption {
	return func(p *models.Prompt) {
		p.Content = content
	}
}

// WithCategory sets the prompt's category
func WithCategory(category string) PromptOption {
	return func(p *models.Prompt) {
		p.Category = &category
	}
}

// WithTimestamps sets both server timestamps
func WithTimestamps(createdAt, updatedAt string) PromptOption {
	return func(p *models.Prompt) {
		p.CreatedAt = createdAt
		p.UpdatedAt = updatedAt
	}
}
