package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dimitrije/prompthub/internal/models"
	"github.com/dimitrije/prompthub/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
)

const timestampLayout = "2006-01-02T15:04:05.000000"

// PromptServer is an in-memory stand-in for the prompt backend. It serves
// the collection under /api/prompts and a liveness probe at /health.
type PromptServer struct {
	mu      sync.Mutex
	nextID  int64
	prompts map[int64]models.Prompt
	now     func() time.Time
}

func NewPromptServer() *PromptServer {
	return &PromptServer{
		nextID:  1,
		prompts: make(map[int64]models.Prompt),
		now:     time.Now,
	}
}

// StartPromptServer runs a PromptServer on a local port until the test ends.
func StartPromptServer(t *testing.T) (*PromptServer, *httptest.Server) {
	t.Helper()
	s := NewPromptServer()
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)
	return s, server
}

// SetClock replaces the time source used for created_at and updated_at.
func (s *PromptServer) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *PromptServer) Handler() http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())

	app.Get("/health", func(c *drift.Context) {
		_ = c.JSON(http.StatusOK, dto.HealthResponse{Status: "healthy"})
	})

	api := app.Group("/api")
	api.Get("/prompts", s.list)
	api.Post("/prompts", s.create)
	api.Get("/prompts/:id", s.get)
	api.Put("/prompts/:id", s.update)
	api.Delete("/prompts/:id", s.delete)

	return app
}

// Put stores p as-is, keeping its id. Used to seed fixtures.
func (s *PromptServer) Put(p models.Prompt) models.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.nextID
	}
	if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	if p.CreatedAt == "" {
		p.CreatedAt = s.timestamp()
	}
	if p.UpdatedAt == "" {
		p.UpdatedAt = p.CreatedAt
	}
	s.prompts[p.ID] = p
	return p
}

func (s *PromptServer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func (s *PromptServer) timestamp() string {
	return s.now().UTC().Format(timestampLayout) + "Z"
}

func (s *PromptServer) list(c *drift.Context) {
	s.mu.Lock()
	prompts := make([]models.Prompt, 0, len(s.prompts))
	for _, p := range s.prompts {
		prompts = append(prompts, p)
	}
	s.mu.Unlock()

	sort.Slice(prompts, func(i, j int) bool {
		if prompts[i].CreatedAt != prompts[j].CreatedAt {
			return prompts[i].CreatedAt > prompts[j].CreatedAt
		}
		return prompts[i].ID > prompts[j].ID
	})

	_ = c.JSON(http.StatusOK, prompts)
}

func (s *PromptServer) create(c *drift.Context) {
	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Category *string `json:"category"`
	}
	if err := c.BindJSON(&req); err != nil || req.Title == nil || req.Content == nil {
		_ = c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Title and content are required"})
		return
	}

	s.mu.Lock()
	now := s.timestamp()
	p := models.Prompt{
		ID:        s.nextID,
		Title:     *req.Title,
		Content:   *req.Content,
		Category:  req.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.prompts[p.ID] = p
	s.mu.Unlock()

	_ = c.JSON(http.StatusCreated, p)
}

func (s *PromptServer) get(c *drift.Context) {
	p, ok := s.lookup(c)
	if !ok {
		return
	}
	_ = c.JSON(http.StatusOK, p)
}

// update mirrors partial-update semantics: only keys present in the body
// change, and an explicit null clears the category.
func (s *PromptServer) update(c *drift.Context) {
	var fields map[string]json.RawMessage
	if err := c.BindJSON(&fields); err != nil {
		_ = c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	p, ok := s.prompts[id]
	if err != nil || !ok {
		_ = c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Prompt not found"})
		return
	}

	if raw, ok := fields["title"]; ok {
		_ = json.Unmarshal(raw, &p.Title)
	}
	if raw, ok := fields["content"]; ok {
		_ = json.Unmarshal(raw, &p.Content)
	}
	if raw, ok := fields["category"]; ok {
		var category *string
		_ = json.Unmarshal(raw, &category)
		p.Category = category
	}
	p.UpdatedAt = s.timestamp()
	s.prompts[id] = p

	_ = c.JSON(http.StatusOK, p)
}

func (s *PromptServer) delete(c *drift.Context) {
	p, ok := s.lookup(c)
	if !ok {
		return
	}

	s.mu.Lock()
	delete(s.prompts, p.ID)
	s.mu.Unlock()

	_ = c.JSON(http.StatusOK, dto.MessageResponse{Message: "Prompt deleted successfully"})
}

func (s *PromptServer) lookup(c *drift.Context) (models.Prompt, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		s.mu.Lock()
		p, ok := s.prompts[id]
		s.mu.Unlock()
		if ok {
			return p, true
		}
	}

	_ = c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Prompt not found"})
	return models.Prompt{}, false
}
