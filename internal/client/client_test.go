package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dimitrije/prompthub/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const promptJSON = `{
	"id": 5,
	"title": "Old",
	"content": "Body",
	"category": "writing",
	"created_at": "2024-05-01T12:30:00.000001Z",
	"updated_at": "2024-05-01T12:30:00.000001Z"
}`

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Accept      string
	Body        string
}

func newRecordingServer(t *testing.T, status int, response string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded.Method = r.Method
		recorded.Path = r.URL.Path
		recorded.ContentType = r.Header.Get("Content-Type")
		recorded.Accept = r.Header.Get("Accept")
		recorded.Body = string(body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return server, recorded
}

func TestClient_List(t *testing.T) {
	server, recorded := newRecordingServer(t, http.StatusOK, "["+promptJSON+"]")
	c := New(Config{BaseURL: server.URL + "/api"})

	prompts, err := c.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, recorded.Method)
	assert.Equal(t, "/api/prompts", recorded.Path)
	assert.Equal(t, "application/json", recorded.ContentType)
	assert.Equal(t, "application/json", recorded.Accept)
	require.Len(t, prompts, 1)
	assert.Equal(t, int64(5), prompts[0].ID)
	assert.Equal(t, "writing", prompts[0].CategoryOrEmpty())
}

func TestClient_List_Empty(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusOK, `[]`)
	c := New(Config{BaseURL: server.URL})

	prompts, err := c.List(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, prompts)
	assert.Empty(t, prompts)
}

func TestClient_List_NullBody(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusOK, `null`)
	c := New(Config{BaseURL: server.URL})

	prompts, err := c.List(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, prompts)
	assert.Empty(t, prompts)
}

func TestClient_GetByID(t *testing.T) {
	server, recorded := newRecordingServer(t, http.StatusOK, promptJSON)
	c := New(Config{BaseURL: server.URL + "/api/"})

	prompt, err := c.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, recorded.Method)
	assert.Equal(t, "/api/prompts/5", recorded.Path)
	assert.Equal(t, "Old", prompt.Title)
	assert.Equal(t, "2024-05-01T12:30:00.000001Z", prompt.CreatedAt)
}

func TestClient_GetByID_NotFound(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusNotFound, `{"message": "prompt not found"}`)
	c := New(Config{BaseURL: server.URL})

	prompt, err := c.GetByID(context.Background(), 99)

	assert.Nil(t, prompt)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsStatus(err, http.StatusNotFound))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "prompt not found", statusErr.Message)
	assert.Equal(t, http.MethodGet, statusErr.Method)
}

func TestClient_Create(t *testing.T) {
	server, recorded := newRecordingServer(t, http.StatusCreated, `{
		"id": 1,
		"title": "T",
		"content": "C",
		"category": null,
		"created_at": "2024-05-01T12:30:00Z",
		"updated_at": "2024-05-01T12:30:00Z"
	}`)
	c := New(Config{BaseURL: server.URL})

	prompt, err := c.Create(context.Background(), dto.CreatePromptRequest{Title: "T", Content: "C"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, recorded.Method)
	assert.Equal(t, "/prompts", recorded.Path)
	assert.JSONEq(t, `{"title":"T","content":"C"}`, recorded.Body)
	assert.Equal(t, int64(1), prompt.ID)
	assert.Nil(t, prompt.Category)
}

func TestClient_Create_BadRequest(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusBadRequest, `{"message": "Title and content are required"}`)
	c := New(Config{BaseURL: server.URL})

	_, err := c.Create(context.Background(), dto.CreatePromptRequest{})

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Contains(t, err.Error(), "Title and content are required")
}

func TestClient_Update_SendsOnlySetFields(t *testing.T) {
	server, recorded := newRecordingServer(t, http.StatusOK, promptJSON)
	c := New(Config{BaseURL: server.URL})

	_, err := c.Update(context.Background(), 5, dto.UpdatePromptRequest{Title: dto.String("New")})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, recorded.Method)
	assert.Equal(t, "/prompts/5", recorded.Path)
	assert.JSONEq(t, `{"title":"New"}`, recorded.Body)
}

func TestClient_Update_EmptyPayload(t *testing.T) {
	server, recorded := newRecordingServer(t, http.StatusOK, promptJSON)
	c := New(Config{BaseURL: server.URL})

	_, err := c.Update(context.Background(), 5, dto.UpdatePromptRequest{})
	require.NoError(t, err)

	assert.JSONEq(t, `{}`, recorded.Body)
}

func TestClient_Remove(t *testing.T) {
	server, recorded := newRecordingServer(t, http.StatusOK, `{"message": "Prompt deleted successfully"}`)
	c := New(Config{BaseURL: server.URL})

	resp, err := c.Remove(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, recorded.Method)
	assert.Equal(t, "/prompts/5", recorded.Path)
	assert.Empty(t, recorded.Body)
	assert.Equal(t, "Prompt deleted successfully", resp.Message)
}

func TestClient_Health(t *testing.T) {
	server, recorded := newRecordingServer(t, http.StatusOK, `{"status": "healthy"}`)
	c := New(Config{BaseURL: server.URL + "/api"})

	resp, err := c.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/health", recorded.Path)
	assert.Equal(t, "healthy", resp.Status)
}

func TestClient_MalformedJSON(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusOK, `{"id": `)
	c := New(Config{BaseURL: server.URL})

	_, err := c.GetByID(context.Background(), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")

	var syntaxErr *json.SyntaxError
	var unexpected = errors.Is(err, io.ErrUnexpectedEOF) || errors.As(err, &syntaxErr)
	assert.True(t, unexpected)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusInternalServerError, `<html>oops</html>`)
	c := New(Config{BaseURL: server.URL})

	_, err := c.List(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Empty(t, statusErr.Message)
	assert.Equal(t, "<html>oops</html>", string(statusErr.Body))
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	c := New(Config{BaseURL: baseURL})
	_, err := c.List(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to GET")

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(Config{BaseURL: server.URL})
	_, err := c.List(ctx)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_ConcurrentCallsAreIndependent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1, "title": "` + r.URL.Path + `", "content": "C"}`))
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})

	var wg sync.WaitGroup
	titles := make([]string, 20)
	for i := range titles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prompt, err := c.GetByID(context.Background(), int64(i))
			if err == nil {
				titles[i] = prompt.Title
			}
		}(i)
	}
	wg.Wait()

	for i, title := range titles {
		assert.Equal(t, "/prompts/"+strconv.Itoa(i), title)
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})

	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, "http://localhost:5000/health", c.healthURL)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func TestNew_Options(t *testing.T) {
	httpClient := &http.Client{Timeout: time.Second}
	c := New(Config{BaseURL: "http://example.com/api/", HealthURL: "http://example.com/ping"},
		WithHTTPClient(httpClient),
		WithUserAgent("test-agent"),
	)

	assert.Equal(t, "http://example.com/api", c.BaseURL())
	assert.Equal(t, "http://example.com/ping", c.healthURL)
	assert.Same(t, httpClient, c.httpClient)
	assert.Equal(t, "test-agent", c.userAgent)
}

func TestDeriveHealthURL(t *testing.T) {
	assert.Equal(t, "https://prompts.example.com/health", deriveHealthURL("https://prompts.example.com/api/v1"))
	assert.Equal(t, "relative/health", deriveHealthURL("relative"))
}
