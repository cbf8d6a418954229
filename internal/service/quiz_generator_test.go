package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"skillmaster_backend/internal/config"
	"skillmaster_backend/internal/model"
	"skillmaster_backend/internal/util"
	"testing"
	"time"
)

const validQuizJSON = `{
	"questions": [
		{"question": "What is a variable?", "options": ["A named value", "A loop", "A file", "A server"], "answerIndex": 0},
		{"question": "What does a function do?", "options": ["Stores data", "Renders HTML", "Groups reusable logic", "Opens sockets"], "answerIndex": 2},
		{"question": "What is a slice?", "options": ["A database", "A dynamic sequence", "A comment", "A package"], "answerIndex": 1}
	]
}`

func testLesson() *model.Lesson {
	return &model.Lesson{
		Title:   "First Steps",
		Content: "Welcome! This lesson introduces key concepts and a short activity.",
	}
}

func newChatCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req chatCompletionRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) != 2 {
			t.Errorf("expected system and user messages, got %d", len(req.Messages))
		}

		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: content}},
			},
		})
	}))
}

func newGenerator(baseURL string) *OpenAIQuizGenerator {
	return NewOpenAIQuizGenerator(config.OpenAIConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "gpt-4o-mini",
		TimeoutSeconds: 5,
	})
}

func TestGenerateQuiz(t *testing.T) {
	server := newChatCompletionServer(t, validQuizJSON)
	defer server.Close()

	questions, err := newGenerator(server.URL).GenerateQuiz(context.Background(), testLesson(), "Beginner")
	if err != nil {
		t.Fatalf("GenerateQuiz() error = %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}
	if questions[1].AnswerIndex != 2 {
		t.Errorf("answerIndex = %d, want 2", questions[1].AnswerIndex)
	}
	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
	}
}

func TestGenerateQuiz_FencedJSON(t *testing.T) {
	server := newChatCompletionServer(t, "```json\n"+validQuizJSON+"\n```")
	defer server.Close()

	questions, err := newGenerator(server.URL).GenerateQuiz(context.Background(), testLesson(), "Beginner")
	if err != nil {
		t.Fatalf("GenerateQuiz() error = %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}
}

func TestGenerateQuiz_InvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "sorry, I cannot help with that"},
		{"wrong question count", `{"questions": [{"question": "q", "options": ["a","b","c","d"], "answerIndex": 0}]}`},
		{"answer index out of range", `{
			"questions": [
				{"question": "q1", "options": ["a","b","c","d"], "answerIndex": 4},
				{"question": "q2", "options": ["a","b","c","d"], "answerIndex": 0},
				{"question": "q3", "options": ["a","b","c","d"], "answerIndex": 0}
			]
		}`},
		{"three options", `{
			"questions": [
				{"question": "q1", "options": ["a","b","c"], "answerIndex": 0},
				{"question": "q2", "options": ["a","b","c","d"], "answerIndex": 0},
				{"question": "q3", "options": ["a","b","c","d"], "answerIndex": 0}
			]
		}`},
		{"missing answerIndex", `{
			"questions": [
				{"question": "q1", "options": ["a","b","c","d"]},
				{"question": "q2", "options": ["a","b","c","d"], "answerIndex": 0},
				{"question": "q3", "options": ["a","b","c","d"], "answerIndex": 0}
			]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newChatCompletionServer(t, tt.content)
			defer server.Close()

			_, err := newGenerator(server.URL).GenerateQuiz(context.Background(), testLesson(), "Beginner")
			if !errors.Is(err, util.ErrInvalidQuizPayload) {
				t.Errorf("error = %v, want ErrInvalidQuizPayload", err)
			}
		})
	}
}

func TestGenerateQuiz_MissingAPIKey(t *testing.T) {
	generator := NewOpenAIQuizGenerator(config.OpenAIConfig{BaseURL: "http://localhost:1", Model: "gpt-4o-mini"})

	_, err := generator.GenerateQuiz(context.Background(), testLesson(), "Beginner")
	if !errors.Is(err, util.ErrQuizServiceNotConfigured) {
		t.Errorf("error = %v, want ErrQuizServiceNotConfigured", err)
	}
}

func TestGenerateQuiz_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "boom"}}`))
	}))
	defer server.Close()

	_, err := newGenerator(server.URL).GenerateQuiz(context.Background(), testLesson(), "Beginner")
	if !errors.Is(err, util.ErrQuizServiceUnavailable) {
		t.Errorf("error = %v, want ErrQuizServiceUnavailable", err)
	}
}

func TestGenerateQuiz_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	generator := NewOpenAIQuizGenerator(config.OpenAIConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})
	generator.client.Timeout = 50 * time.Millisecond

	_, err := generator.GenerateQuiz(context.Background(), testLesson(), "Beginner")
	if !errors.Is(err, util.ErrQuizServiceUnavailable) {
		t.Errorf("error = %v, want ErrQuizServiceUnavailable", err)
	}
}

func TestGenerateQuiz_TruncatedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// advertise more bytes than are sent so the client's read fails mid-body
		w.Header().Set("Content-Length", "4096")
		w.Write([]byte(`{"choices":[{"message":{"role":"assist`))
	}))
	defer server.Close()

	_, err := newGenerator(server.URL).GenerateQuiz(context.Background(), testLesson(), "Beginner")
	if !errors.Is(err, util.ErrQuizServiceUnavailable) {
		t.Errorf("error = %v, want ErrQuizServiceUnavailable", err)
	}
}

func TestGenerateQuiz_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatCompletionResponse{})
	}))
	defer server.Close()

	_, err := newGenerator(server.URL).GenerateQuiz(context.Background(), testLesson(), "Beginner")
	if !errors.Is(err, util.ErrQuizServiceUnavailable) {
		t.Errorf("error = %v, want ErrQuizServiceUnavailable", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
