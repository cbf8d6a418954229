package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"skillmaster_backend/internal/config"
	"skillmaster_backend/internal/model"
	"skillmaster_backend/internal/util"
	"skillmaster_backend/pkg/logger"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const quizQuestionCount = 3

// QuizGenerator produces a validated question set for a lesson. The grading
// and persistence paths depend only on this interface so they can be tested
// with a substitutable fake.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, lesson *model.Lesson, difficulty string) ([]model.QuizQuestion, error)
}

// quizResponseSchema is the contract the model output must satisfy before we
// accept it: exactly 3 questions, each with 4 unique options and an
// answerIndex in [0,3].
const quizResponseSchema = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"minItems": 3,
			"maxItems": 3,
			"items": {
				"type": "object",
				"required": ["question", "options", "answerIndex"],
				"properties": {
					"question": {"type": "string", "minLength": 1},
					"options": {
						"type": "array",
						"minItems": 4,
						"maxItems": 4,
						"uniqueItems": true,
						"items": {"type": "string", "minLength": 1}
					},
					"answerIndex": {"type": "integer", "minimum": 0, "maximum": 3}
				}
			}
		}
	}
}`

// OpenAIQuizGenerator calls an OpenAI-compatible chat completion endpoint and
// parses the response into quiz questions.
type OpenAIQuizGenerator struct {
	config config.OpenAIConfig
	client *http.Client
	schema *gojsonschema.Schema
}

func NewOpenAIQuizGenerator(cfg config.OpenAIConfig) *OpenAIQuizGenerator {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(quizResponseSchema))
	if err != nil {
		// the schema is a compile-time constant; failing to parse it is a bug
		panic(fmt.Sprintf("quiz response schema invalid: %v", err))
	}
	return &OpenAIQuizGenerator{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		schema: schema,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type quizPayload struct {
	Questions []model.QuizQuestion `json:"questions"`
}

func (g *OpenAIQuizGenerator) systemPrompt() string {
	return "You are an assistant that generates multiple-choice quizzes for short lessons. " +
		"Return strictly valid JSON with fields: questions (array of 3 objects), each having " +
		"question (string), options (array of 4 strings), answerIndex (0-3 integer). " +
		"Avoid extra commentary; return JSON only."
}

func (g *OpenAIQuizGenerator) userPrompt(lesson *model.Lesson, difficulty string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a 3-question multiple-choice quiz for the lesson.\n")
	fmt.Fprintf(&b, "Title: %s\n", lesson.Title)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Content:\n%s\n\n", lesson.Content)
	b.WriteString("Ensure:\n")
	b.WriteString("- Questions target key points from the content.\n")
	b.WriteString("- Each has exactly 4 concise options.\n")
	b.WriteString("- answerIndex correctly identifies the best option.\n")
	b.WriteString("Return JSON with shape:\n")
	b.WriteString(`{"questions": [{"question": "...", "options": ["...","...","...","..."], "answerIndex": 0}]}`)
	return b.String()
}

// GenerateQuiz performs one bounded model call and validates the result.
// Missing credentials or an unreachable upstream surface as
// util.ErrQuizServiceNotConfigured / util.ErrQuizServiceUnavailable; a reply
// that fails schema validation surfaces as util.ErrInvalidQuizPayload.
func (g *OpenAIQuizGenerator) GenerateQuiz(ctx context.Context, lesson *model.Lesson, difficulty string) ([]model.QuizQuestion, error) {
	if g.config.APIKey == "" {
		return nil, util.ErrQuizServiceNotConfigured
	}

	reqBody := chatCompletionRequest{
		Model: g.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: g.systemPrompt()},
			{Role: "user", Content: g.userPrompt(lesson, difficulty)},
		},
		Temperature: 0.2,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		// never log the request (it carries the credential); status-level info only
		if isTimeout(err) {
			logger.Log.Error("quiz model request timed out")
		} else {
			logger.Log.Error("quiz model request failed", zap.Error(err))
		}
		return nil, util.ErrQuizServiceUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Log.Error("quiz model response read failed", zap.Error(err))
		return nil, util.ErrQuizServiceUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		logger.Log.Error("quiz model returned error status", zap.Int("status", resp.StatusCode))
		return nil, util.ErrQuizServiceUnavailable
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, util.ErrQuizServiceUnavailable
	}
	if len(completion.Choices) == 0 {
		return nil, util.ErrQuizServiceUnavailable
	}

	questions, err := g.parseQuizContent(completion.Choices[0].Message.Content)
	if err != nil {
		logger.Log.Warn("quiz model response failed validation", zap.Error(err))
		return nil, util.ErrInvalidQuizPayload
	}
	return questions, nil
}

// parseQuizContent strips optional markdown fences and validates the JSON
// body against the quiz schema.
func (g *OpenAIQuizGenerator) parseQuizContent(content string) ([]model.QuizQuestion, error) {
	content = stripCodeFence(content)

	result, err := g.schema.Validate(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("response violates quiz schema: %s", strings.Join(msgs, "; "))
	}

	var payload quizPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, err
	}
	if len(payload.Questions) != quizQuestionCount {
		return nil, fmt.Errorf("expected %d questions, got %d", quizQuestionCount, len(payload.Questions))
	}
	return payload.Questions, nil
}

// stripCodeFence removes a ``` or ```json wrapper if the model added one.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.Trim(content, "`")
	if strings.HasPrefix(content, "json") {
		content = content[4:]
	}
	return strings.TrimSpace(content)
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}
