package generator

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/studyforge/backend/internal/models"
)

// LLMClient is the interface both generator implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient and produces quiz payloads from document text.
type Generator struct {
	llm   LLMClient
	model string
}

func NewGenerator() *Generator {
	var llm LLMClient
	model := "mock"

	if os.Getenv("MOCK_GENERATOR") == "true" {
		llm = NewMockClient()
		log.Println("Generator using mock data")
	} else {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-sonnet-4-20250514"
		}
		llm = NewAPIClient(model)
		log.Println("Generator using Anthropic API:", model)
	}

	return &Generator{llm: llm, model: model}
}

// NewGeneratorWith builds a Generator around an explicit client. Used by
// tests and anywhere the env-based selection is not wanted.
func NewGeneratorWith(llm LLMClient, model string) *Generator {
	return &Generator{llm: llm, model: model}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateQuiz produces a raw quiz payload from a document's extracted text.
// The payload is untrusted generator output; callers must run it through the
// quiz content adapter before grading against it.
func (g *Generator) GenerateQuiz(ctx context.Context, doc *models.Document, title string, numQuestions int, difficulty models.Difficulty) (*models.QuizPayload, *LLMResponse, error) {
	systemPrompt := QuizSystemPrompt()
	userPrompt := BuildQuizUserPrompt(doc, title, numQuestions, difficulty)

	resp, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, nil, fmt.Errorf("generate quiz: %w", err)
	}

	payload, err := ParseResponse(resp.Content)
	if err != nil {
		return nil, resp, fmt.Errorf("parse quiz response: %w", err)
	}

	return payload, resp, nil
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   8192,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying Anthropic API call (attempt %d)", attempt+1)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)

		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      mockQuizJSON,
		PromptTokens: 1200,
		OutputTokens: 900,
	}, nil
}

// mockQuizJSON exercises every interaction kind the grader supports.
const mockQuizJSON = `{
  "title": "[Mock] Key Concepts Review",
  "questions": [
    {
      "question": "[Mock] Which statement best summarizes the document's central claim?",
      "kind": "multiple_choice",
      "options": ["The first supporting point", "The central claim", "A counterargument", "An unrelated aside"],
      "correct_answer": "The central claim",
      "difficulty": "easy",
      "hint": "Look at the opening section."
    },
    {
      "question": "[Mock] Type the term the document defines in its second section.",
      "kind": "type_answer",
      "correct_answer": "osmosis",
      "difficulty": "medium"
    },
    {
      "question": "[Mock] Arrange the stages in the order the document presents them.",
      "kind": "ordering",
      "options": ["Stage one", "Stage two", "Stage three"],
      "correct_order": [0, 1, 2],
      "difficulty": "medium"
    },
    {
      "question": "[Mock] Match each concept to its description.",
      "kind": "matching",
      "pairs": {"Concept A": "First description", "Concept B": "Second description"},
      "difficulty": "hard"
    },
    {
      "question": "[Mock] According to the document, what percentage is cited in the conclusion?",
      "kind": "slider",
      "slider_min": 0,
      "slider_max": 100,
      "slider_answer": 42,
      "difficulty": "hard",
      "hint": "It is mentioned alongside the final study."
    }
  ]
}`
