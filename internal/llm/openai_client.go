// ABOUTME: OpenAI client for batch embeddings and conversation insight generation
// ABOUTME: Uses text-embedding-3-small for vectors, gpt-3.5-turbo for summaries (configurable)
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/zain/mindsearch/internal/config"
	"github.com/zain/mindsearch/internal/models"
	"github.com/zain/mindsearch/internal/util"
)

const insightSystemPrompt = "You are an expert at analyzing conversation transcripts. " +
	"Your task is to provide a concise one-sentence summary of the entire conversation " +
	"and then list exactly 5 distinct and most important keywords or keyphrases from it. " +
	"Format your response strictly as follows, with each part on a new line:\n" +
	"SUMMARY: [Your one-sentence summary here]\n" +
	"KEYWORDS: [keyword1, keyword2, keyword3, keyword4, keyword5]"

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// FromConfig maps the application config onto a client config.
func FromConfig(cfg *config.Config) *ClientConfig {
	return &ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	}
}

// OpenAIClient wraps the OpenAI API with per-call timeouts and retry with
// exponential backoff. With MaxRetries set to 0 each call is attempted once,
// which for batch embedding restores drop-and-log failure semantics.
type OpenAIClient struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewOpenAIClient creates a client from the given configuration.
func NewOpenAIClient(cfg *ClientConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClient{
		client:         openai.NewClient(cfg.APIKey),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}, nil
}

// EmbedTexts generates one embedding vector per input text, preserving
// order, in a single API call.
func (c *OpenAIClient) EmbedTexts(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("attempt %d: got %d embeddings for %d texts",
				attempt+1, len(resp.Data), len(texts))
			continue
		}

		vectors := make([][]float32, len(resp.Data))
		for i, d := range resp.Data {
			vectors[i] = d.Embedding
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("embedding %d texts failed after %d attempts: %w",
		len(texts), c.maxRetries+1, lastErr)
}

// EmbedText embeds a single text, used for queries.
func (c *OpenAIClient) EmbedText(text string) ([]float32, error) {
	vectors, err := c.EmbedTexts([]string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return vectors[0], nil
}

// GenerateInsight asks the chat model for a one-sentence summary and five
// keywords of a conversation transcript. The response must follow the
// SUMMARY:/KEYWORDS: line format; anything else is a generation failure.
func (c *OpenAIClient) GenerateInsight(transcript string) (models.Insight, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: insightSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: transcript},
			},
			Temperature: 0.2,
			MaxTokens:   250,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return ParseInsightResponse(resp.Choices[0].Message.Content)
	}

	return models.Insight{}, fmt.Errorf("insight generation failed after %d attempts: %w",
		c.maxRetries+1, lastErr)
}
