package openai

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/qshala/reimbursement-api/internal/apperrors"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Extractor calls the vision chat API to read invoice fields from an image.
// It implements port.InvoiceExtractor and port.ModelLister.
type Extractor struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewExtractor creates a vision extractor.
func NewExtractor(apiKey, model string, temperature float32, maxTokens int, logger *zap.Logger) *Extractor {
	return &Extractor{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// Extract sends the instruction and the image as a multi-part user message
// and returns the model's raw text. An empty or blocked response is a fatal
// upstream error, not a retryable condition.
func (e *Extractor) Extract(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(imageData)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    fmt.Sprintf("data:%s;base64,%s", mimeType, encoded),
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		e.logger.Error("Vision API call failed", zap.Error(err))
		return "", apperrors.NewUpstream("ai", "vision API call failed", err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.NewUpstream("ai", "empty response from model", nil)
	}

	content := resp.Choices[0].Message.Content
	e.logger.Debug("Vision API response received", zap.Int("content_length", len(content)))

	return content, nil
}

// ListModels returns the provider's available model identifiers.
func (e *Extractor) ListModels(ctx context.Context) ([]string, error) {
	resp, err := e.client.ListModels(ctx)
	if err != nil {
		e.logger.Error("Failed to list models", zap.Error(err))
		return nil, apperrors.NewUpstream("ai", "failed to list models", err)
	}

	ids := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}
