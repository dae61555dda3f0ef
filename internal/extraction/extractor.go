package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/qshala/reimbursement-api/internal/apperrors"
	"github.com/qshala/reimbursement-api/internal/application/port"
	"github.com/qshala/reimbursement-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service orchestrates the invoice extraction flow: store the uploaded image,
// send it to the multimodal model, and normalize the model's JSON output into
// an ExtractedInvoice. Nothing is persisted server-side; the caller holds the
// result and resubmits it to the payout endpoint.
type Service struct {
	store     port.BlobStore
	extractor port.InvoiceExtractor
	logger    *zap.Logger
}

// NewService creates an extraction service.
func NewService(store port.BlobStore, extractor port.InvoiceExtractor, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		extractor: extractor,
		logger:    logger,
	}
}

// rawInvoice is the shape expected inside the model's response. Amount
// decodes from either a JSON number or a quoted string; missing keys default
// to zero values, mistyped keys fail the parse.
type rawInvoice struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ExtractInvoice uploads the image to the blob store, runs AI field
// extraction, and returns the normalized record with the store URL injected
// under invoice_url.
func (s *Service) ExtractInvoice(ctx context.Context, data []byte, filename, mimeType string) (*entity.ExtractedInvoice, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, apperrors.NewValidation("file provided is not an image")
	}

	url, err := s.store.Store(ctx, data, filename, mimeType)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice uploaded to blob store",
		zap.String("filename", filename),
		zap.String("url", url))

	// Sanity-decode before spending an inference call on a broken image.
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	s.logger.Debug("Image decoded",
		zap.String("format", format),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height))

	raw, err := s.extractor.Extract(ctx, buildPrompt(), data, mimeType)
	if err != nil {
		return nil, err
	}

	parsed, err := parseModelOutput(raw)
	if err != nil {
		s.logger.Error("Failed to parse model output",
			zap.String("raw", raw),
			zap.Error(err))
		return nil, apperrors.NewUpstream("ai", "model returned malformed JSON", err)
	}

	// The store URL always wins, even if the model emitted its own.
	return &entity.ExtractedInvoice{
		Type:        parsed.Type,
		Amount:      parsed.Amount,
		Description: parsed.Description,
		InvoiceURL:  url,
	}, nil
}

// parseModelOutput strips markdown code fences and parses the remaining text
// as JSON. Malformed JSON fails loudly; there are no repair heuristics.
func parseModelOutput(text string) (*rawInvoice, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var parsed rawInvoice
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse extraction result: %w", err)
	}
	return &parsed, nil
}

// buildPrompt assembles the extraction instruction: the fixed category list,
// a directive to pick the single best category, a plain-number total, and a
// short description.
func buildPrompt() string {
	var sb strings.Builder
	sb.WriteString("Analyze the invoice image and extract key details.\n")
	sb.WriteString("Reimbursement Types: ")
	sb.WriteString(strings.Join(entity.ReimbursementTypes, ", "))
	sb.WriteString("\n")
	sb.WriteString("Choose the single best matching type from the list above.\n")
	sb.WriteString("Extract the total amount as a plain number with no currency symbols, ")
	sb.WriteString("preferring labels like \"Total\", \"Grand Total\" or \"Amount Due\"; ")
	sb.WriteString("use 0 if no total can be found.\n")
	sb.WriteString("Write a short description, naming the vendor if visible.\n")
	sb.WriteString("Return ONLY a clean JSON object with keys \"type\", \"amount\" and \"description\".")
	return sb.String()
}
