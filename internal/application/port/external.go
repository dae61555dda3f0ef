package port

import "context"

// InvoiceExtractor sends an invoice image plus a text instruction to a
// multimodal model and returns the model's raw text response.
type InvoiceExtractor interface {
	Extract(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error)
}

// ModelLister enumerates the AI provider's available model identifiers.
// Backs the diagnostic list-models endpoint.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// ContactParams names the payee entity created as the first step of the
// payout chain.
type ContactParams struct {
	Name string
	Type string
}

// FundAccountParams describes the bank account destination linked to a
// contact. The bank fields are demo placeholders sourced from configuration,
// not from user input.
type FundAccountParams struct {
	ContactID     string
	HolderName    string
	IFSC          string
	AccountNumber string
}

// PayoutParams describes the final disbursement call.
type PayoutParams struct {
	SourceAccountNumber string
	FundAccountID       string
	AmountMinorUnits    int64
	Currency            string
	Mode                string
	Purpose             string
	QueueIfLowBalance   bool
	Notes               map[string]string
}

// PayoutGateway is the three-step payout API: a contact must exist before a
// fund account, and a fund account before a payout. Each call returns the
// created resource's identifier or, for CreatePayout, the full response body.
type PayoutGateway interface {
	CreateContact(ctx context.Context, params ContactParams) (string, error)
	CreateFundAccount(ctx context.Context, params FundAccountParams) (string, error)
	CreatePayout(ctx context.Context, params PayoutParams) (map[string]interface{}, error)
}
