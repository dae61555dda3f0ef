package payout

import (
	"context"

	"github.com/qshala/reimbursement-api/internal/apperrors"
	"github.com/qshala/reimbursement-api/internal/application/port"
	"github.com/qshala/reimbursement-api/internal/config"
	"github.com/qshala/reimbursement-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var oneHundred = decimal.NewFromInt(100)

// Service drives the three-step payout chain: contact, fund account, payout.
// The chain is strictly sequential with no retries and no compensation: a
// failure at any step aborts the request and leaves earlier-created gateway
// resources orphaned. The gateway is the system of record.
type Service struct {
	gateway       port.PayoutGateway
	sourceAccount string
	fixtures      config.PayoutConfig
	logger        *zap.Logger
}

// NewService creates a payout service.
func NewService(gateway port.PayoutGateway, sourceAccount string, fixtures config.PayoutConfig, logger *zap.Logger) *Service {
	return &Service{
		gateway:       gateway,
		sourceAccount: sourceAccount,
		fixtures:      fixtures,
		logger:        logger,
	}
}

// MinorUnits converts a major-unit amount to the gateway's minor-unit
// convention (paise for INR): multiply by 100 and truncate toward zero.
// 149.999 becomes 14999, never 15000.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(oneHundred).IntPart()
}

// CreateReimbursement validates the request and runs the payout chain.
// No gateway call is made unless the amount is strictly positive.
func (s *Service) CreateReimbursement(ctx context.Context, req entity.ReimbursementRequest) (*entity.PayoutReceipt, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidation("amount must be greater than zero")
	}

	minorUnits := MinorUnits(req.Amount)

	s.logger.Info("Starting payout chain",
		zap.String("type", req.Type),
		zap.Int64("amount_minor_units", minorUnits))

	contactID, err := s.gateway.CreateContact(ctx, port.ContactParams{
		Name: s.fixtures.ContactName,
		Type: s.fixtures.ContactType,
	})
	if err != nil {
		s.logger.Error("Contact creation failed", zap.Error(err))
		return nil, err
	}

	// Bank details are demo placeholders from configuration, not user input.
	fundAccountID, err := s.gateway.CreateFundAccount(ctx, port.FundAccountParams{
		ContactID:     contactID,
		HolderName:    s.fixtures.BankHolderName,
		IFSC:          s.fixtures.BankIFSC,
		AccountNumber: s.fixtures.BankAccountNumber,
	})
	if err != nil {
		s.logger.Error("Fund account creation failed",
			zap.String("contact_id", contactID),
			zap.Error(err))
		return nil, err
	}

	details, err := s.gateway.CreatePayout(ctx, port.PayoutParams{
		SourceAccountNumber: s.sourceAccount,
		FundAccountID:       fundAccountID,
		AmountMinorUnits:    minorUnits,
		Currency:            s.fixtures.Currency,
		Mode:                s.fixtures.Mode,
		Purpose:             "payout",
		QueueIfLowBalance:   true,
		Notes: map[string]string{
			"reimbursement_type": req.Type,
			"description":        req.Description,
			"invoice_url":        req.InvoiceURL,
		},
	})
	if err != nil {
		s.logger.Error("Payout creation failed",
			zap.String("fund_account_id", fundAccountID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Payout chain completed",
		zap.String("contact_id", contactID),
		zap.String("fund_account_id", fundAccountID))

	return &entity.PayoutReceipt{
		Status:  "success",
		Message: "Reimbursement created and queued for approval.",
		Details: details,
	}, nil
}
