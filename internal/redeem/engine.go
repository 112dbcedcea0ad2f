package redeem

import (
	"context"
	"fmt"
	"io"

	"key-redeemer/internal/model"
	"key-redeemer/internal/session"
	"key-redeemer/internal/steam"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("key-redeemer/internal/redeem")

// Registrar submits a key to the store.
type Registrar interface {
	RegisterKey(ctx context.Context, key, sessionID string) (*steam.RegisterKeyResponse, error)
}

// Engine redeems single keys and classifies the store's reply.
type Engine struct {
	registrar Registrar
	out       io.Writer
	quiet     bool
	logger    zerolog.Logger
}

// NewEngine creates a redemption engine. Messages for the user are written
// to out; quiet suppresses the rate-limit message only.
func NewEngine(registrar Registrar, out io.Writer, quiet bool, logger zerolog.Logger) *Engine {
	return &Engine{
		registrar: registrar,
		out:       out,
		quiet:     quiet,
		logger:    logger.With().Str("component", "redemption-engine").Logger(),
	}
}

// Redeem submits entry's key through sess. Failure replies from the store are
// returned as outcomes; only transport and decoding failures return an error.
// An empty key is a no-op reported as redeemed.
func (e *Engine) Redeem(ctx context.Context, sess *session.Session, entry model.CandidateEntry) (model.RedemptionOutcome, error) {
	if entry.Key == "" {
		e.logger.Debug().Str("title", entry.Title).Msg("empty key, nothing to redeem")
		return model.NewOutcome(entry, model.StatusRedeemed), nil
	}

	ctx, span := tracer.Start(ctx, "redeem.Redeem")
	defer span.End()
	span.SetAttributes(attribute.String("redeem.title", entry.Title))

	sessionID, err := sess.SessionID()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing session id")
		return model.RedemptionOutcome{}, err
	}

	resp, err := e.registrar.RegisterKey(ctx, entry.Key, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "register key failed")
		return model.RedemptionOutcome{}, fmt.Errorf("failed to redeem key for %q: %w", entry.Title, err)
	}

	statusCode := Classify(resp)
	span.SetAttributes(attribute.Int("redeem.status_code", statusCode))

	if statusCode == model.StatusRedeemed {
		if resp.PurchaseReceiptInfo != nil {
			for _, item := range resp.PurchaseReceiptInfo.LineItems {
				fmt.Fprintf(e.out, "Redeemed %s\n", item.LineItemDescription)
			}
		}
		e.logger.Info().Str("title", entry.Title).Msg("key redeemed")
		return model.NewOutcome(entry, statusCode), nil
	}

	if statusCode != model.StatusRateLimited || !e.quiet {
		fmt.Fprintln(e.out, Message(statusCode))
	}

	e.logger.Info().
		Str("title", entry.Title).
		Int("status_code", statusCode).
		Msg("key not redeemed")

	return model.NewOutcome(entry, statusCode), nil
}

// Classify maps a registration reply onto a status code. A failure reply
// takes its code from purchase_result_details, then from
// purchase_receipt_info.result_detail, and reports a rate limit when both
// are missing or zero.
func Classify(resp *steam.RegisterKeyResponse) int {
	if resp.Success == 1 {
		return model.StatusRedeemed
	}

	code := 0
	switch {
	case resp.PurchaseResultDetails != nil:
		code = *resp.PurchaseResultDetails
	case resp.PurchaseReceiptInfo != nil && resp.PurchaseReceiptInfo.ResultDetail != nil:
		code = *resp.PurchaseReceiptInfo.ResultDetail
	}

	if code == 0 {
		return model.StatusRateLimited
	}
	return code
}
