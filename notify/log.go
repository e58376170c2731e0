package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Log only writes notifications to the logger. Used when no provider is configured.
type Log struct {
	log zerolog.Logger
}

var _ Gateway = (*Log)(nil)

func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log.With().Str("component", "notify").Logger()}
}

func (l *Log) SendCustomerConfirmation(_ context.Context, n OrderNotice) error {
	l.log.Info().Str("order_id", n.OrderID).Str("to", n.CustomerEmail).Str("total", Rupees(n.Total)).Msg("customer confirmation")
	return nil
}

func (l *Log) SendOperatorAlert(_ context.Context, n OrderNotice) error {
	l.log.Info().Str("order_id", n.OrderID).Str("customer", n.CustomerName).Str("payment", n.PaymentMethod).Msg("operator alert")
	return nil
}

func (l *Log) SendLeadAlert(_ context.Context, n LeadNotice) error {
	l.log.Info().Str("name", n.Name).Str("phone", n.Phone).Str("source", n.Source).Msg("lead alert")
	return nil
}

func (l *Log) SendVerificationCode(_ context.Context, n CodeNotice) error {
	// the code itself only appears when debugging
	l.log.Info().Str("to", n.Email).Msg("verification code issued")
	l.log.Debug().Str("to", n.Email).Str("code", n.Code).Msg("verification code")
	return nil
}
