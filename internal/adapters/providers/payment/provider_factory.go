package payment

import (
	"time"

	"github.com/tadeyina/stayhaven/internal/domain/providers"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
	"github.com/tadeyina/stayhaven/pkg/config"
)

// NewPaymentProvider selects the payment implementation from configuration.
// Without a secret key the mock adapter is used so the server can run locally
// without touching the processor.
func NewPaymentProvider(cfg config.StripeConfig) providers.PaymentProvider {
	logger := observability.GetLogger()

	if cfg.SecretKey == "" {
		logger.Warn().Msg("no payment secret key configured, using mock payment provider")
		return NewMockPaymentAdapter()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	logger.Info().Dur("timeout", timeout).Msg("using stripe payment provider")
	return NewStripeAdapter(cfg.SecretKey, cfg.ClientID, timeout)
}
