package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/tadeyina/stayhaven/internal/domain/providers"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

const (
	defaultAPIBaseURL     = "https://api.stripe.com"
	defaultConnectBaseURL = "https://connect.stripe.com"
)

// StripeAdapter implements PaymentProvider against the Stripe HTTP API.
// Charges are destination charges: the amount is captured on behalf of the
// host's connected account and the platform keeps the application fee.
type StripeAdapter struct {
	secretKey      string
	clientID       string
	apiBaseURL     string
	connectBaseURL string
	client         *http.Client
	breaker        *gobreaker.CircuitBreaker
}

// NewStripeAdapter creates a new Stripe adapter. The HTTP client timeout
// bounds every charge; a timed-out charge surfaces as a payment failure and
// is never retried here.
func NewStripeAdapter(secretKey, clientID string, timeout time.Duration) providers.PaymentProvider {
	return &StripeAdapter{
		secretKey:      secretKey,
		clientID:       clientID,
		apiBaseURL:     defaultAPIBaseURL,
		connectBaseURL: defaultConnectBaseURL,
		client:         &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "stripe",
			Timeout: 30 * time.Second,
		}),
	}
}

type chargeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Charge captures a destination charge routed to the host's connected account
func (a *StripeAdapter) Charge(ctx context.Context, params providers.ChargeParams) (*providers.ChargeResult, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.Amount, 10))
	form.Set("currency", params.Currency)
	form.Set("source", params.Source)
	form.Set("application_fee_amount", strconv.FormatInt(params.ApplicationFee, 10))

	result, err := a.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			a.apiBaseURL+"/v1/charges", strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+a.secretKey)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Stripe-Account", params.DestinationAccount)
		if params.IdempotencyKey != "" {
			req.Header.Set("Idempotency-Key", params.IdempotencyKey)
		}

		resp, err := a.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var body chargeResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("failed to decode charge response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			if body.Error != nil {
				return nil, fmt.Errorf("stripe api error: status %d: %s", resp.StatusCode, body.Error.Message)
			}
			return nil, fmt.Errorf("stripe api error: status %d", resp.StatusCode)
		}

		if body.Status != "succeeded" {
			return nil, fmt.Errorf("charge %s not captured: status %q", body.ID, body.Status)
		}

		return &providers.ChargeResult{ChargeID: body.ID}, nil
	})

	if err != nil {
		return nil, apperrors.NewPaymentFailedError("failed to create charge", err)
	}
	return result.(*providers.ChargeResult), nil
}

type connectResponse struct {
	StripeUserID string `json:"stripe_user_id"`
	Error        string `json:"error_description"`
}

// Connect exchanges a host onboarding authorization code for the connected
// account identity
func (a *StripeAdapter) Connect(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_secret", a.secretKey)
	if a.clientID != "" {
		form.Set("client_id", a.clientID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.connectBaseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", apperrors.NewExternalError("failed to build connect request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", apperrors.NewExternalError("failed to reach payment processor", err)
	}
	defer resp.Body.Close()

	var body connectResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", apperrors.NewExternalError("failed to decode connect response", err)
	}

	if resp.StatusCode != http.StatusOK || body.StripeUserID == "" {
		return "", apperrors.NewExternalError(
			fmt.Sprintf("connect rejected: status %d: %s", resp.StatusCode, body.Error), nil)
	}

	return body.StripeUserID, nil
}
