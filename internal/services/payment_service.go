package services

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"

	"github.com/ecomdev/electronics-shop-api/internal/config"
)

// PaymentService wraps the Stripe client. When no secret key is configured
// (development, tests) payments fall back to an offline pending state.
type PaymentService struct {
	cfg *config.Config
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	if cfg.Payment.StripeSecretKey != "" {
		stripe.Key = cfg.Payment.StripeSecretKey
	}
	return &PaymentService{cfg: cfg}
}

func (s *PaymentService) Enabled() bool {
	return s.cfg.Payment.StripeSecretKey != ""
}

// CreateIntent registers a PaymentIntent for a card payment and returns its
// id for storage as the order's payment reference.
func (s *PaymentService) CreateIntent(amount float64, currency, orderNumber string) (string, error) {
	if !s.Enabled() {
		return "", nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_number", orderNumber)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"payment_intent": intent.ID,
		"order_number":   orderNumber,
	}).Info("Payment intent created")

	return intent.ID, nil
}

// Refund reverses a completed card payment.
func (s *PaymentService) Refund(paymentRef string) error {
	if !s.Enabled() || paymentRef == "" {
		return nil
	}

	_, err := refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(paymentRef),
	})
	if err != nil {
		return fmt.Errorf("failed to refund payment: %w", err)
	}

	logrus.WithField("payment_intent", paymentRef).Info("Payment refunded")

	return nil
}
