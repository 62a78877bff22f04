package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

var minorUnitsPerUnit = decimal.NewFromInt(100)

type StripePaymentProvider struct {
	currency      stripe.Currency
	paymentMethod string

	newPaymentIntent func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// NewStripePaymentProvider charges accounts through Stripe PaymentIntents.
// stripe.Key must be set before any payment is made.
func NewStripePaymentProvider(currency, paymentMethod string) *StripePaymentProvider {
	return &StripePaymentProvider{
		currency:         stripe.Currency(currency),
		paymentMethod:    paymentMethod,
		newPaymentIntent: paymentintent.New,
	}
}

func (s *StripePaymentProvider) MakePayment(ctx context.Context, accountID int64, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount %d is negative", domain.ErrPaymentDeclined, amount)
	}

	if amount == 0 {
		return nil
	}

	accountRef := strconv.FormatInt(accountID, 10)

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(toMinorUnits(amount)),
		Currency:      stripe.String(string(s.currency)),
		PaymentMethod: stripe.String(s.paymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
		Description: stripe.String(fmt.Sprintf("🎬 Cinema tickets for account %s", accountRef)),
		Metadata: map[string]string{
			"account_id": accountRef,
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.New().String())

	intent, err := s.newPaymentIntent(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return fmt.Errorf("%w: %s", domain.ErrPaymentDeclined, stripeErr.Msg)
		}

		return fmt.Errorf("create payment intent: %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("%w: payment intent %s is %s", domain.ErrPaymentDeclined, intent.ID, intent.Status)
	}

	return nil
}

func toMinorUnits(amount int) int64 {
	return decimal.NewFromInt(int64(amount)).Mul(minorUnitsPerUnit).IntPart()
}
