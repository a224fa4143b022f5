package payment

import (
	"context"

	"go-shop/internal/pkg/config"
	"go-shop/internal/pkg/errs"
	"go-shop/internal/usecase/commands"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

var centsPerUnit = decimal.NewFromInt(100)

type StripeGateway struct {
	cfg config.StripeConfig
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	stripe.Key = cfg.SecretKey
	return &StripeGateway{cfg: cfg}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, lines []commands.PaymentLine) (*commands.PaymentSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.cfg.SuccessURL),
		CancelURL:  stripe.String(g.cfg.CancelURL),
	}
	params.Context = ctx

	for _, l := range lines {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(l.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(l.UnitPrice.Mul(centsPerUnit).IntPart()),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(l.Title),
				},
			},
		})
	}

	s, err := session.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create stripe checkout session")
	}

	return &commands.PaymentSession{ID: s.ID, URL: s.URL}, nil
}
