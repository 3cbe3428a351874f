// Package stripepay adapta Stripe Checkout como gateway de pagos para los
// upgrades de paquete.
package stripepay

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/assetverse/assetverse-api/internal/application/billing"
)

var _ billing.PaymentGateway = (*Gateway)(nil)

// Clave de metadata con el paquete elegido, para recuperarla al verificar.
const metadataPackageID = "package_id"

// Gateway implementa billing.PaymentGateway sobre la API de Stripe.
type Gateway struct{}

// NewGateway fija la clave secreta global del SDK y construye el adaptador.
func NewGateway(secretKey string) *Gateway {
	stripe.Key = secretKey
	return &Gateway{}
}

// CreateCheckoutSession abre una sesión de Checkout hospedado en modo pago
// único, con el email del tenant y una sola línea por el paquete.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, in billing.CreateSessionInput) (*billing.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:      stripe.String(in.CustomerEmail),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.ProductName),
					},
					UnitAmount: stripe.Int64(in.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	params.AddMetadata(metadataPackageID, in.PackageID)

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("crear sesión de checkout: %w", err)
	}
	return toCheckoutSession(s), nil
}

// RetrieveSession recupera una sesión por id para verificar el pago.
func (g *Gateway) RetrieveSession(ctx context.Context, sessionID string) (*billing.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	s, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("recuperar sesión de checkout: %w", err)
	}
	return toCheckoutSession(s), nil
}

func toCheckoutSession(s *stripe.CheckoutSession) *billing.CheckoutSession {
	email := s.CustomerEmail
	if email == "" && s.CustomerDetails != nil {
		email = s.CustomerDetails.Email
	}
	return &billing.CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		Paid:          s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		CustomerEmail: email,
		AmountCents:   s.AmountTotal,
		PackageID:     s.Metadata[metadataPackageID],
	}
}
