package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"

	"github.com/willjrcristo/go-stripe-pro/internal/domain"
)

// Gateway abstrai o provedor de pagamento. O serviço de compra depende desta
// interface, não da Stripe diretamente — o que nos permite simular o provedor
// nos testes sem tocar a rede.
type Gateway interface {
	// CreateCheckoutSession cria uma sessão de checkout para o item fixo do
	// catálogo, gravando o userID nos metadados da sessão.
	CreateCheckoutSession(ctx context.Context, userID, origin string) (*domain.SessaoCheckout, error)

	// RetrieveSession busca uma sessão existente pelo identificador.
	RetrieveSession(ctx context.Context, sessionID string) (*domain.SessaoCheckout, error)
}

// CatalogItem descreve o único produto vendido: o desbloqueio do plano Pro.
type CatalogItem struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
}

type stripeGateway struct {
	item    CatalogItem
	timeout time.Duration
}

// NewStripeGateway configura a chave global da Stripe e devolve o gateway real.
func NewStripeGateway(secretKey string, item CatalogItem, timeout time.Duration) Gateway {
	stripe.Key = secretKey
	return &stripeGateway{
		item:    item,
		timeout: timeout,
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, userID, origin string) (*domain.SessaoCheckout, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		// Pagamento único — não é uma assinatura recorrente.
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		// O placeholder {CHECKOUT_SESSION_ID} é preenchido pela própria Stripe
		// no redirecionamento de sucesso; o frontend o devolve na verificação.
		SuccessURL: stripe.String(origin + "/?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(origin + "/"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.item.Currency),
					UnitAmount: stripe.Int64(g.item.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(g.item.Name),
						Description: stripe.String(g.item.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	// O userId nos metadados é o que liga a sessão de volta ao usuário na
	// verificação, sem precisar de nenhuma consulta intermediária.
	params.AddMetadata("userId", userID)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("criar sessão de checkout na stripe: %w", err)
	}

	return fromStripeSession(sess), nil
}

func (g *stripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*domain.SessaoCheckout, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("buscar sessão %s na stripe: %w", sessionID, err)
	}

	return fromStripeSession(sess), nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *domain.SessaoCheckout {
	return &domain.SessaoCheckout{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		UserID:        sess.Metadata["userId"],
	}
}
