package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/willjrcristo/go-stripe-pro/internal/domain"
	"github.com/willjrcristo/go-stripe-pro/internal/payments"
	"github.com/willjrcristo/go-stripe-pro/internal/repository"
)

// Erros de negócio do fluxo de compra.
var (
	ErrSessionIDObrigatorio = errors.New("session ID é obrigatório")
	ErrProvedorPagamento    = errors.New("falha ao comunicar com o provedor de pagamento")
)

// ProService orquestra o fluxo de compra do plano Pro: cria a sessão de
// checkout, verifica o pagamento junto à Stripe e mantém o status no repositório.
//
// A Stripe é tratada como a fonte da verdade sobre o pagamento; a única
// escrita durável que este serviço produz é o flag is_pro do usuário.
// A verificação confia no sessionId enviado pelo cliente e nos metadados da
// sessão recuperada — não há confirmação assíncrona via webhook neste escopo.
type ProService struct {
	repo    repository.UsuarioRepository
	gateway payments.Gateway
	siteURL string
}

// NewProService cria uma nova instância do ProService. siteURL é o fallback
// para as URLs de redirecionamento quando a requisição não traz o header Origin.
func NewProService(repo repository.UsuarioRepository, gateway payments.Gateway, siteURL string) *ProService {
	return &ProService{
		repo:    repo,
		gateway: gateway,
		siteURL: siteURL,
	}
}

// CreateCheckoutSession cria a sessão na Stripe e devolve a URL de redirecionamento.
// Nada é gravado no repositório aqui: o usuário só vira Pro depois da verificação.
func (s *ProService) CreateCheckoutSession(ctx context.Context, userID, origin string) (string, error) {
	if origin == "" {
		origin = s.siteURL
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, userID, origin)
	if err != nil {
		slog.Error("Falha ao criar a sessão de checkout na Stripe", "user_id", userID, "error", err)
		return "", fmt.Errorf("%w: %v", ErrProvedorPagamento, err)
	}

	return sess.URL, nil
}

// VerifyPurchase consulta a Stripe sobre a sessão informada e, se o pagamento
// foi concluído, marca o usuário dos metadados como Pro.
//
// A operação é idempotente: re-verificar uma sessão já paga reaplica o mesmo
// upsert e produz o mesmo estado final.
func (s *ProService) VerifyPurchase(ctx context.Context, sessionID string) (domain.ResultadoVerificacao, error) {
	if sessionID == "" {
		return domain.ResultadoVerificacao{}, ErrSessionIDObrigatorio
	}

	sess, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		// Sessão desconhecida/expirada é falha do provedor (500), e não um
		// "pagamento recusado" — essa distinção importa para o cliente.
		slog.Error("Falha ao buscar a sessão na Stripe", "session_id", sessionID, "error", err)
		return domain.ResultadoVerificacao{}, fmt.Errorf("%w: %v", ErrProvedorPagamento, err)
	}

	if !sess.Pago() {
		// Desfecho normal (checkout abandonado, por exemplo): nada é gravado.
		slog.Info("Sessão ainda não paga", "session_id", sessionID, "payment_status", sess.PaymentStatus)
		return domain.ResultadoVerificacao{Success: false}, nil
	}

	userID := sess.UserID
	if userID == "" {
		userID = domain.UsuarioAnonimo
	}

	if err := s.repo.SetPro(ctx, userID); err != nil {
		slog.Error("Falha ao gravar o status Pro", "user_id", userID, "error", err)
		return domain.ResultadoVerificacao{}, err
	}

	slog.Info("Usuário agora é Pro", "user_id", userID, "session_id", sessionID)
	return domain.ResultadoVerificacao{Success: true, IsPro: true}, nil
}

// GetStatus é uma leitura direta do repositório.
func (s *ProService) GetStatus(ctx context.Context, userID string) (bool, error) {
	return s.repo.GetStatus(ctx, userID)
}
