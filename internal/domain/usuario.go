package domain

// UsuarioAnonimo é o identificador usado quando o cliente não envia o header X-User-Id.
const UsuarioAnonimo = "anonymous_user"

// Usuario representa o registro de direito de acesso (entitlement) de um usuário.
// O identificador é opaco e fornecido pelo próprio cliente; um usuário
// desconhecido simplesmente não possui registro — e isso equivale a IsPro = false.
type Usuario struct {
	ID    string `json:"id"`
	IsPro bool   `json:"isPro"`
}

// SessaoCheckout é a nossa visão de uma sessão de checkout do provedor de pagamento.
// A sessão pertence à Stripe, não a nós: nunca a persistimos, ela é usada uma
// única vez durante a verificação do pagamento.
type SessaoCheckout struct {
	ID            string
	URL           string
	PaymentStatus string
	// UserID vem de metadata.userId, gravado por nós na criação da sessão.
	UserID string
}

// StatusPago é o único valor de PaymentStatus que confirma o pagamento.
const StatusPago = "paid"

// Pago informa se a sessão foi efetivamente paga.
func (s *SessaoCheckout) Pago() bool {
	return s.PaymentStatus == StatusPago
}

// ResultadoVerificacao é o desfecho de uma verificação de compra.
// Success = false NÃO é um erro: significa apenas que o pagamento ainda não
// foi concluído (ex: o usuário abandonou o checkout).
type ResultadoVerificacao struct {
	Success bool
	IsPro   bool
}
