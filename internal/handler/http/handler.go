package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/willjrcristo/go-stripe-pro/internal/domain"
	"github.com/willjrcristo/go-stripe-pro/internal/service"
)

// Para facilitar os testes, definimos a interface que o nosso serviço deve
// satisfazer. O handler depende desta interface, não da implementação concreta.
type ProService interface {
	CreateCheckoutSession(ctx context.Context, userID, origin string) (string, error)
	VerifyPurchase(ctx context.Context, sessionID string) (domain.ResultadoVerificacao, error)
	GetStatus(ctx context.Context, userID string) (bool, error)
}

// ProHandler lida com as requisições HTTP do fluxo de compra do plano Pro.
type ProHandler struct {
	service ProService
}

// NewProHandler cria uma nova instância do ProHandler.
func NewProHandler(s ProService) *ProHandler {
	return &ProHandler{
		service: s,
	}
}

// RegisterRoutes registra as rotas deste handler no roteador.
// As rotas vivem na raiz porque o frontend do jogo as chama por caminho fixo.
func (h *ProHandler) RegisterRoutes(r chi.Router) {
	r.Get("/user-status", h.GetUserStatus)       // GET  /user-status
	r.Post("/checkout", h.CreateCheckout)        // POST /checkout
	r.Post("/verify-purchase", h.VerifyPurchase) // POST /verify-purchase
}

// userIDFromRequest extrai o identificador do usuário do header X-User-Id.
// Requisição sem o header é tratada como o usuário anônimo, nunca como erro.
func userIDFromRequest(r *http.Request) string {
	if id := r.Header.Get("X-User-Id"); id != "" {
		return id
	}
	return domain.UsuarioAnonimo
}

// @Summary      Consulta o status Pro do usuário
// @Description  Lê o flag Pro do usuário identificado pelo header X-User-Id
// @Tags         pro
// @Produce      json
// @Param        X-User-Id  header    string  false  "Identificador opaco do usuário"
// @Success      200        {object}  map[string]bool
// @Failure      500        {object}  map[string]string
// @Router       /user-status [get]
func (h *ProHandler) GetUserStatus(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)

	isPro, err := h.service.GetStatus(r.Context(), userID)
	if err != nil {
		slog.Error("Falha ao consultar o status do usuário", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error during status fetch.")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"isPro": isPro})
}

// @Summary      Inicia uma sessão de checkout na Stripe
// @Description  Cria a sessão de pagamento do plano Pro e devolve a URL de redirecionamento
// @Tags         pro
// @Produce      json
// @Param        X-User-Id  header    string  false  "Identificador opaco do usuário"
// @Success      200        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /checkout [post]
func (h *ProHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	origin := r.Header.Get("Origin")

	checkoutURL, err := h.service.CreateCheckoutSession(r.Context(), userID, origin)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error creating checkout session.")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"url": checkoutURL})
}

type verifyPurchaseRequest struct {
	SessionID string `json:"sessionId"`
}

// @Summary      Verifica uma compra concluída
// @Description  Consulta a sessão na Stripe e, se paga, marca o usuário como Pro
// @Tags         pro
// @Accept       json
// @Produce      json
// @Param        body  body      verifyPurchaseRequest  true  "Identificador da sessão de checkout"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /verify-purchase [post]
func (h *ProHandler) VerifyPurchase(w http.ResponseWriter, r *http.Request) {
	var req verifyPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Session ID is required.",
		})
		return
	}

	result, err := h.service.VerifyPurchase(r.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionIDObrigatorio) {
			respondWithJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   "Session ID is required.",
			})
			return
		}
		// Sessão irrecuperável ou falha do repositório: erro de servidor,
		// distinto de "pagamento não concluído".
		respondWithJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Invalid session ID or server error.",
		})
		return
	}

	if !result.Success {
		// Pagamento não concluído é um desfecho normal — HTTP 200.
		respondWithJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   "Payment not successful.",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"isPro":   result.IsPro,
		"message": "Payment verified.",
	})
}

// --- FUNÇÕES AUXILIARES ---

func respondWithError(w http.ResponseWriter, code int, message string) {
	slog.Error("API Error", "code", code, "message", message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
