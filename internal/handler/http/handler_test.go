package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/willjrcristo/go-stripe-pro/internal/domain"
	"github.com/willjrcristo/go-stripe-pro/internal/service"
)

// --- Mock da Camada de Serviço ---

// MockProService é uma implementação falsa da interface ProService.
// Nós controlamos o que cada função vai retornar para simular diferentes cenários.
type MockProService struct {
	CreateCheckoutSessionFn func(ctx context.Context, userID, origin string) (string, error)
	VerifyPurchaseFn        func(ctx context.Context, sessionID string) (domain.ResultadoVerificacao, error)
	GetStatusFn             func(ctx context.Context, userID string) (bool, error)
}

func (m *MockProService) CreateCheckoutSession(ctx context.Context, userID, origin string) (string, error) {
	return m.CreateCheckoutSessionFn(ctx, userID, origin)
}

func (m *MockProService) VerifyPurchase(ctx context.Context, sessionID string) (domain.ResultadoVerificacao, error) {
	return m.VerifyPurchaseFn(ctx, sessionID)
}

func (m *MockProService) GetStatus(ctx context.Context, userID string) (bool, error) {
	return m.GetStatusFn(ctx, userID)
}

func newTestRouter(mock *MockProService) chi.Router {
	r := chi.NewRouter()
	NewProHandler(mock).RegisterRoutes(r)
	return r
}

// --- Testes do Handler ---

func TestProHandler_GetUserStatus(t *testing.T) {
	t.Run("sucesso - deve retornar o status do usuário informado", func(t *testing.T) {
		// Arrange
		mockService := &MockProService{
			GetStatusFn: func(ctx context.Context, userID string) (bool, error) {
				assert.Equal(t, "u1", userID)
				return true, nil
			},
		}
		req := httptest.NewRequest("GET", "/user-status", nil)
		req.Header.Set("X-User-Id", "u1")
		rr := httptest.NewRecorder()

		// Act
		newTestRouter(mockService).ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var body map[string]bool
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body["isPro"])
	})

	t.Run("sem header X-User-Id - deve usar o usuário anônimo", func(t *testing.T) {
		mockService := &MockProService{
			GetStatusFn: func(ctx context.Context, userID string) (bool, error) {
				assert.Equal(t, domain.UsuarioAnonimo, userID)
				return false, nil
			},
		}
		req := httptest.NewRequest("GET", "/user-status", nil)
		rr := httptest.NewRecorder()

		newTestRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var body map[string]bool
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.False(t, body["isPro"])
	})

	t.Run("erro - falha do repositório deve retornar 500", func(t *testing.T) {
		mockService := &MockProService{
			GetStatusFn: func(ctx context.Context, userID string) (bool, error) {
				return false, errors.New("banco indisponível")
			},
		}
		req := httptest.NewRequest("GET", "/user-status", nil)
		rr := httptest.NewRecorder()

		newTestRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
	})
}

func TestProHandler_CreateCheckout(t *testing.T) {
	t.Run("sucesso - deve retornar a URL de redirecionamento", func(t *testing.T) {
		mockService := &MockProService{
			CreateCheckoutSessionFn: func(ctx context.Context, userID, origin string) (string, error) {
				assert.Equal(t, "u1", userID)
				assert.Equal(t, "https://game.example.com", origin)
				return "https://checkout.stripe.com/pay/cs_test_1", nil
			},
		}
		req := httptest.NewRequest("POST", "/checkout", nil)
		req.Header.Set("X-User-Id", "u1")
		req.Header.Set("Origin", "https://game.example.com")
		rr := httptest.NewRecorder()

		newTestRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_1", body["url"])
	})

	t.Run("erro - falha do provedor deve retornar 500", func(t *testing.T) {
		mockService := &MockProService{
			CreateCheckoutSessionFn: func(ctx context.Context, userID, origin string) (string, error) {
				return "", service.ErrProvedorPagamento
			},
		}
		req := httptest.NewRequest("POST", "/checkout", nil)
		rr := httptest.NewRecorder()

		newTestRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestProHandler_VerifyPurchase(t *testing.T) {
	t.Run("sucesso - pagamento confirmado deve retornar success e isPro", func(t *testing.T) {
		mockService := &MockProService{
			VerifyPurchaseFn: func(ctx context.Context, sessionID string) (domain.ResultadoVerificacao, error) {
				assert.Equal(t, "cs_test_1", sessionID)
				return domain.ResultadoVerificacao{Success: true, IsPro: true}, nil
			},
		}
		body, _ := json.Marshal(map[string]string{"sessionId": "cs_test_1"})
		req := httptest.NewRequest("POST", "/verify-purchase", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		newTestRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, true, resp["isPro"])
		assert.Equal(t, "Payment verified.", resp["message"])
	})

	t.Run("pagamento não concluído - deve retornar 200 com success false", func(t *testing.T) {
		mockService := &MockProService{
			VerifyPurchaseFn: func(ctx context.Context, sessionID string) (domain.ResultadoVerificacao, error) {
				return domain.ResultadoVerificacao{Success: false}, nil
			},
		}
		body, _ := json.Marshal(map[string]string{"sessionId": "cs_test_2"})
		req := httptest.NewRequest("POST", "/verify-purchase", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()

		newTestRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Payment not successful.", resp["error"])
	})

	t.Run("erro - sessionId ausente deve retornar 400", func(t *testing.T) {
		mockService := &MockProService{
			VerifyPurchaseFn: func(ctx context.Context, sessionID string) (domain.ResultadoVerificacao, error) {
				assert.Empty(t, sessionID)
				return domain.ResultadoVerificacao{}, service.ErrSessionIDObrigatorio
			},
		}
		body, _ := json.Marshal(map[string]string{})
		req := httptest.NewRequest("POST", "/verify-purchase", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()

		newTestRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var resp map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
	})

	t.Run("erro - corpo inválido deve retornar 400 sem chamar o serviço", func(t *testing.T) {
		mockService := &MockProService{
			VerifyPurchaseFn: func(ctx context.Context, sessionID string) (domain.ResultadoVerificacao, error) {
				t.Fatal("o serviço não deveria ser chamado com corpo inválido")
				return domain.ResultadoVerificacao{}, nil
			},
		}
		req := httptest.NewRequest("POST", "/verify-purchase", bytes.NewBufferString("{nao é json"))
		rr := httptest.NewRecorder()

		newTestRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("erro - sessão irrecuperável na Stripe deve retornar 500", func(t *testing.T) {
		mockService := &MockProService{
			VerifyPurchaseFn: func(ctx context.Context, sessionID string) (domain.ResultadoVerificacao, error) {
				return domain.ResultadoVerificacao{}, service.ErrProvedorPagamento
			},
		}
		body, _ := json.Marshal(map[string]string{"sessionId": "cs_unknown"})
		req := httptest.NewRequest("POST", "/verify-purchase", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()

		newTestRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var resp map[string]any
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.NotEmpty(t, resp["error"])
	})
}
