package repository

import (
	"context"
	"sync"
)

// memoryRepository guarda o status Pro em um mapa em memória protegido por RWMutex.
//
// É o modo de demonstração: os dados são PERDIDOS quando o processo reinicia.
// Essa perda é uma troca explícita e documentada do modo (STORE_BACKEND=memory),
// não um bug silencioso — em produção use o backend SQLite.
type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]bool
}

// NewMemoryRepository cria o repositório volátil em memória.
func NewMemoryRepository() UsuarioRepository {
	return &memoryRepository{
		users: make(map[string]bool),
	}
}

func (r *memoryRepository) GetStatus(_ context.Context, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[userID], nil
}

func (r *memoryRepository) SetPro(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID] = true
	return nil
}
