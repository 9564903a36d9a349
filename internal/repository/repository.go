package repository

import "context"

// UsuarioRepository define a interface para a persistência do status Pro.
// Usar uma interface nos permite 'mockar' o repositório em testes e trocar a
// implementação (SQLite durável ou mapa em memória) na configuração do processo.
//
// Contrato que toda implementação deve honrar:
//   - GetStatus nunca falha para identificadores desconhecidos — ausência de
//     registro é um estado normal e significa "não é Pro".
//   - SetPro tem semântica de upsert: é seguro repetir a chamada para o mesmo
//     identificador, e chamadas concorrentes para a mesma chave convergem para
//     is_pro = true.
type UsuarioRepository interface {
	GetStatus(ctx context.Context, userID string) (bool, error)
	SetPro(ctx context.Context, userID string) error
}
