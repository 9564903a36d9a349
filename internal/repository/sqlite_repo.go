package repository

import (
	"context"
	"database/sql"
	"errors"
)

// sqliteRepository é a implementação durável do UsuarioRepository.
// Ela precisa de uma conexão com o banco de dados (*sql.DB) para funcionar.
type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository é uma "fábrica" que cria uma nova instância do repositório
// SQLite. É assim que injetamos a dependência do banco de dados.
func NewSQLiteRepository(db *sql.DB) UsuarioRepository {
	return &sqliteRepository{
		db: db,
	}
}

func (r *sqliteRepository) GetStatus(ctx context.Context, userID string) (bool, error) {
	row := r.db.QueryRowContext(ctx, "SELECT is_pro FROM usuarios WHERE id = ?", userID)

	var isPro bool
	if err := row.Scan(&isPro); err != nil {
		// Usuário sem registro não é um erro: ele apenas ainda não é Pro.
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return isPro, nil
}

func (r *sqliteRepository) SetPro(ctx context.Context, userID string) error {
	// Upsert: o conflito de chave é resolvido pelo próprio engine, sem lock
	// na aplicação. Repetir a chamada produz o mesmo estado final.
	stmt, err := r.db.PrepareContext(ctx, `
		INSERT INTO usuarios (id, is_pro) VALUES (?, TRUE)
		ON CONFLICT (id) DO UPDATE SET is_pro = TRUE`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, userID)
	return err
}
