package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("User", id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
