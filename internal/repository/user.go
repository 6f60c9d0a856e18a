package repository

import (
	"context"

	"github.com/pkg/errors"

	"github.com/deppfellow/miwebservice/internal/database"
	"github.com/deppfellow/miwebservice/internal/model/user"
)

// userColumns never includes password: it is write-only.
const userColumns = `id_usuario, nombre, correo, fecha_reg`

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a user and returns the store-assigned id.
func (r *UserRepository) CreateUser(ctx context.Context, q database.Querier, payload *user.CreateUserRequest) (int64, error) {
	var id int64
	err := q.GetContext(ctx, &id,
		`INSERT INTO usuarios (nombre, correo, password) VALUES (?, ?, ?) RETURNING id_usuario`,
		payload.Nombre, payload.Correo, payload.Password,
	)
	if err != nil {
		return 0, errors.Wrap(err, "table:usuarios:insert")
	}
	return id, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, q database.Querier, id int64) (*user.User, error) {
	var u user.User
	err := q.GetContext(ctx, &u, `SELECT `+userColumns+` FROM usuarios WHERE id_usuario = ?`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "table:usuarios:get %d", id)
	}
	return &u, nil
}

// GetUsers returns every user in the store's natural order.
func (r *UserRepository) GetUsers(ctx context.Context, q database.Querier) ([]user.User, error) {
	users := []user.User{}
	if err := q.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM usuarios`); err != nil {
		return nil, errors.Wrap(err, "table:usuarios:list")
	}
	return users, nil
}
