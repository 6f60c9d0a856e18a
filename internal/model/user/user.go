// Package user holds the user entity and its request payloads.
package user

import (
	"github.com/deppfellow/miwebservice/internal/model"
	"github.com/deppfellow/miwebservice/internal/validation"
)

// User is a row of the usuarios table.
//
// Password is stored verbatim and never serialized.
type User struct {
	ID       int64           `json:"id_usuario" db:"id_usuario"`
	Nombre   string          `json:"nombre" db:"nombre"`
	Correo   string          `json:"correo" db:"correo"`
	Password string          `json:"-" db:"password"`
	FechaReg model.Timestamp `json:"fecha_reg" db:"fecha_reg"`
}

// Response is the API representation of a user.
type Response struct {
	ID       int64           `json:"id_usuario"`
	Nombre   string          `json:"nombre"`
	Correo   string          `json:"correo"`
	FechaReg model.Timestamp `json:"fecha_reg"`
}

// ToResponse projects the entity onto its public shape.
func (u *User) ToResponse() Response {
	return Response{
		ID:       u.ID,
		Nombre:   u.Nombre,
		Correo:   u.Correo,
		FechaReg: u.FechaReg,
	}
}

// ----------------------------------------------------------------------------

type CreateUserRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=100"`
	Correo   string `json:"correo" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=100"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Struct(r)
}
