package domain

import (
	"context"
	"time"
)

// User representa um membro da casa com acesso ao estoque da cozinha.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"  // gerencia tudo, inclusive sincronização manual
	RoleMember UserRole = "member" // adiciona, consome, repõe e remove itens
	RoleGuest  UserRole = "guest"  // somente leitura
)

// Valid indica se o papel é um dos conhecidos.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleGuest:
		return true
	}
	return false
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Email    string `json:"email" example:"cook@example.com"`
	Password string `json:"password" example:"tomato-sauce"`
}

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	Save(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}
