package userservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gopantry/internal/domain"
	apperror "gopantry/internal/errors"
	"gopantry/internal/pkg/logger"
)

// minPasswordLength é o tamanho mínimo aceito para senhas novas.
const minPasswordLength = 8

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
}

// UserService define o serviço de lógica de negócio para os membros da casa.
type UserService struct {
	UserRepo   domain.UserRepository
	TokenSvc   TokenService
	logger     logger.Logger
	adminEmail string
}

// NewService cria uma nova instância do UserService. Quem se registrar com
// adminEmail recebe o papel admin; os demais, member.
func NewService(repo domain.UserRepository, tokenSvc TokenService, logger logger.Logger, adminEmail string) *UserService {
	return &UserService{
		UserRepo:   repo,
		TokenSvc:   tokenSvc,
		logger:     logger,
		adminEmail: normalizeEmail(adminEmail),
	}
}

// Register registra um novo usuário no sistema, gravando apenas o hash da senha.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	email := normalizeEmail(registration.Email)
	if email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}
	if !strings.Contains(email, "@") {
		return domain.User{}, apperror.NewValidationError("Email inválido.")
	}
	if len(registration.Password) < minPasswordLength {
		return domain.User{}, apperror.NewValidationError("A senha deve ter pelo menos 8 caracteres.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	role := domain.RoleMember
	if s.adminEmail != "" && email == s.adminEmail {
		role = domain.RoleAdmin
	}

	now := time.Now().UTC()
	user, err := s.UserRepo.Save(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// ConflictError (e-mail duplicado) e erros internos seguem como vieram do repositório.
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "role": string(user.Role)})
	return user, nil
}

// Login autentica um usuário, verifica a senha e gera um JWT.
func (s *UserService) Login(ctx context.Context, email string, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira 401 para não dar dicas a invasores.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tokenString, err := s.TokenSvc.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"user_id": user.ID})
	return tokenString, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
