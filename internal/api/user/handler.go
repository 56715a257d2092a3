package user

import (
	"context"
	"encoding/json"
	"net/http"

	"gopantry/internal/domain"
	apperror "gopantry/internal/errors"
	"gopantry/internal/pkg/logger"
)

// UserService define o contrato para as operações de registro e login.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, email string, password string) (string, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse é devolvido por um login bem-sucedido.
type TokenResponse struct {
	Token string `json:"token"`
}

// Handler agrupa os handlers de membros da casa.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, data interface{}, err error, successStatus int) {
	w.Header().Set("Content-Type", "application/json")

	if err == nil {
		w.WriteHeader(successStatus)
		if data != nil {
			if encErr := json.NewEncoder(w).Encode(data); encErr != nil {
				h.Logger.Error("Falha ao serializar resposta.", encErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("Erro interno no serviço de usuário:", err)
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// RegisterUserHandler lida com a requisição POST /v1/register.
// @Summary Registra um novo membro da casa
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciais de registro (email e senha)"
// @Success 201 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Router /register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		h.handleServiceResponse(w, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	newUser, err := h.Service.Register(r.Context(), reg)
	// PasswordHash não é serializado (tag json:"-").
	h.handleServiceResponse(w, newUser, err, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /v1/login.
// @Summary Autentica um membro e retorna um JWT
// @Tags users
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		h.handleServiceResponse(w, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	token, err := h.Service.Login(r.Context(), loginReq.Email, loginReq.Password)
	if err != nil {
		h.handleServiceResponse(w, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, TokenResponse{Token: token}, nil, http.StatusOK)
}
