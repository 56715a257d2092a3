package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoPantry.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa entrada malformada ou fora da faixa (nome vazio,
// unidade não selecionada, número negativo ou ilegível, reposição não positiva).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// PreconditionError representa uma regra de negócio que bloqueia uma operação
// bem formada (e.g., consumir um item sem estoque).
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string    { return fmt.Sprintf("Operação rejeitada: %s", e.Msg) }
func (e *PreconditionError) Category() string { return "PRECONDITION_FAILED" }
func (e *PreconditionError) HTTPStatus() int  { return http.StatusUnprocessableEntity } // 422
func (e *PreconditionError) Unwrap() error    { return nil }

// NewPreconditionError cria um novo erro de pré-condição de negócio.
func NewPreconditionError(msg string) AppError {
	return &PreconditionError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio (e.g., recurso duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa credenciais ausentes ou inválidas.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um usuário autenticado sem a permissão necessária.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden } // 403
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um novo erro de autorização.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// UnavailableError indica que o serviço ainda não carregou o estoque inicial.
type UnavailableError struct {
	Msg string
}

func (e *UnavailableError) Error() string    { return fmt.Sprintf("Serviço indisponível: %s", e.Msg) }
func (e *UnavailableError) Category() string { return "NOT_READY" }
func (e *UnavailableError) HTTPStatus() int  { return http.StatusServiceUnavailable } // 503
func (e *UnavailableError) Unwrap() error    { return nil }

// NewUnavailableError cria um erro de serviço não pronto.
func NewUnavailableError(msg string) AppError {
	return &UnavailableError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// AdapterError representa a falha da escrita remota (Persistence Adapter) APÓS a
// mutação em memória já ter sido aplicada. A mutação local não é desfeita:
// o chamador decide se tenta a escrita remota novamente.
type AdapterError struct {
	Msg string
	Err error
}

func (e *AdapterError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Falha na persistência remota: %s", e.Msg)
	}
	return fmt.Sprintf("Falha na persistência remota: %s: %s", e.Msg, e.Err.Error())
}
func (e *AdapterError) Category() string { return "ADAPTER_ERROR" }
func (e *AdapterError) HTTPStatus() int  { return http.StatusBadGateway } // 502
func (e *AdapterError) Unwrap() error    { return e.Err }

// NewAdapterError cria um erro de persistência remota.
func NewAdapterError(msg string, err error) AppError {
	return &AdapterError{Msg: msg, Err: err}
}

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// --- Helpers ---

// IsAdapterError indica se algum erro na cadeia é um AdapterError.
func IsAdapterError(err error) bool {
	var adapterErr *AdapterError
	return stderrors.As(err, &adapterErr)
}

// IsNotFound indica se algum erro na cadeia é um NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return stderrors.As(err, &notFound)
}

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
// Percorre a cadeia de Unwrap, então erros embrulhados com %w mantêm a categoria.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratado como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
