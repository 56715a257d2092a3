package item

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gopantry/internal/domain"
	apperror "gopantry/internal/errors"
	"gopantry/internal/pkg/export"
	"gopantry/internal/pkg/logger"
	"gopantry/internal/service/itemservice"
)

// ItemService define o contrato da Mutation Façade usado pelos handlers.
type ItemService interface {
	List(ctx context.Context) ([]domain.ItemView, error)
	Get(ctx context.Context, id string) (domain.ItemView, error)
	AddItem(ctx context.Context, form domain.ItemForm) (itemservice.Outcome, error)
	ConsumeOne(ctx context.Context, id string) (itemservice.Outcome, error)
	Restock(ctx context.Context, id string, amount float64) (itemservice.Outcome, error)
	SetQuantity(ctx context.Context, id string, quantity float64) (itemservice.Outcome, error)
	Delete(ctx context.Context, id string) (itemservice.Outcome, error)
	Sync(ctx context.Context, id string) (itemservice.Outcome, error)
}

// AmountRequest é o corpo de restock e restock-draft.
type AmountRequest struct {
	Amount domain.FormValue `json:"amount" swaggertype:"string" example:"2.5"`
}

// QuantityRequest é o corpo de PUT /items/{id}/quantity.
type QuantityRequest struct {
	Quantity domain.FormValue `json:"quantity" swaggertype:"string" example:"5"`
}

// RestockDraftResponse devolve o rascunho de reposição corrente.
type RestockDraftResponse struct {
	ItemID string `json:"item_id"`
	Amount string `json:"amount" example:"1"`
}

// UnitsResponse lista as unidades sugeridas no cadastro.
type UnitsResponse struct {
	Units  []string `json:"units"`
	Custom string   `json:"custom"`
}

// Handler agrupa os handlers do estoque.
type Handler struct {
	Service ItemService
	Drafts  *RestockDrafts
	Logger  logger.Logger
	now     func() time.Time
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ItemService, drafts *RestockDrafts, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Drafts:  drafts,
		Logger:  log,
		now:     time.Now,
	}
}

// handleServiceResponse escreve data com successStatus, ou o erro mapeado
// para domain.ErrorResponse.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		h.writeJSON(w, successStatus, data)
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error(fmt.Sprintf("Erro no serviço de itens (%s %s):", r.Method, r.URL.Path), err)
	}
	h.writeJSON(w, status, domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// handleOutcome responde a uma intenção. Quando só a escrita remota falhou,
// a resposta é 502 mas carrega o item já alterado em memória.
func (h *Handler) handleOutcome(w http.ResponseWriter, r *http.Request, out itemservice.Outcome, err error, successStatus int) {
	if err == nil {
		view := domain.NewItemView(out.Item)
		h.writeJSON(w, successStatus, domain.OutcomeResponse{Message: out.Message, Item: &view})
		return
	}

	if apperror.IsAdapterError(err) {
		status, category, message := apperror.MapToHTTPStatus(err)
		h.Logger.Warn("Intenção aplicada em memória; escrita remota falhou.", map[string]interface{}{
			"path":    r.URL.Path,
			"item_id": out.Item.ID,
		})
		view := domain.NewItemView(out.Item)
		h.writeJSON(w, status, domain.OutcomeResponse{
			Code:     status,
			Category: category,
			Message:  fmt.Sprintf("%s. %s", out.Message, message),
			Item:     &view,
		})
		return
	}

	h.handleServiceResponse(w, r, nil, err, successStatus)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("Falha ao serializar resposta.", err)
	}
}

// decodeBody decodifica o JSON do corpo. Corpo vazio é aceito quando optional.
func decodeBody(r *http.Request, dst interface{}, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	if err != nil {
		return apperror.NewValidationError("Payload JSON inválido.")
	}
	return nil
}

// ListItemsHandler lida com GET /v1/items.
// @Summary Lista o estoque
// @Description Itens na ordem da coleção, com o status derivado no momento da leitura.
// @Tags items
// @Produce json
// @Success 200 {array} domain.ItemView
// @Failure 503 {object} domain.ErrorResponse "Estoque ainda não carregado"
// @Security BearerAuth
// @Router /items [get]
func (h *Handler) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	h.handleServiceResponse(w, r, items, err, http.StatusOK)
}

// GetItemHandler lida com GET /v1/items/{id}.
// @Summary Busca um item
// @Tags items
// @Produce json
// @Param id path string true "ID do item"
// @Success 200 {object} domain.ItemView
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /items/{id} [get]
func (h *Handler) GetItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	h.handleServiceResponse(w, r, item, err, http.StatusOK)
}

// CreateItemHandler lida com POST /v1/items.
// @Summary Cadastra um item
// @Description Quantidade e limite chegam como texto; limite vazio usa 5.
// @Tags items
// @Accept json
// @Produce json
// @Param item body domain.ItemForm true "Formulário de cadastro"
// @Success 201 {object} domain.OutcomeResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 502 {object} domain.OutcomeResponse "Item criado em memória; escrita remota falhou"
// @Security BearerAuth
// @Router /items [post]
func (h *Handler) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var form domain.ItemForm
	if err := decodeBody(r, &form, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	out, err := h.Service.AddItem(r.Context(), form)
	h.handleOutcome(w, r, out, err, http.StatusCreated)
}

// ConsumeItemHandler lida com POST /v1/items/{id}/consume.
// @Summary Usa uma unidade do item
// @Tags items
// @Produce json
// @Param id path string true "ID do item"
// @Success 200 {object} domain.OutcomeResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse "Item sem estoque"
// @Failure 502 {object} domain.OutcomeResponse
// @Security BearerAuth
// @Router /items/{id}/consume [post]
func (h *Handler) ConsumeItemHandler(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.ConsumeOne(r.Context(), chi.URLParam(r, "id"))
	h.handleOutcome(w, r, out, err, http.StatusOK)
}

// SetRestockDraftHandler lida com PUT /v1/items/{id}/restock-draft.
// @Summary Guarda o texto pendente de reposição
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "ID do item"
// @Param draft body AmountRequest true "Texto digitado"
// @Success 200 {object} RestockDraftResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /items/{id}/restock-draft [put]
func (h *Handler) SetRestockDraftHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Service.Get(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	var req AmountRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.Drafts.Set(id, string(req.Amount))
	h.handleServiceResponse(w, r, RestockDraftResponse{ItemID: id, Amount: h.Drafts.Get(id)}, nil, http.StatusOK)
}

// RestockItemHandler lida com POST /v1/items/{id}/restock.
// @Summary Repõe o item
// @Description Usa amount do corpo; sem corpo, o rascunho guardado; sem rascunho, "1".
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "ID do item"
// @Param restock body AmountRequest false "Quantidade a somar"
// @Success 200 {object} domain.OutcomeResponse
// @Failure 400 {object} domain.ErrorResponse "Quantidade não positiva ou ilegível"
// @Failure 404 {object} domain.ErrorResponse
// @Failure 502 {object} domain.OutcomeResponse
// @Security BearerAuth
// @Router /items/{id}/restock [post]
func (h *Handler) RestockItemHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req AmountRequest
	if err := decodeBody(r, &req, true); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	text := string(req.Amount)
	if text == "" {
		text = h.Drafts.Get(id)
	}

	amount, err := itemservice.ParseNumber("amount", text)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	out, err := h.Service.Restock(r.Context(), id, amount)
	if err == nil || apperror.IsAdapterError(err) {
		h.Drafts.Clear(id)
	}
	h.handleOutcome(w, r, out, err, http.StatusOK)
}

// SetQuantityHandler lida com PUT /v1/items/{id}/quantity.
// @Summary Define a quantidade do item
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "ID do item"
// @Param quantity body QuantityRequest true "Nova quantidade (>= 0)"
// @Success 200 {object} domain.OutcomeResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 502 {object} domain.OutcomeResponse
// @Security BearerAuth
// @Router /items/{id}/quantity [put]
func (h *Handler) SetQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req QuantityRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	quantity, err := itemservice.ParseNumber("quantity", string(req.Quantity))
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	out, err := h.Service.SetQuantity(r.Context(), chi.URLParam(r, "id"), quantity)
	h.handleOutcome(w, r, out, err, http.StatusOK)
}

// SyncItemHandler lida com POST /v1/items/{id}/sync.
// @Summary Reenvia o item ao armazenamento remoto
// @Tags items
// @Produce json
// @Param id path string true "ID do item"
// @Success 200 {object} domain.OutcomeResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 502 {object} domain.OutcomeResponse
// @Security BearerAuth
// @Router /items/{id}/sync [post]
func (h *Handler) SyncItemHandler(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.Sync(r.Context(), chi.URLParam(r, "id"))
	h.handleOutcome(w, r, out, err, http.StatusOK)
}

// DeleteItemHandler lida com DELETE /v1/items/{id}.
// @Summary Remove o item
// @Tags items
// @Produce json
// @Param id path string true "ID do item"
// @Success 200 {object} domain.OutcomeResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 502 {object} domain.OutcomeResponse
// @Security BearerAuth
// @Router /items/{id} [delete]
func (h *Handler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	out, err := h.Service.Delete(r.Context(), id)
	if err == nil || apperror.IsAdapterError(err) {
		h.Drafts.Clear(id)
	}
	h.handleOutcome(w, r, out, err, http.StatusOK)
}

// ExportItemsHandler lida com GET /v1/items/export.
// @Summary Exporta o estoque em XLSX
// @Tags items
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 503 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /items/export [get]
func (h *Handler) ExportItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	data, err := export.WriteXLSX(items)
	if err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewInternalError("Falha ao gerar a planilha.", err), http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(h.now())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.Error("Falha ao enviar a planilha.", err)
	}
}

// ListUnitsHandler lida com GET /v1/units.
// @Summary Unidades sugeridas para o cadastro
// @Tags items
// @Produce json
// @Success 200 {object} UnitsResponse
// @Router /units [get]
func (h *Handler) ListUnitsHandler(w http.ResponseWriter, r *http.Request) {
	h.handleServiceResponse(w, r, UnitsResponse{Units: domain.SuggestedUnits, Custom: domain.CustomUnit}, nil, http.StatusOK)
}
