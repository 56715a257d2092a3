package itemservice

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gopantry/internal/domain"
	apperror "gopantry/internal/errors"
	"gopantry/internal/pkg/logger"
	"gopantry/internal/store/itemstore"
)

// Nomes das intenções usados em logs e métricas.
const (
	IntentAdd         = "add"
	IntentConsume     = "consume"
	IntentRestock     = "restock"
	IntentSetQuantity = "set_quantity"
	IntentDelete      = "delete"
	IntentSync        = "sync"
)

// ItemRepository é o contrato do Persistence Adapter (armazenamento durável remoto).
type ItemRepository interface {
	Insert(ctx context.Context, item domain.Item) (domain.Item, error)
	SelectAll(ctx context.Context) ([]domain.Item, error) // ordenado por updated_at DESC
	UpdateQuantity(ctx context.Context, id string, quantity float64, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// Recorder recebe os eventos contabilizados pelas métricas.
type Recorder interface {
	IntentHandled(intent, outcome string)
	AdapterFailed(operation string)
}

// Notifier é avisado quando uma intenção leva o item a uma faixa pior (LOW ou OUT_OF_STOCK).
type Notifier interface {
	NotifyStockChange(ctx context.Context, item domain.Item, status domain.StockStatus) error
}

// Outcome é o resultado de uma intenção: o item resultante, o status derivado
// e a mensagem legível de confirmação.
type Outcome struct {
	Item    domain.Item
	Status  domain.StockStatus
	Message string
}

// Service é a Mutation Façade: traduz intenções do usuário em operações
// validadas no Item Store e emite a chamada correspondente ao Persistence Adapter.
type Service struct {
	store    *itemstore.Store
	repo     ItemRepository
	logger   logger.Logger
	recorder Recorder
	notifier Notifier

	loadMu sync.Mutex
	ready  atomic.Bool
}

// Option configura colaboradores opcionais do Service.
type Option func(*Service)

// WithRecorder liga as métricas.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithNotifier liga os alertas de estoque baixo.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// NewService cria e retorna uma nova instância do Serviço de Itens.
func NewService(store *itemstore.Store, repo ItemRepository, logger logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		repo:     repo,
		logger:   logger,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load busca a coleção completa no Persistence Adapter uma única vez e popula o
// Store. Até Load ter sucesso, Ready é falso e as intenções são recusadas.
func (s *Service) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.ready.Load() {
		return nil
	}

	items, err := s.repo.SelectAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao carregar o estoque inicial.", err)
		s.recorder.AdapterFailed("select_all")
		return apperror.NewAdapterError("falha ao carregar o estoque inicial", err)
	}
	if err := s.store.Replace(items); err != nil {
		s.logger.Error("Carga inicial rejeitada pelo Item Store.", err)
		return err
	}

	s.ready.Store(true)
	s.logger.Info("Estoque inicial carregado.", map[string]interface{}{"count": len(items)})
	return nil
}

// Ready indica se a carga inicial já foi concluída.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// List devolve todos os itens, na ordem da coleção, com o status recalculado.
func (s *Service) List(ctx context.Context) ([]domain.ItemView, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}
	items := s.store.List()
	views := make([]domain.ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, domain.NewItemView(it))
	}
	return views, nil
}

// Get devolve um item com o status recalculado.
func (s *Service) Get(ctx context.Context, id string) (domain.ItemView, error) {
	if err := s.checkReady(); err != nil {
		return domain.ItemView{}, err
	}
	item, err := s.store.Get(id)
	if err != nil {
		return domain.ItemView{}, err
	}
	return domain.NewItemView(item), nil
}

// AddItem valida o formulário de cadastro e cria o item.
func (s *Service) AddItem(ctx context.Context, form domain.ItemForm) (Outcome, error) {
	s.logger.Debug("Iniciando cadastro de item no serviço.", map[string]interface{}{"name": form.Name, "unit": form.Unit})

	if err := s.checkReady(); err != nil {
		return Outcome{}, s.reject(IntentAdd, err)
	}

	draft, err := draftFromForm(form)
	if err != nil {
		return Outcome{}, s.reject(IntentAdd, err)
	}

	item, err := s.store.Add(draft)
	if err != nil {
		return Outcome{}, s.reject(IntentAdd, err)
	}

	out := newOutcome(item, fmt.Sprintf("%s has been added to inventory.", item.Name))
	if _, err := s.repo.Insert(ctx, item); err != nil {
		return out, s.adapterFailure(IntentAdd, "insert", item, err)
	}

	s.succeed(IntentAdd, item)
	return out, nil
}

// ConsumeOne usa uma unidade do item (decremento fixo de 1, limitado a zero).
// Itens sem estoque são recusados com PreconditionError.
func (s *Service) ConsumeOne(ctx context.Context, id string) (Outcome, error) {
	if err := s.checkReady(); err != nil {
		return Outcome{}, s.reject(IntentConsume, err)
	}

	before, after, err := s.store.Adjust(id, func(current domain.Item) (float64, error) {
		if current.Status() == domain.StatusOutOfStock {
			return 0, apperror.NewPreconditionError(fmt.Sprintf("%s está sem estoque (out of stock).", current.Name))
		}
		return math.Max(0, current.Quantity-1), nil
	})
	if err != nil {
		return Outcome{}, s.reject(IntentConsume, err)
	}

	out := newOutcome(after, fmt.Sprintf("Used 1 %s of %s", after.Unit, after.Name))
	return s.persistQuantity(ctx, IntentConsume, before, after, out)
}

// Restock soma amount (estritamente positivo) à quantidade do item.
func (s *Service) Restock(ctx context.Context, id string, amount float64) (Outcome, error) {
	if err := s.checkReady(); err != nil {
		return Outcome{}, s.reject(IntentRestock, err)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return Outcome{}, s.reject(IntentRestock, apperror.NewValidationError("a quantidade de reposição deve ser maior que 0."))
	}

	before, after, err := s.store.Adjust(id, func(current domain.Item) (float64, error) {
		return current.Quantity + amount, nil
	})
	if err != nil {
		return Outcome{}, s.reject(IntentRestock, err)
	}

	out := newOutcome(after, fmt.Sprintf("Restocked %s %s of %s", FormatNumber(amount), after.Unit, after.Name))
	return s.persistQuantity(ctx, IntentRestock, before, after, out)
}

// SetQuantity define diretamente a quantidade do item (>= 0).
func (s *Service) SetQuantity(ctx context.Context, id string, quantity float64) (Outcome, error) {
	if err := s.checkReady(); err != nil {
		return Outcome{}, s.reject(IntentSetQuantity, err)
	}

	before, after, err := s.store.Adjust(id, func(domain.Item) (float64, error) {
		return quantity, nil
	})
	if err != nil {
		return Outcome{}, s.reject(IntentSetQuantity, err)
	}

	out := newOutcome(after, fmt.Sprintf("%s set to %s %s", after.Name, FormatNumber(after.Quantity), after.Unit))
	return s.persistQuantity(ctx, IntentSetQuantity, before, after, out)
}

// Delete remove o item da coleção e do armazenamento remoto.
func (s *Service) Delete(ctx context.Context, id string) (Outcome, error) {
	if err := s.checkReady(); err != nil {
		return Outcome{}, s.reject(IntentDelete, err)
	}

	removed, err := s.store.Remove(id)
	if err != nil {
		return Outcome{}, s.reject(IntentDelete, err)
	}

	out := newOutcome(removed, fmt.Sprintf("%s removed from inventory", removed.Name))
	if err := s.repo.Delete(ctx, id); err != nil {
		return out, s.adapterFailure(IntentDelete, "delete", removed, err)
	}

	s.succeed(IntentDelete, removed)
	return out, nil
}

// Sync reenvia ao armazenamento remoto o estado em memória do item. É a forma
// de o chamador repetir uma escrita que falhou com AdapterError: tenta
// UpdateQuantity e, se a linha não existe remotamente, faz Insert.
func (s *Service) Sync(ctx context.Context, id string) (Outcome, error) {
	if err := s.checkReady(); err != nil {
		return Outcome{}, s.reject(IntentSync, err)
	}

	item, err := s.store.Get(id)
	if err != nil {
		return Outcome{}, s.reject(IntentSync, err)
	}

	out := newOutcome(item, fmt.Sprintf("%s synchronized with remote storage", item.Name))
	err = s.repo.UpdateQuantity(ctx, item.ID, item.Quantity, item.LastUpdated)
	if apperror.IsNotFound(err) {
		_, err = s.repo.Insert(ctx, item)
	}
	if err != nil {
		return out, s.adapterFailure(IntentSync, "sync", item, err)
	}

	s.succeed(IntentSync, item)
	return out, nil
}

// ParseNumber converte o texto de um campo numérico em um número finito não negativo.
// Texto ilegível é tratado como ValidationError, igual a um valor negativo.
func ParseNumber(field, text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, apperror.NewValidationError(fmt.Sprintf("o campo %s é obrigatório.", field))
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperror.NewValidationError(fmt.Sprintf("o campo %s deve ser um número válido.", field))
	}
	if v < 0 {
		return 0, apperror.NewValidationError(fmt.Sprintf("o campo %s não pode ser negativo.", field))
	}
	return v, nil
}

// FormatNumber formata quantidades sem zeros supérfluos (2.5, 12, 0.25).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func draftFromForm(form domain.ItemForm) (domain.ItemDraft, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return domain.ItemDraft{}, apperror.NewValidationError("o nome do item é obrigatório.")
	}
	unit := strings.TrimSpace(form.Unit)
	if unit == "" {
		return domain.ItemDraft{}, apperror.NewValidationError("selecione uma unidade.")
	}

	quantity, err := ParseNumber("quantity", string(form.Quantity))
	if err != nil {
		return domain.ItemDraft{}, err
	}

	draft := domain.ItemDraft{Name: name, Quantity: quantity, Unit: unit}
	if strings.TrimSpace(string(form.LowStockThreshold)) != "" {
		threshold, err := ParseNumber("low_stock_threshold", string(form.LowStockThreshold))
		if err != nil {
			return domain.ItemDraft{}, err
		}
		draft.LowStockThreshold = &threshold
	}
	return draft, nil
}

func newOutcome(item domain.Item, message string) Outcome {
	return Outcome{Item: item, Status: item.Status(), Message: message}
}

// persistQuantity emite UpdateQuantity após a mutação em memória e dispara o
// alerta quando o item piorou de faixa. A mutação local nunca é desfeita.
func (s *Service) persistQuantity(ctx context.Context, intent string, before, after domain.Item, out Outcome) (Outcome, error) {
	if domain.Worsened(before.Status(), after.Status()) {
		s.notify(ctx, after)
	}

	if err := s.repo.UpdateQuantity(ctx, after.ID, after.Quantity, after.LastUpdated); err != nil {
		return out, s.adapterFailure(intent, "update_quantity", after, err)
	}

	s.succeed(intent, after)
	return out, nil
}

func (s *Service) notify(ctx context.Context, item domain.Item) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyStockChange(ctx, item, item.Status()); err != nil {
		s.logger.Warn("Falha ao enviar alerta de estoque.", map[string]interface{}{"item_id": item.ID, "error": err.Error()})
	}
}

func (s *Service) checkReady() error {
	if !s.ready.Load() {
		return apperror.NewUnavailableError("o estoque ainda não foi carregado.")
	}
	return nil
}

func (s *Service) succeed(intent string, item domain.Item) {
	s.recorder.IntentHandled(intent, "ok")
	s.logger.Info("Intenção aplicada com sucesso.", map[string]interface{}{
		"intent":   intent,
		"item_id":  item.ID,
		"quantity": item.Quantity,
		"status":   string(item.Status()),
	})
}

func (s *Service) reject(intent string, err error) error {
	_, category, _ := apperror.MapToHTTPStatus(err)
	s.recorder.IntentHandled(intent, strings.ToLower(category))
	s.logger.Debug("Intenção rejeitada.", map[string]interface{}{"intent": intent, "category": category, "error": err.Error()})
	return err
}

func (s *Service) adapterFailure(intent, operation string, item domain.Item, err error) error {
	s.recorder.AdapterFailed(operation)
	s.recorder.IntentHandled(intent, "adapter_error")
	s.logger.Error(fmt.Sprintf("Falha na escrita remota (%s) do item %s; estado em memória mantido.", operation, item.ID), err)
	return apperror.NewAdapterError(fmt.Sprintf("falha ao executar %s para %s", operation, item.Name), err)
}

type nopRecorder struct{}

func (nopRecorder) IntentHandled(string, string) {}
func (nopRecorder) AdapterFailed(string)         {}
