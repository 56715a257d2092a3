// Package itemstore mantém a coleção autoritativa de itens da sessão em memória.
//
// Um Store é criado uma vez por sessão e passado por referência a quem o usa;
// cada operação é aplicada sob o mesmo mutex, de modo que nenhuma leitura
// observa um estado parcialmente aplicado. O Store não persiste nada: a escrita
// remota é responsabilidade de quem o chama.
package itemstore

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gopantry/internal/domain"
	apperror "gopantry/internal/errors"
)

// Store é a coleção ordenada (por inserção) de itens do estoque.
type Store struct {
	mu    sync.RWMutex
	items []domain.Item
	index map[string]int // id -> posição em items

	now   func() time.Time
	newID func() string
}

// Option configura um Store.
type Option func(*Store)

// WithClock substitui o relógio usado para carimbar LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator substitui o gerador de identificadores (UUID v4 por padrão).
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New cria um Store vazio.
func New(opts ...Option) *Store {
	s := &Store{
		index: make(map[string]int),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add valida o rascunho, atribui id e carimbo de tempo e anexa o item ao fim da coleção.
func (s *Store) Add(draft domain.ItemDraft) (domain.Item, error) {
	item, err := validateDraft(draft)
	if err != nil {
		return domain.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.newID()
	if _, exists := s.index[item.ID]; exists {
		return domain.Item{}, apperror.NewInternalError(fmt.Sprintf("Identificador duplicado gerado: %s", item.ID), nil)
	}
	item.LastUpdated = s.now()

	s.index[item.ID] = len(s.items)
	s.items = append(s.items, item)
	return item, nil
}

// SetQuantity substitui a quantidade do item e renova LastUpdated; os demais campos não mudam.
func (s *Store) SetQuantity(id string, quantity float64) (domain.Item, error) {
	if err := validateQuantity(quantity); err != nil {
		return domain.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return domain.Item{}, notFound(id)
	}
	return s.setLocked(pos, quantity), nil
}

// Adjust lê o item atual e aplica a nova quantidade calculada por fn na mesma
// seção crítica. Se fn devolve erro, nada é alterado. Devolve o item antes e
// depois da mudança.
func (s *Store) Adjust(id string, fn func(current domain.Item) (float64, error)) (before, after domain.Item, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return domain.Item{}, domain.Item{}, notFound(id)
	}
	before = s.items[pos]

	quantity, err := fn(before)
	if err != nil {
		return before, domain.Item{}, err
	}
	if err := validateQuantity(quantity); err != nil {
		return before, domain.Item{}, err
	}
	return before, s.setLocked(pos, quantity), nil
}

// Remove retira o item da coleção de forma irrevogável e devolve o item removido.
func (s *Store) Remove(id string) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return domain.Item{}, notFound(id)
	}
	removed := s.items[pos]

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].ID] = i
	}
	return removed, nil
}

// Get devolve uma cópia do item.
func (s *Store) Get(id string) (domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return domain.Item{}, notFound(id)
	}
	return s.items[pos], nil
}

// List devolve uma cópia da coleção na ordem de inserção.
func (s *Store) List() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len devolve o número de itens.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace popula o Store com a coleção carregada do armazenamento durável,
// preservando a ordem recebida. Rejeita ids vazios ou repetidos e valores
// negativos sem alterar o conteúdo atual.
func (s *Store) Replace(items []domain.Item) error {
	index := make(map[string]int, len(items))
	fresh := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			return apperror.NewValidationError("item carregado sem identificador.")
		}
		if _, dup := index[it.ID]; dup {
			return apperror.NewConflictError(fmt.Sprintf("identificador %s repetido na carga inicial.", it.ID))
		}
		if err := validateQuantity(it.Quantity); err != nil {
			return err
		}
		if err := validateThreshold(it.LowStockThreshold); err != nil {
			return err
		}
		index[it.ID] = len(fresh)
		fresh = append(fresh, it)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = fresh
	s.index = index
	return nil
}

// setLocked exige s.mu em modo escrita. LastUpdated nunca retrocede.
func (s *Store) setLocked(pos int, quantity float64) domain.Item {
	item := s.items[pos]
	ts := s.now()
	if ts.Before(item.LastUpdated) {
		ts = item.LastUpdated
	}
	item.Quantity = quantity
	item.LastUpdated = ts
	s.items[pos] = item
	return item
}

func validateDraft(draft domain.ItemDraft) (domain.Item, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return domain.Item{}, apperror.NewValidationError("o nome do item é obrigatório.")
	}
	unit := strings.TrimSpace(draft.Unit)
	if unit == "" {
		return domain.Item{}, apperror.NewValidationError("a unidade do item é obrigatória.")
	}
	if err := validateQuantity(draft.Quantity); err != nil {
		return domain.Item{}, err
	}

	threshold := domain.DefaultLowStockThreshold
	if draft.LowStockThreshold != nil {
		threshold = *draft.LowStockThreshold
	}
	if err := validateThreshold(threshold); err != nil {
		return domain.Item{}, err
	}

	return domain.Item{
		Name:              name,
		Quantity:          draft.Quantity,
		Unit:              unit,
		LowStockThreshold: threshold,
	}, nil
}

func validateQuantity(q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return apperror.NewValidationError("a quantidade deve ser um número finito.")
	}
	if q < 0 {
		return apperror.NewValidationError("a quantidade não pode ser negativa.")
	}
	return nil
}

func validateThreshold(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return apperror.NewValidationError("o limite de estoque baixo deve ser um número finito.")
	}
	if t < 0 {
		return apperror.NewValidationError("o limite de estoque baixo não pode ser negativo.")
	}
	return nil
}

func notFound(id string) error {
	return apperror.NewNotFoundError(fmt.Sprintf("Item com ID %s não existe no estoque.", id))
}
