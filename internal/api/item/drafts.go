package item

import (
	"strings"
	"sync"
)

// DefaultRestockAmount é o texto usado quando não há rascunho de reposição.
const DefaultRestockAmount = "1"

// RestockDrafts guarda, por item, o texto digitado no campo de reposição e
// ainda não confirmado. Pertence à camada de apresentação; o Item não o conhece.
type RestockDrafts struct {
	mu     sync.Mutex
	drafts map[string]string
}

func NewRestockDrafts() *RestockDrafts {
	return &RestockDrafts{drafts: make(map[string]string)}
}

// Set grava o rascunho; texto vazio remove a entrada.
func (d *RestockDrafts) Set(id, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	text = strings.TrimSpace(text)
	if text == "" {
		delete(d.drafts, id)
		return
	}
	d.drafts[id] = text
}

// Get devolve o rascunho do item ou DefaultRestockAmount.
func (d *RestockDrafts) Get(id string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if text, ok := d.drafts[id]; ok {
		return text
	}
	return DefaultRestockAmount
}

func (d *RestockDrafts) Clear(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.drafts, id)
}
