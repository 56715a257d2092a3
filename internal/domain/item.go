package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// DefaultLowStockThreshold é o limite aplicado quando o item é criado sem um valor explícito.
const DefaultLowStockThreshold = 5.0

// CustomUnit é a opção "custom" do seletor de unidades; aceita como rótulo livre.
const CustomUnit = "custom"

// SuggestedUnits é o conjunto de unidades oferecido no formulário de cadastro.
var SuggestedUnits = []string{"pieces", "kg", "g", "liters", "ml", "cups", "tbsp", "tsp", "cans", "bottles"}

// Item representa uma entrada rastreada no estoque da cozinha (a Entidade).
// O status de estoque NÃO é armazenado aqui: é sempre derivado via Classify.
type Item struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Quantity          float64   `json:"quantity"`
	Unit              string    `json:"unit"`
	LowStockThreshold float64   `json:"low_stock_threshold"`
	LastUpdated       time.Time `json:"last_updated"`
}

// Status classifica o item no momento da leitura.
func (i Item) Status() StockStatus {
	return Classify(i.Quantity, i.LowStockThreshold)
}

// ItemDraft é o payload já convertido para números que o Item Store aceita em Add.
// LowStockThreshold nil significa "não informado" (aplica DefaultLowStockThreshold).
type ItemDraft struct {
	Name              string
	Quantity          float64
	Unit              string
	LowStockThreshold *float64
}

// ItemForm é a representação de entrada do formulário de cadastro: os campos
// numéricos chegam como texto e são convertidos pela camada de serviço.
type ItemForm struct {
	Name              string    `json:"name" example:"Tomatoes"`
	Quantity          FormValue `json:"quantity" swaggertype:"string" example:"12"`
	Unit              string    `json:"unit" example:"pieces"`
	LowStockThreshold FormValue `json:"low_stock_threshold" swaggertype:"string" example:"5"`
}

// FormValue guarda o texto cru de um campo de formulário. Aceita tanto
// strings JSON ("2.5") quanto números (2.5), preservando a forma textual.
type FormValue string

// UnmarshalJSON implementa json.Unmarshaler.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(data)
	return nil
}

// ItemView é a forma de leitura exposta pela API: o item mais o status
// recalculado naquele instante.
type ItemView struct {
	Item
	Status      StockStatus `json:"status"`
	StatusLabel string      `json:"status_label"`
}

// NewItemView monta a visão de leitura classificando o item.
func NewItemView(item Item) ItemView {
	status := item.Status()
	return ItemView{Item: item, Status: status, StatusLabel: status.Label()}
}
