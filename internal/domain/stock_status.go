package domain

// StockStatus é a categoria derivada do nível de estoque de um item.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
	StatusLow        StockStatus = "LOW"
	StatusInStock    StockStatus = "IN_STOCK"
)

// Classify mapeia (quantidade, limite) para o status de estoque.
// O limite é inclusivo na faixa LOW: quantity == threshold (> 0) é LOW.
func Classify(quantity, threshold float64) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= threshold:
		return StatusLow
	default:
		return StatusInStock
	}
}

// Label devolve o rótulo legível do status.
func (s StockStatus) Label() string {
	switch s {
	case StatusOutOfStock:
		return "Out of Stock"
	case StatusLow:
		return "Low Stock"
	case StatusInStock:
		return "In Stock"
	default:
		return string(s)
	}
}

// Worsened indica se a transição from -> to entrou numa faixa pior (LOW ou OUT_OF_STOCK).
func Worsened(from, to StockStatus) bool {
	return rank(to) > rank(from)
}

func rank(s StockStatus) int {
	switch s {
	case StatusLow:
		return 1
	case StatusOutOfStock:
		return 2
	default:
		return 0
	}
}
