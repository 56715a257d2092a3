package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopantry/internal/domain"
)

func TestClassify_Bands(t *testing.T) {
	cases := []struct {
		name      string
		quantity  float64
		threshold float64
		want      domain.StockStatus
	}{
		{"zero is out of stock", 0, 5, domain.StatusOutOfStock},
		{"negative is out of stock", -1, 5, domain.StatusOutOfStock},
		{"below threshold is low", 2, 5, domain.StatusLow},
		{"equal to threshold is low", 5, 5, domain.StatusLow},
		{"fractional equal is low", 0.5, 0.5, domain.StatusLow},
		{"above threshold is in stock", 5.1, 5, domain.StatusInStock},
		{"zero threshold positive quantity", 0.1, 0, domain.StatusInStock},
		{"zero quantity zero threshold", 0, 0, domain.StatusOutOfStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.Classify(tc.quantity, tc.threshold))
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, domain.Classify(3, 3), domain.Classify(3, 3))
	}
}

func TestItemStatus_DerivedOnRead(t *testing.T) {
	item := domain.Item{Name: "Salt", Quantity: 2, LowStockThreshold: 1}
	assert.Equal(t, domain.StatusInStock, item.Status())

	item.Quantity = 1
	assert.Equal(t, domain.StatusLow, item.Status())

	item.Quantity = 0
	assert.Equal(t, domain.StatusOutOfStock, item.Status())
}

func TestWorsened(t *testing.T) {
	assert.True(t, domain.Worsened(domain.StatusInStock, domain.StatusLow))
	assert.True(t, domain.Worsened(domain.StatusLow, domain.StatusOutOfStock))
	assert.True(t, domain.Worsened(domain.StatusInStock, domain.StatusOutOfStock))
	assert.False(t, domain.Worsened(domain.StatusLow, domain.StatusLow))
	assert.False(t, domain.Worsened(domain.StatusOutOfStock, domain.StatusInStock))
}

func TestFormValue_AcceptsStringsAndNumbers(t *testing.T) {
	var form domain.ItemForm
	err := json.Unmarshal([]byte(`{"name":"Olive Oil","quantity":2.5,"unit":"liters","low_stock_threshold":"1"}`), &form)
	require.NoError(t, err)

	assert.Equal(t, domain.FormValue("2.5"), form.Quantity)
	assert.Equal(t, domain.FormValue("1"), form.LowStockThreshold)

	err = json.Unmarshal([]byte(`{"quantity":null}`), &form)
	require.NoError(t, err)
	assert.Equal(t, domain.FormValue(""), form.Quantity)
}

func TestNewItemView(t *testing.T) {
	view := domain.NewItemView(domain.Item{Name: "Pasta", Quantity: 3, LowStockThreshold: 2})
	assert.Equal(t, domain.StatusInStock, view.Status)
	assert.Equal(t, "In Stock", view.StatusLabel)
}
