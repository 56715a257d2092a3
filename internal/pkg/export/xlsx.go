package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"gopantry/internal/domain"
)

// ContentType é o MIME type de planilhas XLSX.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []interface{}{
	"id",
	"name",
	"quantity",
	"unit",
	"low_stock_threshold",
	"status",
	"last_updated",
}

// FileName gera o nome do arquivo de exportação para o instante at.
func FileName(at time.Time) string {
	return fmt.Sprintf("pantry_%s.xlsx", at.UTC().Format("20060102_150405"))
}

// WriteXLSX grava uma planilha com uma linha por item, na ordem recebida.
func WriteXLSX(items []domain.ItemView) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("falha ao escrever o cabeçalho: %w", err)
	}

	for i, it := range items {
		row := []interface{}{
			it.ID,
			it.Name,
			it.Quantity,
			it.Unit,
			it.LowStockThreshold,
			it.StatusLabel,
			it.LastUpdated.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("falha ao escrever a linha %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("falha ao gerar a planilha: %w", err)
	}
	return buf.Bytes(), nil
}
