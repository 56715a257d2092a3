package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gopantry/internal/domain"
	"gopantry/internal/pkg/logger"
)

// Sender é o subconjunto do *tgbotapi.BotAPI usado para enviar alertas.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier envia um alerta para um chat quando um item entra em
// LOW ou OUT_OF_STOCK.
type TelegramNotifier struct {
	sender Sender
	chatID int64
	logger logger.Logger
}

// NewTelegramNotifier cria o cliente da Bot API a partir do token.
func NewTelegramNotifier(token string, chatID int64, log logger.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("falha ao autenticar o bot do Telegram: %w", err)
	}
	return NewNotifier(api, chatID, log), nil
}

// NewNotifier monta o notificador sobre um Sender já pronto.
func NewNotifier(sender Sender, chatID int64, log logger.Logger) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, chatID: chatID, logger: log}
}

// NotifyStockChange envia o alerta. O contexto só é consultado antes do envio;
// a Bot API não aceita cancelamento.
func (n *TelegramNotifier) NotifyStockChange(ctx context.Context, item domain.Item, status domain.StockStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatAlert(item, status))
	if _, err := n.sender.Send(msg); err != nil {
		return fmt.Errorf("falha ao enviar alerta do item %s: %w", item.ID, err)
	}

	n.logger.Debug("Alerta de estoque enviado.", map[string]interface{}{"item_id": item.ID, "status": string(status)})
	return nil
}

// FormatAlert monta o texto do alerta.
func FormatAlert(item domain.Item, status domain.StockStatus) string {
	icon := "⚠️"
	if status == domain.StatusOutOfStock {
		icon = "🛑"
	}
	return fmt.Sprintf("%s %s: %s\nQuantity: %s %s (threshold %s)",
		icon,
		status.Label(),
		item.Name,
		formatNumber(item.Quantity),
		item.Unit,
		formatNumber(item.LowStockThreshold),
	)
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}
