package notify

import (
	"encoding/json"
	"fmt"

	"renvask/internal/events"
	"renvask/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Sender is the subset of the Telegram bot API the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier pushes booking activity to the manager chats. The
// customer-facing side stays on HTTP; Telegram is operations only.
type TelegramNotifier struct {
	sender Sender
	chats  []int64
	logger *zerolog.Logger
}

func NewTelegramNotifier(token string, chats []int64, logger *zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logger.Info().Str("bot", bot.Self.UserName).Msg("Telegram notifier connected")
	return &TelegramNotifier{sender: bot, chats: chats, logger: logger}, nil
}

// NewWithSender wires a notifier over an existing sender.
func NewWithSender(sender Sender, chats []int64, logger *zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, chats: chats, logger: logger}
}

// Subscribe registers the notifier on the event bus.
func (n *TelegramNotifier) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingCreated, n.onBookingEvent("Ny booking"))
	bus.Subscribe(events.EventBookingConfirmed, n.onBookingEvent("Booking bekræftet"))
	bus.Subscribe(events.EventBookingCanceled, n.onBookingEvent("Booking annulleret"))
	bus.Subscribe(events.EventBookingCompleted, n.onBookingEvent("Booking afsluttet"))
	bus.Subscribe(events.EventMessageReceived, n.onMessage)
}

func (n *TelegramNotifier) onBookingEvent(title string) events.EventHandler {
	return func(event *events.Event) error {
		var p events.BookingEventPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			n.logger.Error().Err(err).Str("event", event.Type).Msg("decode booking event")
			return err
		}

		text := fmt.Sprintf("%s: %s\n%s — %s\n%s, kl. %s\n%d kr., %d min.",
			title, p.Reference,
			p.ServiceName, p.Status,
			p.CustomerName, p.ScheduledAt.Format("02.01.2006 15:04"),
			p.TotalPrice, p.DurationMinutes,
		)
		n.broadcast(text)
		return nil
	}
}

func (n *TelegramNotifier) onMessage(event *events.Event) error {
	var m models.Message
	if err := json.Unmarshal(event.Payload, &m); err != nil {
		n.logger.Error().Err(err).Msg("decode message event")
		return err
	}

	text := fmt.Sprintf("Ny besked fra %s (%s):\n%s", m.Name, m.Email, m.Body)
	if m.Reference != "" {
		text += "\nBooking: " + m.Reference
	}
	n.broadcast(text)
	return nil
}

func (n *TelegramNotifier) broadcast(text string) {
	for _, chat := range n.chats {
		msg := tgbotapi.NewMessage(chat, text)
		if _, err := n.sender.Send(msg); err != nil {
			n.logger.Error().Err(err).Int64("chat_id", chat).Msg("telegram send error")
		}
	}
}
