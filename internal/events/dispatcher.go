// Package events публикует события смены состояния личного кабинета.
//
// Ядро возвращает обычные значения и о подписчиках не знает: обработчики
// переводят успешные исходы в события и отдают их диспетчеру. Сбой
// публикации логируется и никогда не влияет на результат операции.
package events

import (
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/ekazakovv/clients-hub/internal/lib/rabbitmq"
	"github.com/ekazakovv/clients-hub/internal/lib/sl"
	"github.com/ekazakovv/clients-hub/internal/models"
)

// Dispatcher описывает публикацию события.
type Dispatcher interface {
	Publish(event models.Event)
}

// AmqpDispatcher публикует события в обменник client-events.
// Имя события используется как routing key.
type AmqpDispatcher struct {
	ch  *amqp.Channel
	log *slog.Logger
}

// NewAmqpDispatcher создает новый экземпляр AmqpDispatcher.
func NewAmqpDispatcher(ch *amqp.Channel, log *slog.Logger) *AmqpDispatcher {
	return &AmqpDispatcher{
		ch:  ch,
		log: log,
	}
}

// Publish отправляет событие. Ошибка публикации только логируется:
// доставка событий не входит в контракт операций ядра.
func (d *AmqpDispatcher) Publish(event models.Event) {
	if err := rabbitmq.PublishMessage(d.ch, rabbitmq.Exchange, event.Name, event); err != nil {
		d.log.Error("failed to publish event",
			slog.String("event", event.Name), sl.Err(err))
		return
	}
	d.log.Info("event published", slog.String("event", event.Name))
}

// NopDispatcher отбрасывает события; используется, когда брокер не настроен.
type NopDispatcher struct{}

// Publish ничего не делает.
func (NopDispatcher) Publish(models.Event) {}
