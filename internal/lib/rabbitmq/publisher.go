// Package rabbitmq содержит публикацию сообщений в очередь уведомлений.
package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// Publisher публикует сообщения в заданный exchange с фиксированным routing key.
type Publisher struct {
	Ch         *amqp.Channel
	Exchange   string
	RoutingKey string
}

// NewPublisher создает Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel, exchange, routingKey string) *Publisher {
	return &Publisher{
		Ch:         ch,
		Exchange:   exchange,
		RoutingKey: routingKey,
	}
}

// Publish сериализует сообщение в JSON и публикует его.
func (p *Publisher) Publish(message any) error {
	return PublishMessage(p.Ch, p.Exchange, p.RoutingKey, message)
}

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
