package rmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/logger"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/rmq"
)

// Publisher pushes presence changes onto a topic exchange so other
// systems (dispatch, analytics) can follow the fleet without polling.
type Publisher struct {
	mq       *rmq.RabbitMQ
	exchange string
}

func NewPublisher(mq *rmq.RabbitMQ, exchange string) (*Publisher, error) {
	if err := mq.Chan.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{mq: mq, exchange: exchange}, nil
}

type statusEvent struct {
	DriverID string `json:"driver_id"`
	IsOnline bool   `json:"is_online"`
	At       string `json:"at"`
}

type locationEvent struct {
	DriverID  string  `json:"driver_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	At        string  `json:"at"`
}

func (p *Publisher) PublishStatus(ctx context.Context, driverID string, online bool) error {
	key := "driver.offline"
	if online {
		key = "driver.online"
	}
	return p.publish(ctx, key, statusEvent{
		DriverID: driverID,
		IsOnline: online,
		At:       time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) PublishLocation(ctx context.Context, driverID string, lat, lng float64) error {
	return p.publish(ctx, "driver.location", locationEvent{
		DriverID:  driverID,
		Latitude:  lat,
		Longitude: lng,
		At:        time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.mq.Chan.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	logger.Debug("event_published", fmt.Sprintf("Published %s event", routingKey))
	return nil
}
