package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadEmailPayload carries everything the email worker needs to build the
// personalized welcome mail, including the tracking token for the click link.
type LeadEmailPayload struct {
	ContactID  string `json:"contact_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Token      string `json:"token"`
	EmployeeID string `json:"emp_id,omitempty"`
	CompanyID  string `json:"company_id,omitempty"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) PublishLeadEmail(ctx context.Context, payload LeadEmailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal lead email payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish lead email: %w", err)
	}
	return nil
}
