package queue

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadMailer is the contract the worker needs from the mail package.
type LeadMailer interface {
	SendLeadWelcome(payload LeadEmailPayload) error
}

// Worker drains the lead-email queue and hands each payload to the mailer.
// Decoupled from the database entirely: the payload is self-contained.
type Worker struct {
	Channel *amqp.Channel
	Mailer  LeadMailer
}

func NewWorker(ch *amqp.Channel, mailer LeadMailer) *Worker {
	return &Worker{Channel: ch, Mailer: mailer}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to register RabbitMQ consumer")
	}

	logrus.WithField("queue", queueName).Info("email worker waiting for messages")

	for d := range msgs {
		var payload LeadEmailPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			logrus.WithError(err).Error("malformed lead email message, rejecting")
			// Malformed message: reject without requeue so the queue keeps moving.
			d.Nack(false, false)
			continue
		}

		if err := w.Mailer.SendLeadWelcome(payload); err != nil {
			RecordEmailFailed()
			RecordSMTPError()
			logrus.WithFields(logrus.Fields{
				"contact_id": payload.ContactID,
				"email":      payload.Email,
				"error":      err,
			}).Error("lead welcome email failed, routing to DLQ")
			d.Nack(false, false)
			continue
		}

		RecordEmailSent()
		logrus.WithFields(logrus.Fields{
			"contact_id": payload.ContactID,
			"email":      payload.Email,
		}).Info("lead welcome email sent")
		d.Ack(false)
	}
}
