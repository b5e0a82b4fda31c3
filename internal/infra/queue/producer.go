package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ImportCompletedPayload é o resumo publicado ao fim de cada execução, para
// consumidores interessados (billing, provisionamento, auditoria).
type ImportCompletedPayload struct {
	RunID               string `json:"run_id"`
	TotalRegistros      int    `json:"total_registros"`
	TotalClientes       int    `json:"total_clientes"`
	TotalContatos       int    `json:"total_contatos"`
	ContratosImportados int    `json:"contratos_importados"`
	TotalErros          int    `json:"total_erros"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishImportCompleted(ctx context.Context, payload ImportCompletedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
