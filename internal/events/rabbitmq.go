package events

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"
)

// RabbitMQPublisher implements the Publisher interface using RabbitMQ.
type RabbitMQPublisher struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
}

// NewRabbitMQPublisherConfig contains options for creating a new RabbitMQPublisher.
type NewRabbitMQPublisherConfig struct {
	URL       string
	QueueName string
}

// NewRabbitMQPublisher connects to RabbitMQ and declares the order event queue.
func NewRabbitMQPublisher(cfg NewRabbitMQPublisherConfig) (Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		log.Printf("Failed to connect to RabbitMQ: %v", err)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("Failed to open a channel: %v", err)
		conn.Close() // Close connection if channel opening fails
		return nil, err
	}

	_, err = ch.QueueDeclare(
		cfg.QueueName, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		log.Printf("Failed to declare queue %s: %v", cfg.QueueName, err)
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQPublisher{conn: conn, channel: ch, queueName: cfg.QueueName}, nil
}

// Publish sends one order event to the queue as persistent JSON.
func (p *RabbitMQPublisher) Publish(event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event %s: %v", event.ID, err)
		return err
	}

	err = p.channel.Publish(
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		log.Printf("Failed to publish order event %s to queue %s: %v", event.ID, p.queueName, err)
		return err
	}
	return nil
}

// Close shuts down the channel and connection.
func (p *RabbitMQPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
