package messaging

import (
	"fmt"
	"log"

	"hospital-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
)

func NewRabbitMQ(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *amqp091.Connection {
	connectionString := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
	conn, err := amqp091.Dial(connectionString)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ: %s", err.Error())
	}
	log.Println("Successfully connected to rabbitMQ")

	if err := DeclareQueue(conn, internalConfig.RabbitMQ.MailerQueue); err != nil {
		log.Fatalf("Failed to declare rabbitMQ queue %s: %s", internalConfig.RabbitMQ.MailerQueue, err.Error())
	}
	return conn
}

// DeclareQueue makes sure a durable queue exists before anything is published to it.
func DeclareQueue(conn *amqp091.Connection, name string) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(name, true, false, false, false, nil)
	return err
}
