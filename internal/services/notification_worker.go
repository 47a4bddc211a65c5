package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"gigbud/internal/models"
	"gigbud/internal/repository"
	"gigbud/internal/utils"

	"github.com/streadway/amqp"
)

const notificationQueue = "gigbud.notifications"

// NotificationMessage is the wire form of a queued notification.
type NotificationMessage struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NotificationPublisher enqueues notifications for asynchronous delivery.
type NotificationPublisher interface {
	Publish(msg NotificationMessage) error
}

// NotificationWorker consumes the queue, sends the email and appends the
// audit row. Publisher and worker share one AMQP connection.
type NotificationWorker struct {
	conn             *amqp.Connection
	publishChannel   *amqp.Channel
	notificationRepo repository.NotificationRepository
	mailer           utils.Mailer
	workerCount      int

	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

func NewNotificationWorker(
	amqpURL string,
	notificationRepo repository.NotificationRepository,
	mailer utils.Mailer,
	workerCount int,
) (*NotificationWorker, error) {
	if workerCount <= 0 {
		workerCount = 3
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(notificationQueue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &NotificationWorker{
		conn:             conn,
		publishChannel:   ch,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		workerCount:      workerCount,
		stopChan:         make(chan struct{}),
	}, nil
}

// Publish enqueues a notification message.
func (nw *NotificationWorker) Publish(msg NotificationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return nw.publishChannel.Publish("", notificationQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Start launches the consumer goroutines.
func (nw *NotificationWorker) Start() error {
	nw.mu.Lock()
	defer nw.mu.Unlock()
	if nw.running {
		return nil
	}

	for i := 0; i < nw.workerCount; i++ {
		ch, err := nw.conn.Channel()
		if err != nil {
			return fmt.Errorf("failed to open consumer channel: %w", err)
		}
		deliveries, err := ch.Consume(notificationQueue, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("failed to start consumer: %w", err)
		}

		nw.wg.Add(1)
		go nw.consume(deliveries)
	}

	nw.running = true
	log.Printf("Notification worker started with %d consumers", nw.workerCount)
	return nil
}

func (nw *NotificationWorker) consume(deliveries <-chan amqp.Delivery) {
	defer nw.wg.Done()
	for {
		select {
		case <-nw.stopChan:
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			nw.handle(delivery)
		}
	}
}

func (nw *NotificationWorker) handle(delivery amqp.Delivery) {
	var msg NotificationMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		log.Printf("Dropping malformed notification message: %v", err)
		delivery.Nack(false, false)
		return
	}

	if err := nw.mailer.Send(msg.Email, msg.Subject, msg.Message); err != nil {
		log.Printf("Failed to send notification email to %s: %v", msg.Email, err)
		// Requeue once; repeated failures drop the message rather than
		// spinning forever on a dead SMTP host.
		delivery.Nack(false, !delivery.Redelivered)
		return
	}

	record := &models.Notification{
		UserID:  msg.UserID,
		Email:   msg.Email,
		Subject: msg.Subject,
		Message: msg.Message,
	}
	if err := nw.notificationRepo.Create(record); err != nil {
		log.Printf("Failed to record notification for user %d: %v", msg.UserID, err)
	}

	delivery.Ack(false)
}

// Stop drains the consumers and closes the connection.
func (nw *NotificationWorker) Stop() {
	nw.mu.Lock()
	defer nw.mu.Unlock()
	if !nw.running {
		return
	}
	close(nw.stopChan)
	nw.wg.Wait()
	nw.conn.Close()
	nw.running = false
}
