package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/streadway/amqp"

	"alfredoptarigan/profile-screener/internal/models"
)

type ProgressNotifier interface {
	Notify(ctx context.Context, event models.BatchEvent)
}

type noopNotifier struct{}

func NoopNotifier() ProgressNotifier {
	return noopNotifier{}
}

func (noopNotifier) Notify(context.Context, models.BatchEvent) {}

type logNotifier struct{}

func LogNotifier() ProgressNotifier {
	return logNotifier{}
}

func (logNotifier) Notify(_ context.Context, event models.BatchEvent) {
	switch event.Type {
	case models.EventBatchStarted:
		log.Printf("🔄 Batch %s started with %d documents\n", event.RunID, event.Total)
	case models.EventDocumentCompleted:
		if event.Failed {
			log.Printf("❌ [%d/%d] %s failed\n", event.Index, event.Total, event.Filename)
			return
		}
		log.Printf("✅ [%d/%d] %s scored %d\n", event.Index, event.Total, event.Filename, event.Score)
	case models.EventBatchCompleted:
		log.Printf("✅ Batch %s completed: %d analyzed\n", event.RunID, event.Total)
	}
}

// PublishFunc delivers one encoded event under a routing key.
type PublishFunc func(routingKey string, body []byte) error

// QueuedNotifier hands events to a background goroutine so a slow broker
// never blocks scoring. Events are dropped when the buffer is full.
type QueuedNotifier struct {
	publish  PublishFunc
	queue    chan models.BatchEvent
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopChan chan struct{}

	// mu orders enqueues before Stop so nothing lands after the final drain.
	mu      sync.RWMutex
	stopped bool
}

func NewQueuedNotifier(publish PublishFunc, buffer int) *QueuedNotifier {
	if buffer <= 0 {
		buffer = 100
	}
	return &QueuedNotifier{
		publish:  publish,
		queue:    make(chan models.BatchEvent, buffer),
		stopChan: make(chan struct{}),
	}
}

func (n *QueuedNotifier) Start() {
	n.wg.Add(1)
	go n.run()
	log.Println("✅ Progress publisher started")
}

// Stop drains queued events and waits for the publisher goroutine.
func (n *QueuedNotifier) Stop() {
	n.stopOnce.Do(func() {
		n.mu.Lock()
		n.stopped = true
		close(n.stopChan)
		n.mu.Unlock()

		n.wg.Wait()
		log.Println("✅ Progress publisher stopped")
	})
}

func (n *QueuedNotifier) Notify(_ context.Context, event models.BatchEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.stopped {
		return
	}

	select {
	case n.queue <- event:
	default:
		log.Printf("⚠️  Progress queue full, dropping %s event for %s\n", event.Type, event.RunID)
	}
}

func (n *QueuedNotifier) run() {
	defer n.wg.Done()
	for {
		select {
		case event := <-n.queue:
			n.deliver(event)
		case <-n.stopChan:
			for {
				select {
				case event := <-n.queue:
					n.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (n *QueuedNotifier) deliver(event models.BatchEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️  Failed to encode progress event: %v\n", err)
		return
	}

	if err := n.publish(fmt.Sprintf("analysis.%s", event.RunID), body); err != nil {
		log.Printf("⚠️  Failed to publish progress event: %v\n", err)
	}
}

// AMQPPublisher publishes progress events to a topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to close channel: %w", err)
	}
	return p.conn.Close()
}
