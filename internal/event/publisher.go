package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"decision-service/internal/models"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RecommendationQueue receives recommendation lifecycle events consumed by
// the notification service.
const RecommendationQueue = "recommendation_events"

// RecommendationsGeneratedEvent announces a freshly generated recommendation
// list for a farm.
type RecommendationsGeneratedEvent struct {
	FarmID      uuid.UUID           `json:"farm_id"`
	Count       int                 `json:"count"`
	UrgentCount int                 `json:"urgent_count"`
	TopDecision *TopDecisionSummary `json:"top_decision,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
}

type TopDecisionSummary struct {
	DecisionID uuid.UUID               `json:"decision_id"`
	Type       models.DecisionType     `json:"type"`
	Priority   models.DecisionPriority `json:"priority"`
	Title      string                  `json:"title"`
	TotalScore float64                 `json:"total_score"`
}

// RecommendationPublisher publishes recommendation events to RabbitMQ.
type RecommendationPublisher struct {
	conn *RabbitMQConnection

	mu                sync.Mutex
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

func NewRecommendationPublisher(conn *RabbitMQConnection) *RecommendationPublisher {
	return &RecommendationPublisher{conn: conn}
}

// PublishGenerated publishes a recommendations-generated event.
func (p *RecommendationPublisher) PublishGenerated(ctx context.Context, event RecommendationsGeneratedEvent) error {
	if p.conn == nil || p.conn.Channel == nil {
		return fmt.Errorf("rabbitmq connection is not configured")
	}

	_, err := p.conn.Channel.QueueDeclare(
		RecommendationQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",
		RecommendationQueue,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish recommendation event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Recommendation event published",
		"queue", RecommendationQueue,
		"farm_id", event.FarmID,
		"count", event.Count,
		"urgent_count", event.UrgentCount,
	)

	return nil
}

// Stats returns publish counters for health reporting.
func (p *RecommendationPublisher) Stats() (published, failed int64, last time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.messagesPublished, p.messagesFailed, p.lastPublishTime
}
