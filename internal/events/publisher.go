// Package events publishes order lifecycle notices to a queue for downstream
// consumers. Publishing never affects the outcome of the order operation.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"kisan-be/internal/cloud"
)

type Type string

const (
	TypeOrderPlaced        Type = "order.placed"
	TypeOrderStatusChanged Type = "order.status_changed"
)

type Event struct {
	Type       Type      `json:"type"`
	OrderID    uint      `json:"order_id"`
	VendorID   uint      `json:"vendor_id"`
	ProductID  uint      `json:"product_id,omitempty"`
	Status     string    `json:"status"`
	PrevStatus string    `json:"prev_status,omitempty"`
	Total      float64   `json:"total,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// SQSPublisher sends each event as one JSON message.
type SQSPublisher struct {
	client   cloud.SQSAPI
	queueURL string
}

func NewSQSPublisher(client cloud.SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

func (p *SQSPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    &p.queueURL,
		MessageBody: cloud.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {DataType: cloud.String("String"), StringValue: cloud.String(string(e.Type))},
			"vendor_id":  {DataType: cloud.String("Number"), StringValue: cloud.String(fmt.Sprint(e.VendorID))},
		},
	}

	if _, err := p.client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// Nop discards events. Used when no queue is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
