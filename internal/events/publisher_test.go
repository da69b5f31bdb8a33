package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &sqs.SendMessageOutput{}, nil
}

func TestSQSPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends JSON body with attributes", func(t *testing.T) {
		client := &fakeSQS{}
		p := NewSQSPublisher(client, "https://sqs.local/orders")

		err := p.Publish(ctx, Event{
			Type:       TypeOrderStatusChanged,
			OrderID:    42,
			VendorID:   7,
			Status:     "shipped",
			PrevStatus: "processing",
			OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Len(t, client.inputs, 1)

		in := client.inputs[0]
		assert.Equal(t, "https://sqs.local/orders", *in.QueueUrl)
		assert.Equal(t, "order.status_changed", *in.MessageAttributes["event_type"].StringValue)
		assert.Equal(t, "7", *in.MessageAttributes["vendor_id"].StringValue)

		var body Event
		require.NoError(t, json.Unmarshal([]byte(*in.MessageBody), &body))
		assert.Equal(t, uint(42), body.OrderID)
		assert.Equal(t, "processing", body.PrevStatus)
	})

	t.Run("Wraps send errors", func(t *testing.T) {
		p := NewSQSPublisher(&fakeSQS{err: errors.New("access denied")}, "q")
		err := p.Publish(ctx, Event{Type: TypeOrderPlaced})
		assert.ErrorContains(t, err, "send message: access denied")
	})
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), Event{}))
}
