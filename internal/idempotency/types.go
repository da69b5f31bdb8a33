package idempotency

import "time"

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Record tracks one client submission key. OrderID is set once the order
// row exists.
type Record struct {
	IdempotencyKey string    `dynamodbav:"idempotency_key" json:"idempotency_key"`
	Scope          string    `dynamodbav:"scope" json:"scope"`
	Status         Status    `dynamodbav:"status" json:"status"`
	OrderID        uint      `dynamodbav:"order_id,omitempty" json:"order_id,omitempty"`
	CreatedAt      time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt      time.Time `dynamodbav:"updated_at" json:"updated_at"`
	ExpiresAt      int64     `dynamodbav:"expires_at" json:"expires_at"` // epoch seconds, DynamoDB TTL
}

// Expired matches the reserve condition: a record is reusable once its
// expiry second has passed.
func (r *Record) Expired(now time.Time) bool {
	return r.ExpiresAt > 0 && now.Unix() > r.ExpiresAt
}
