// Package fulfillment keeps a vendor's order list on the device and applies
// status changes only once the backend has accepted them.
package fulfillment

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"kisan-be/internal/logger"
	"kisan-be/internal/order"
)

// Backend is the vendor-facing part of the order API. The caller's identity
// is carried by the backend itself (session token or request context).
type Backend interface {
	ListVendorOrders(ctx context.Context) ([]*order.Order, error)
	AdvanceStatus(ctx context.Context, orderID uint, target order.Status) (*order.Order, error)
}

type Board struct {
	mu      sync.RWMutex
	backend Backend
	orders  []*order.Order
	index   map[uint]int
}

func NewBoard(backend Backend) *Board {
	return &Board{backend: backend, index: map[uint]int{}}
}

// Load replaces the board with the backend's current list. On error the
// previous list is kept.
func (b *Board) Load(ctx context.Context) error {
	orders, err := b.backend.ListVendorOrders(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to load vendor orders", zap.Error(err))
		return err
	}

	index := make(map[uint]int, len(orders))
	for i, o := range orders {
		index[o.ID] = i
	}

	b.mu.Lock()
	b.orders = orders
	b.index = index
	b.mu.Unlock()
	return nil
}

// Orders returns a copy of the current entries.
func (b *Board) Orders() []order.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]order.Order, len(b.orders))
	for i, o := range b.orders {
		out[i] = *o
	}
	return out
}

func (b *Board) Get(orderID uint) (order.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, ok := b.index[orderID]
	if !ok {
		return order.Order{}, false
	}
	return *b.orders[i], true
}

// Advance asks the backend to move orderID to target. The local entry changes
// only after the backend confirms; on error it keeps its previous status.
func (b *Board) Advance(ctx context.Context, orderID uint, target order.Status) (order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "Advance"),
		zap.Uint("order_id", orderID),
		zap.String("target", string(target)),
	)

	updated, err := b.backend.AdvanceStatus(ctx, orderID, target)
	if err != nil {
		log.Warn("status update not applied", zap.Error(err))
		current, _ := b.Get(orderID)
		return current, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.index[orderID]
	if !ok {
		b.index[orderID] = len(b.orders)
		b.orders = append(b.orders, updated)
		return *updated, nil
	}

	entry := b.orders[i]
	entry.Status = updated.Status
	if !updated.UpdatedAt.IsZero() {
		entry.UpdatedAt = updated.UpdatedAt
	}
	log.Info("status update applied")
	return *entry, nil
}
