package order

import (
	"context"
	"errors"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"kisan-be/internal/apperror"
	"kisan-be/internal/events"
	"kisan-be/internal/idempotency"
	"kisan-be/internal/logger"
	"kisan-be/internal/metrics"
	"kisan-be/internal/money"
	"kisan-be/internal/product"
	"kisan-be/internal/validation"
)

type Service interface {
	// PlaceOrder validates input, then writes exactly one order row. The
	// bool is true when key matched an order placed earlier and nothing
	// was written.
	PlaceOrder(ctx context.Context, purchaserEmail string, input CheckoutInput, key string) (*Receipt, bool, error)
	ListPurchaserOrders(ctx context.Context, email string) ([]*Order, error)

	ListVendorOrders(ctx context.Context, vendorID uint) ([]*Order, error)
	AdvanceStatus(ctx context.Context, vendorID, orderID uint, target Status) (*Order, error)

	ListOrders(ctx context.Context, opts ListOptions) ([]*Order, error)
}

type ProductReader interface {
	GetByID(ctx context.Context, id uint) (*product.Product, error)
}

type Options struct {
	Policy      Policy
	Placeholder string
}

type service struct {
	repo     Repository
	products ProductReader
	idem     idempotency.Store
	events   events.Publisher
	opts     Options
	validate *validatorv10.Validate
	nowFunc  func() time.Time
}

func NewService(
	repo Repository,
	products ProductReader,
	idem idempotency.Store,
	pub events.Publisher,
	opts Options,
) Service {
	if pub == nil {
		pub = events.Nop{}
	}
	if opts.Policy == "" {
		opts.Policy = PolicyStrict
	}
	return &service{
		repo:     repo,
		products: products,
		idem:     idem,
		events:   pub,
		opts:     opts,
		validate: newValidator(),
		nowFunc:  time.Now,
	}
}

func (s *service) PlaceOrder(
	ctx context.Context,
	purchaserEmail string,
	input CheckoutInput,
	key string,
) (*Receipt, bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("product_id", input.ProductID),
	)
	defer metrics.StartTimer(metrics.PlaceOrderLatency).Stop()

	if purchaserEmail == "" {
		return nil, false, ErrUnauthorized
	}

	// 1. Validate before touching the backend
	input.Quantity = ClampQuantity(input.Quantity)
	if err := validation.Struct(s.validate, input); err != nil {
		log.Info("checkout rejected by validation", zap.Any("fields", apperror.FieldsOf(err)))
		return nil, false, err
	}

	// 2. Deduplicate retries of the same submission
	if key != "" && s.idem != nil {
		receipt, replayed, err := s.reserve(ctx, purchaserEmail, key)
		if err != nil || replayed {
			return receipt, replayed, err
		}
	}

	o, err := s.place(ctx, purchaserEmail, input)
	if err != nil {
		metrics.Inc(metrics.OrdersFailed)
		if key != "" && s.idem != nil {
			if relErr := s.idem.Release(ctx, key); relErr != nil {
				log.Warn("failed to release idempotency key", zap.Error(relErr))
			}
		}
		return nil, false, err
	}

	if key != "" && s.idem != nil {
		if err := s.idem.Complete(ctx, key, o.ID); err != nil {
			log.Warn("failed to complete idempotency key", zap.Uint("order_id", o.ID), zap.Error(err))
		}
	}

	metrics.Inc(metrics.OrdersPlaced)
	s.publish(ctx, events.Event{
		Type:       events.TypeOrderPlaced,
		OrderID:    o.ID,
		VendorID:   o.VendorID,
		ProductID:  o.ProductID,
		Status:     string(o.Status),
		Total:      o.Total,
		OccurredAt: o.CreatedAt,
	})

	log.Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.Uint("vendor_id", o.VendorID),
		zap.Int("quantity", o.Quantity),
		zap.Float64("total", o.Total),
		zap.String("payment_method", string(o.PaymentMethod)),
	)

	return ToReceipt(o), false, nil
}

// reserve claims key. A completed key replays its receipt.
func (s *service) reserve(ctx context.Context, email, key string) (*Receipt, bool, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "PlaceOrder"))
	scope := "user:" + email

	rec, created, err := s.idem.Reserve(ctx, scope, key)
	if err != nil {
		log.Error("idempotency reserve failed", zap.Error(err))
		return nil, false, apperror.Backend(err)
	}
	if created {
		return nil, false, nil
	}
	if rec.Scope != scope {
		return nil, false, ErrKeyReused
	}
	if rec.Status != idempotency.StatusDone {
		return nil, false, ErrSubmissionPending
	}

	o, err := s.repo.GetByID(ctx, rec.OrderID)
	if err != nil {
		log.Error("failed to load replayed order", zap.Uint("order_id", rec.OrderID), zap.Error(err))
		return nil, false, err
	}

	metrics.Inc(metrics.OrdersReplayed)
	log.Info("checkout replayed", zap.Uint("order_id", o.ID))
	return ToReceipt(o), true, nil
}

func (s *service) place(ctx context.Context, email string, input CheckoutInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "PlaceOrder"))

	p, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, err
		}
		log.Error("failed to load product", zap.Error(err))
		return nil, apperror.Backend(err)
	}

	o := &Order{
		UserEmail:     email,
		ProductID:     p.ID,
		VendorID:      p.VendorID,
		Quantity:      input.Quantity,
		Total:         money.Total(p.Price, input.Quantity),
		Shipping:      input.Shipping,
		PaymentMethod: input.PaymentMethod,
		Status:        StatusProcessing,
		ProductName:   p.Name,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, apperror.Backend(err)
	}
	return o, nil
}

func (s *service) ListPurchaserOrders(ctx context.Context, email string) ([]*Order, error) {
	if email == "" {
		return nil, ErrUnauthorized
	}
	orders, err := s.repo.ListByPurchaser(ctx, email)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list purchaser orders", zap.Error(err))
		return nil, apperror.Backend(err)
	}
	return withPlaceholder(orders, s.opts.Placeholder), nil
}

func (s *service) ListVendorOrders(ctx context.Context, vendorID uint) ([]*Order, error) {
	orders, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list vendor orders",
			zap.Uint("vendor_id", vendorID), zap.Error(err))
		return nil, apperror.Backend(err)
	}
	return withPlaceholder(orders, s.opts.Placeholder), nil
}

func (s *service) AdvanceStatus(ctx context.Context, vendorID, orderID uint, target Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdvanceStatus"),
		zap.Uint("vendor_id", vendorID),
		zap.Uint("order_id", orderID),
		zap.String("target", string(target)),
	)
	defer metrics.StartTimer(metrics.AdvanceStatusLatency).Stop()

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, ErrOrderNotFound) {
			log.Error("failed to load order", zap.Error(err))
			return nil, apperror.Backend(err)
		}
		return nil, err
	}
	// another vendor's order is reported as missing
	if o.VendorID != vendorID {
		log.Warn("status update for foreign order")
		return nil, ErrOrderNotFound
	}

	next, err := s.opts.Policy.Transition(o.Status, target)
	if err != nil {
		metrics.Inc(metrics.OrderStatusRejected)
		log.Info("status transition rejected", zap.String("from", string(o.Status)), zap.Error(err))
		return nil, err
	}

	updatedAt, err := s.repo.UpdateStatus(ctx, orderID, vendorID, o.Status, next)
	if err != nil {
		if errors.Is(err, ErrStatusConflict) {
			log.Warn("status changed concurrently")
			return nil, err
		}
		log.Error("failed to update order status", zap.Error(err))
		return nil, apperror.Backend(err)
	}

	prev := o.Status
	o.Status = next
	o.UpdatedAt = updatedAt
	if o.ImageURL == "" {
		o.ImageURL = s.opts.Placeholder
	}

	metrics.Inc(metrics.OrderStatusUpdated)
	s.publish(ctx, events.Event{
		Type:       events.TypeOrderStatusChanged,
		OrderID:    o.ID,
		VendorID:   o.VendorID,
		ProductID:  o.ProductID,
		Status:     string(next),
		PrevStatus: string(prev),
		OccurredAt: s.nowFunc(),
	})

	log.Info("order status updated", zap.String("from", string(prev)))
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, opts ListOptions) ([]*Order, error) {
	orders, err := s.repo.List(ctx, opts)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list orders", zap.Error(err))
		return nil, apperror.Backend(err)
	}
	return orders, nil
}

func (s *service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		metrics.Inc(metrics.EventsPublishFailed)
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("type", string(e.Type)), zap.Uint("order_id", e.OrderID), zap.Error(err))
	}
}
