package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kisan-be/internal/admin"
	"kisan-be/internal/order"
	"kisan-be/internal/product"
	"kisan-be/internal/user"
	"kisan-be/internal/vendor"
)

type MockProductService struct{ mock.Mock }

func (m *MockProductService) Catalog(ctx context.Context, category string) (*product.Catalog, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Catalog), args.Error(1)
}

func (m *MockProductService) GetDetail(ctx context.Context, id uint) (*product.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Detail), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) ListByVendor(ctx context.Context, vendorID uint) ([]product.Product, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, vendorID uint, input product.NewProductInput) (*product.Product, error) {
	args := m.Called(ctx, vendorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) AddImage(ctx context.Context, vendorID, productID uint, input product.NewImageInput) (*product.Image, error) {
	args := m.Called(ctx, vendorID, productID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Image), args.Error(1)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) PlaceOrder(ctx context.Context, email string, input order.CheckoutInput, key string) (*order.Receipt, bool, error) {
	args := m.Called(ctx, email, input, key)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*order.Receipt), args.Bool(1), args.Error(2)
}

func (m *MockOrderService) ListPurchaserOrders(ctx context.Context, email string) ([]*order.Order, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) ListVendorOrders(ctx context.Context, vendorID uint) ([]*order.Order, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) AdvanceStatus(ctx context.Context, vendorID, orderID uint, target order.Status) (*order.Order, error) {
	args := m.Called(ctx, vendorID, orderID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, opts order.ListOptions) ([]*order.Order, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, input user.RegisterInput) (*user.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, input user.LoginInput) (*user.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) GetPrefill(ctx context.Context, id uint) (*user.Prefill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Prefill), args.Error(1)
}

type MockVendorService struct{ mock.Mock }

func (m *MockVendorService) Register(ctx context.Context, input vendor.RegisterInput) (*vendor.Vendor, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Vendor), args.Error(1)
}

func (m *MockVendorService) Login(ctx context.Context, input vendor.LoginInput) (*vendor.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Session), args.Error(1)
}

func (m *MockVendorService) GetByID(ctx context.Context, id uint) (*vendor.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Vendor), args.Error(1)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) Login(ctx context.Context, input admin.LoginInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockAdminService) Overview(ctx context.Context) (*admin.Overview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Overview), args.Error(1)
}
