package product

import (
	"context"
	"errors"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"kisan-be/internal/logger"
	"kisan-be/internal/validation"
)

type Service interface {
	// Catalog lists products of category (or all), with the category
	// list derived from the full, unfiltered product set.
	Catalog(ctx context.Context, category string) (*Catalog, error)
	GetDetail(ctx context.Context, id uint) (*Detail, error)
	GetByID(ctx context.Context, id uint) (*Product, error)

	ListByVendor(ctx context.Context, vendorID uint) ([]Product, error)
	Create(ctx context.Context, vendorID uint, input NewProductInput) (*Product, error)
	AddImage(ctx context.Context, vendorID, productID uint, input NewImageInput) (*Image, error)
}

type service struct {
	repo        Repository
	placeholder string
	validate    *validatorv10.Validate
}

func NewService(repo Repository, placeholder string) Service {
	return &service{
		repo:        repo,
		placeholder: placeholder,
		validate:    validation.New(),
	}
}

func (s *service) Catalog(ctx context.Context, category string) (*Catalog, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Catalog"),
		zap.String("category", category),
	)

	all, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, err
	}

	filtered := FilterByCategory(all, category)

	ids := make([]uint, len(filtered))
	for i, p := range filtered {
		ids[i] = p.ID
	}
	images, err := s.repo.FirstImages(ctx, ids)
	if err != nil {
		log.Error("failed to load product images", zap.Error(err))
		return nil, err
	}

	items := make([]CatalogItem, 0, len(filtered))
	for _, p := range filtered {
		items = append(items, ToCatalogItem(p, images[p.ID], s.placeholder))
	}

	log.Debug("catalog loaded", zap.Int("total", len(all)), zap.Int("shown", len(items)))

	return &Catalog{
		Categories: DeriveCategories(all),
		Selected:   category,
		Items:      items,
	}, nil
}

func (s *service) GetDetail(ctx context.Context, id uint) (*Detail, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.repo.ListImages(ctx, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list product images",
			zap.Uint("product_id", id), zap.Error(err))
		return nil, err
	}

	d := ToDetail(*p, images)
	if len(d.Images) == 0 {
		d.Images = []string{s.placeholder}
	}
	return d, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByVendor(ctx context.Context, vendorID uint) ([]Product, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}

func (s *service) Create(ctx context.Context, vendorID uint, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Uint("vendor_id", vendorID),
	)

	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if err := validation.Struct(s.validate, input); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return nil, err
	}

	p, err := s.repo.Create(ctx, vendorID, input)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return p, nil
}

func (s *service) AddImage(ctx context.Context, vendorID, productID uint, input NewImageInput) (*Image, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddImage"),
		zap.Uint("vendor_id", vendorID),
		zap.Uint("product_id", productID),
	)

	if err := validation.Struct(s.validate, input); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			log.Error("failed to load product", zap.Error(err))
		}
		return nil, err
	}
	if p.VendorID != vendorID {
		log.Warn("image append rejected for non-owner")
		return nil, ErrNotOwner
	}

	img, err := s.repo.AddImage(ctx, productID, input.URL)
	if err != nil {
		log.Error("failed to add product image", zap.Error(err))
		return nil, err
	}

	log.Info("product image added", zap.Uint("image_id", img.ID))
	return img, nil
}
