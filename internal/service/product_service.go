package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/pkg/export"
	"github.com/noah-isme/enrollplus-admin/pkg/format"
)

// ProductConfig describes the products table.
func ProductConfig() listing.Config[models.Product] {
	return listing.Config[models.Product]{
		Name: TableProducts,
		ID:   func(p models.Product) string { return p.ID },
		Search: func(p models.Product) string {
			return listing.SearchText(p.Name, p.Category, p.ID)
		},
		Dimensions: map[string]listing.Dimension[models.Product]{
			"category": {Value: func(p models.Product) string { return p.Category }},
		},
		SortKeys: map[string]listing.Comparator[models.Product]{
			"name":     listing.ByString(func(p models.Product) string { return p.Name }),
			"category": listing.ByString(func(p models.Product) string { return p.Category }),
			"price":    listing.ByNumber(func(p models.Product) float64 { return p.Price }),
			"stock":    listing.ByInt(func(p models.Product) int { return p.Stock }),
			"sales":    listing.ByInt(func(p models.Product) int { return p.Sales }),
		},
		PageSize: listing.DefaultPageSize,
	}
}

// ProductService manages the product catalogue.
type ProductService struct {
	*table[models.Product]
}

// NewProductService builds the products table from seed records.
func NewProductService(seed []models.Product, validate *validator.Validate, logger *zap.Logger, opts ...TableOption) (*ProductService, error) {
	cfg := ProductConfig()
	store, err := listing.NewStore(cfg.ID, seed)
	if err != nil {
		return nil, err
	}
	return &ProductService{table: newTable(TableProducts, store, cfg, validate, logger, opts)}, nil
}

// List returns one page of products.
func (s *ProductService) List(ctx context.Context, params listing.Params) (listing.View[models.Product], error) {
	return s.list(s.Snapshot(), params)
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Add validates and appends a new product after the submit delay.
func (s *ProductService) Add(ctx context.Context, sessionID string, req dto.CreateProductRequest) (*models.Product, error) {
	if err := s.validate(req); err != nil {
		s.metrics.RecordMutation(s.name, "add", OutcomeInvalid)
		return nil, err
	}
	product, err := s.submit(ctx, sessionID, func() (models.Product, error) {
		product := models.Product{
			ID:       s.nextID("PRD-"),
			Name:     strings.TrimSpace(req.Name),
			Category: strings.TrimSpace(req.Category),
			Price:    req.Price,
			Stock:    req.Stock,
			Sales:    req.Sales,
			Image:    req.Image,
		}
		return product, s.store.Add(product)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("product added", zap.String("id", product.ID))
	return &product, nil
}

// Update changes selected fields of a product.
func (s *ProductService) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*models.Product, error) {
	if _, err := s.get(id); err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		s.metrics.RecordMutation(s.name, "update", OutcomeInvalid)
		return nil, err
	}
	product, err := s.replace("update", id, func(current models.Product) (models.Product, error) {
		if req.Name != nil {
			current.Name = strings.TrimSpace(*req.Name)
		}
		if req.Category != nil {
			current.Category = strings.TrimSpace(*req.Category)
		}
		if req.Price != nil {
			current.Price = *req.Price
		}
		if req.Stock != nil {
			current.Stock = *req.Stock
		}
		if req.Sales != nil {
			current.Sales = *req.Sales
		}
		if req.Image != nil {
			current.Image = *req.Image
		}
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// RequestDelete opens a confirmation for removing a product.
func (s *ProductService) RequestDelete(ctx context.Context, id string) (*models.Confirmation, error) {
	product, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.requestDelete(ctx, models.ConfirmDeleteProduct, id, "Delete product "+product.Name+"?")
}

// Committers returns the confirmation handlers owned by the products table.
func (s *ProductService) Committers() map[models.ConfirmationKind]Committer {
	return map[models.ConfirmationKind]Committer{
		models.ConfirmDeleteProduct: CommitterFunc(func(ctx context.Context, c *models.Confirmation) error {
			return s.remove(c.RecordID)
		}),
	}
}

// Dataset renders every matching product for export.
func (s *ProductService) Dataset(ctx context.Context, params listing.Params) (export.Dataset, error) {
	items, err := s.matching(s.Snapshot(), params)
	if err != nil {
		return export.Dataset{}, err
	}
	columns := []export.Column{
		{Key: "id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "category", Label: "Category"},
		{Key: "price", Label: "Price"},
		{Key: "stock", Label: "Stock"},
		{Key: "sales", Label: "Sales"},
	}
	return s.dataset("Products", columns, items, func(p models.Product) []string {
		return []string{p.ID, p.Name, p.Category, format.Currency(p.Price), strconv.Itoa(p.Stock), format.Number(p.Sales)}
	}), nil
}

// NewView builds a per-session view of the products table.
func (s *ProductService) NewView() *TableView {
	return newTableView(s.table, s.table, func(items []models.Product) interface{} { return items })
}
