package product

import (
	"context"
	"fmt"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/tx"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/audit"
	"stockmaster/pkg/logger"
)

// EntityName identifies products in errors and the audit trail.
const EntityName = "product"

// DeletePolicy decides what happens to recorded sales when their product
// is deleted.
type DeletePolicy string

const (
	// DeleteRestrict refuses to delete a product that has sales.
	DeleteRestrict DeletePolicy = "restrict"
	// DeleteCascade deletes the product's sales in the same transaction.
	DeleteCascade DeletePolicy = "cascade"
)

// ParseDeletePolicy validates a configured policy name.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(s) {
	case DeleteRestrict, DeleteCascade:
		return DeletePolicy(s), nil
	case "":
		return DeleteRestrict, nil
	}
	return "", fmt.Errorf("unknown product delete policy %q", s)
}

// Service provides business logic for the product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo   Repository
	sales  SalesLedger
	policy DeletePolicy
}

// ServiceConfig wires the product service.
type ServiceConfig struct {
	Repo         Repository
	Sales        SalesLedger
	TxManager    tx.Manager
	Audit        audit.Recorder
	DeletePolicy DeletePolicy
}

// NewService creates a new product service.
func NewService(cfg ServiceConfig) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       cfg.Repo,
		TxManager:  cfg.TxManager,
		Audit:      cfg.Audit,
		EntityName: EntityName,
	})

	policy := cfg.DeletePolicy
	if policy == "" {
		policy = DeleteRestrict
	}

	svc := &Service{
		CatalogService: base,
		repo:           cfg.Repo,
		sales:          cfg.Sales,
		policy:         policy,
	}

	base.Hooks().OnBeforeDelete(svc.applyDeletePolicy)

	return svc
}

// Create adds a product to the catalog.
func (s *Service) Create(ctx context.Context, f Fields) (*Product, error) {
	p := NewProduct(f)
	if err := s.CatalogService.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update overwrites the editable fields of a product. Recorded sales keep
// the prices they were made at.
func (s *Service) Update(ctx context.Context, productID id.ID, f Fields) (*Product, error) {
	return s.CatalogService.Update(ctx, productID, func(p *Product) error {
		p.Apply(f)
		p.Touch()
		return nil
	})
}

// ListInStock returns the products that can be sold right now.
func (s *Service) ListInStock(ctx context.Context) ([]*Product, error) {
	items, err := s.repo.ListInStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("list in-stock products: %w", err)
	}
	return items, nil
}

// applyDeletePolicy runs inside the delete transaction.
func (s *Service) applyDeletePolicy(ctx context.Context, p *Product) error {
	if s.sales == nil {
		return nil
	}

	count, err := s.sales.CountByProduct(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("count sales of product: %w", err)
	}
	if count == 0 {
		return nil
	}

	if s.policy != DeleteCascade {
		return apperror.NewConflict(fmt.Sprintf("%q has %d recorded sale(s) and cannot be deleted", p.Name, count)).
			WithDetail("product_id", p.ID.String()).
			WithDetail("sales", count)
	}

	removed, err := s.sales.DeleteByProduct(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("delete sales of product: %w", err)
	}
	logger.Warn(ctx, "deleted sales together with product", "product_id", p.ID, "sales", removed)
	return nil
}
