package sale

import (
	"context"
	"fmt"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/tx"
	"stockmaster/pkg/logger"
)

// Service records sales against product stock.
type Service struct {
	repo      Repository
	stock     StockStore
	numerator Numerator
	txManager tx.Manager
	now       func() time.Time
}

// ServiceConfig wires the sale service. Now defaults to time.Now.
type ServiceConfig struct {
	Repo      Repository
	Stock     StockStore
	Numerator Numerator
	TxManager tx.Manager
	Now       func() time.Time
}

// NewService creates a new sale service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      cfg.Repo,
		stock:     cfg.Stock,
		numerator: cfg.Numerator,
		txManager: cfg.TxManager,
		now:       now,
	}
}

// Process sells req.Quantity units. The product row is locked for the whole
// transaction, so the stock check, the sale insert and the decrement either
// all commit or none does.
func (s *Service) Process(ctx context.Context, req Request) (*Receipt, error) {
	if req.Quantity <= 0 {
		return nil, apperror.NewFieldValidation("quantity_sold", "quantity must be greater than zero").
			WithDetail("requested", req.Quantity)
	}

	at := s.now().UTC()
	var receipt *Receipt

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.stock.GetForUpdate(ctx, req.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("product", req.ProductID)
			}
			return fmt.Errorf("lock product: %w", err)
		}

		if req.Quantity > p.StockQuantity {
			return apperror.NewInsufficientStock(p.ID.String(), req.Quantity, p.StockQuantity)
		}

		sale := NewSale(p, req.Quantity, at)

		sale.Number, err = s.numerator.Next(ctx, NumberPrefix, at)
		if err != nil {
			return fmt.Errorf("allocate receipt number: %w", err)
		}

		if err := sale.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, sale); err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
		if err := s.stock.DecrementStock(ctx, p.ID, req.Quantity); err != nil {
			return err
		}

		receipt = &Receipt{
			Sale:           sale,
			ProductName:    p.Name,
			RemainingStock: p.StockQuantity - req.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale recorded",
		"number", receipt.Sale.Number,
		"product_id", receipt.Sale.ProductID,
		"quantity", receipt.Sale.QuantitySold,
		"profit", receipt.Sale.ProfitRecorded.StringFixed(2),
	)
	return receipt, nil
}
