package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/config"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/domain/documents/sale"
	"stockmaster/internal/domain/reports"
	v1 "stockmaster/internal/infrastructure/http/v1"
	"stockmaster/internal/infrastructure/http/v1/flash"
	"stockmaster/internal/infrastructure/http/v1/views"
	"stockmaster/internal/infrastructure/storage/postgres"
	"stockmaster/internal/infrastructure/storage/postgres/catalog_repo"
	"stockmaster/internal/infrastructure/storage/postgres/document_repo"
	"stockmaster/internal/infrastructure/storage/postgres/report_repo"
	"stockmaster/pkg/logger"
	"stockmaster/pkg/numerator"
)

// buildRouter wires repositories, services and handlers around one pool.
func buildRouter(cfg *config.Config, log *logger.Logger, pool *postgres.Pool) (*gin.Engine, error) {
	txManager := postgres.NewTxManager(pool)

	auditStore, err := postgres.NewAuditStore(txManager)
	if err != nil {
		return nil, fmt.Errorf("init audit store: %w", err)
	}

	productRepo := catalog_repo.NewProductRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	numbers := numerator.NewWithProvider(func(ctx context.Context) numerator.Querier {
		return txManager.GetQuerier(ctx)
	})

	productService := product.NewService(product.ServiceConfig{
		Repo:         productRepo,
		Sales:        saleRepo,
		TxManager:    txManager,
		Audit:        auditStore,
		DeletePolicy: cfg.DeletePolicy(),
	})

	saleService := sale.NewService(sale.ServiceConfig{
		Repo:      saleRepo,
		Stock:     productRepo,
		Numerator: numbers,
		TxManager: txManager,
	})

	reportService := reports.NewService(reportRepo, txManager, nil)

	flashStore, err := flash.NewStore(cfg.SecretKey, cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	tmpl, err := views.Load(cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return v1.NewRouter(v1.RouterConfig{
		Logger:    log,
		DB:        pool,
		Products:  productService,
		Sales:     saleService,
		Reports:   reportService,
		Flash:     flashStore,
		Templates: tmpl,
		Currency:  cfg.Currency,
		Release:   cfg.IsProduction(),
	}), nil
}
