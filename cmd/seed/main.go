// Package main seeds the database with a demo catalog.
package main

import (
	"context"
	"fmt"
	"os"

	"stockmaster/internal/config"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/infrastructure/storage/postgres"
	"stockmaster/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	ctx := logger.WithLogger(context.Background(), log)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatalw("seeding failed", "error", err)
	}
	log.Info("seeding completed successfully")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	m, err := postgres.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		_ = m.Close()
		return err
	}
	if err := m.Close(); err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Pool())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	bulk := postgres.NewBulkInserter(txManager)

	return txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var count int64
		if err := txManager.GetQuerier(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		if count > 0 {
			log.Infow("catalog already populated, skipping", "products", count)
			return nil
		}

		items := demoCatalog()
		n, err := postgres.CopyStructs(ctx, bulk, "products", items)
		if err != nil {
			return err
		}
		log.Infow("demo catalog inserted", "products", n)
		return nil
	})
}

func demoCatalog() []*product.Product {
	rows := []struct {
		name    string
		stock   int
		buying  string
		selling string
	}{
		{"Rice 25kg", 40, "11500", "13500"},
		{"Vegetable oil 5L", 25, "4200", "5000"},
		{"Sugar 1kg", 120, "550", "700"},
		{"Tomato paste 400g", 80, "350", "450"},
		{"Powdered milk 400g", 30, "1900", "2300"},
		{"Laundry soap", 60, "200", "275"},
		{"Bottled water 1.5L", 200, "250", "350"},
		{"Spaghetti 500g", 90, "400", "500"},
	}

	items := make([]*product.Product, 0, len(rows))
	for _, r := range rows {
		items = append(items, product.NewProduct(product.Fields{
			Name:          r.name,
			StockQuantity: r.stock,
			BuyingPrice:   types.MustMoney(r.buying),
			SellingPrice:  types.MustMoney(r.selling),
		}))
	}
	return items
}
