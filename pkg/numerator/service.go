// Package numerator issues sequential human-readable numbers such as
// SALE-2026-00042 backed by the sys_sequences table.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier is the single method the numerator needs from pgx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuerierProvider resolves the querier for a call, typically the
// transaction carried by ctx.
type QuerierProvider func(ctx context.Context) Querier

// ResetPeriod controls when the counter starts again from 1.
type ResetPeriod string

const (
	ResetYearly ResetPeriod = "year"
	ResetNever  ResetPeriod = "never"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "SALE")
	Prefix string

	// IncludeYear adds the period year to the number
	IncludeYear bool

	// PadWidth is the minimum width of the counter (default 5)
	PadWidth int

	ResetPeriod ResetPeriod
}

// DefaultConfig returns PREFIX-YYYY-NNNNN numbering reset every year.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: ResetYearly,
	}
}

// Service allocates numbers with an UPSERT ... RETURNING per call. Run inside
// the caller's transaction it is gapless: a rolled back caller releases its
// number and concurrent callers serialize on the sequence row.
type Service struct {
	querier QuerierProvider
}

// NewWithProvider creates a service that resolves the querier per call.
func NewWithProvider(p QuerierProvider) *Service {
	return &Service{querier: p}
}

const upsertSQL = `
	INSERT INTO sys_sequences (sequence_key, current_val, updated_at)
	VALUES ($1, 1, now())
	ON CONFLICT (sequence_key) DO UPDATE
		SET current_val = sys_sequences.current_val + 1, updated_at = now()
	RETURNING current_val`

// GetNextNumber allocates and formats the next number for period.
func (s *Service) GetNextNumber(ctx context.Context, cfg Config, period time.Time) (string, error) {
	if s == nil || s.querier == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	key := buildKey(cfg, period)

	var num int64
	if err := s.querier(ctx).QueryRow(ctx, upsertSQL, key).Scan(&num); err != nil {
		return "", fmt.Errorf("next number for %s: %w", key, err)
	}

	return formatNumber(cfg, period, num), nil
}

// Next allocates a number with DefaultConfig(prefix).
func (s *Service) Next(ctx context.Context, prefix string, period time.Time) (string, error) {
	return s.GetNextNumber(ctx, DefaultConfig(prefix), period)
}

func buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case ResetYearly:
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

func formatNumber(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}
