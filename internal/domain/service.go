package domain

import (
	"context"
	"fmt"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/tx"
	"stockmaster/internal/domain/audit"
	"stockmaster/pkg/logger"
)

// CatalogService provides CRUD for a catalog entity. Every mutation runs in
// one transaction together with its hooks and its audit entry.
type CatalogService[T Entity] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	audit     audit.Recorder
	hooks     *HookRegistry[T]

	// entityName for error messages and the audit trail
	entityName string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T Entity] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager
	Audit      audit.Recorder // optional
	EntityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T Entity](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		audit:      cfg.Audit,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if _, ok := apperror.AsAppError(err); ok {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, entityID id.ID) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID)
	}
	if _, ok := apperror.AsAppError(err); ok {
		return err
	}
	return apperror.NewDatabase(err).WithDetail("entity", s.entityName)
}

func (s *CatalogService[T]) record(ctx context.Context, entityID id.ID, action audit.Action, changes map[string]audit.Change) error {
	if s.audit == nil || len(changes) == 0 {
		return nil
	}
	if err := s.audit.Record(ctx, s.entityName, entityID, action, changes); err != nil {
		return fmt.Errorf("audit %s %s: %w", action, s.entityName, err)
	}
	return nil
}

// Create validates and inserts a new entity.
func (s *CatalogService[T]) Create(ctx context.Context, entity T) error {
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.Run(ctx, BeforeCreate, entity); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, entity); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		if err := s.record(ctx, entity.GetID(), audit.ActionCreate, audit.Created(entity.Snapshot())); err != nil {
			return err
		}
		return s.hooks.Run(ctx, AfterCreate, entity)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, s.entityName+" created", "id", entity.GetID())
	return nil
}

// GetByID retrieves an entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		var zero T
		return zero, s.normalizeGetErr(err, entityID)
	}
	return entity, nil
}

// Update locks the entity, applies mutate and saves the result. Fields that
// changed are written to the audit trail.
func (s *CatalogService[T]) Update(ctx context.Context, entityID id.ID, mutate func(T) error) (T, error) {
	var updated T

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, entityID)
		if err != nil {
			return s.normalizeGetErr(err, entityID)
		}

		before := current.Snapshot()
		if err := mutate(current); err != nil {
			return err
		}
		if err := current.Validate(ctx); err != nil {
			return s.normalizeValidationErr(err)
		}

		if err := s.hooks.Run(ctx, BeforeUpdate, current); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, current); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		if err := s.record(ctx, entityID, audit.ActionUpdate, audit.Diff(before, current.Snapshot())); err != nil {
			return err
		}
		if err := s.hooks.Run(ctx, AfterUpdate, current); err != nil {
			return err
		}

		updated = current
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	logger.Info(ctx, s.entityName+" updated", "id", entityID)
	return updated, nil
}

// Delete physically removes the entity and returns its last state.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) (T, error) {
	var deleted T

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, entityID)
		if err != nil {
			return s.normalizeGetErr(err, entityID)
		}

		if err := s.hooks.Run(ctx, BeforeDelete, current); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		if err := s.record(ctx, entityID, audit.ActionDelete, audit.Deleted(current.Snapshot())); err != nil {
			return err
		}
		if err := s.hooks.Run(ctx, AfterDelete, current); err != nil {
			return err
		}

		deleted = current
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	logger.Info(ctx, s.entityName+" deleted", "id", entityID)
	return deleted, nil
}

// List retrieves entities with filtering and pagination.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	res, err := s.repo.List(ctx, filter)
	if err != nil {
		return ListResult[T]{}, fmt.Errorf("list %s: %w", s.entityName, err)
	}
	return res, nil
}

// History returns the audit trail of an entity, newest first.
func (s *CatalogService[T]) History(ctx context.Context, entityID id.ID, limit int) ([]audit.Entry, error) {
	if s.audit == nil {
		return []audit.Entry{}, nil
	}
	entries, err := s.audit.History(ctx, s.entityName, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s history: %w", s.entityName, err)
	}
	return entries, nil
}
