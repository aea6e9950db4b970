// Package domain provides the generic catalog service and repository contracts.
package domain

import (
	"context"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
)

// Entity is what CatalogService needs from a catalog item.
type Entity interface {
	entity.Validatable
	GetID() id.ID

	// Snapshot returns the audited fields as display-ready scalars.
	Snapshot() map[string]any
}

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search matches a case-insensitive substring of the name
	Search string

	// OrderBy specifies sorting (e.g., "name", "-stock_quantity")
	OrderBy string

	// Pagination (Limit 0 means no limit)
	Limit  int
	Offset int
}

// DefaultListFilter returns the inventory page defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		OrderBy: "name",
	}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// CatalogRepository defines CRUD operations for catalog entities.
type CatalogRepository[T Entity] interface {
	Create(ctx context.Context, entity T) error

	GetByID(ctx context.Context, id id.ID) (T, error)

	// GetForUpdate reads the row and locks it until the transaction ends.
	GetForUpdate(ctx context.Context, id id.ID) (T, error)

	// Update modifies the entity with optimistic locking on version.
	Update(ctx context.Context, entity T) error

	// Delete physically removes the row.
	Delete(ctx context.Context, id id.ID) error

	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
}

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeUpdate HookEvent = "before_update"
	AfterUpdate  HookEvent = "after_update"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes hooks for event in registration order, stopping at the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeDelete registers a hook to run before delete.
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) {
	r.On(BeforeDelete, hook)
}
