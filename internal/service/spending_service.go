package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/spending-api/internal/domain"
	"github.com/phrazzld/spending-api/internal/platform/logger"
	"github.com/phrazzld/spending-api/internal/store"
)

// SpendingService manages spending records on behalf of an authenticated caller.
// The caller argument is the email taken from the caller's access token; it is
// the only input that decides ownership.
type SpendingService interface {
	// List returns the caller's records in creation order.
	List(ctx context.Context, caller string) ([]*domain.Spending, error)

	// Get returns one record. Returns store.ErrSpendingNotFound if it does not
	// exist and ErrNotOwned if it belongs to someone else.
	Get(ctx context.Context, caller string, id uuid.UUID) (*domain.Spending, error)

	// Create stores a new record owned by caller. Any id or creator in
	// record is ignored.
	Create(ctx context.Context, caller string, record domain.Spending) (*domain.Spending, error)

	// Update applies the fields present in patch and returns the stored result.
	// An empty patch returns the record unchanged. Errors as for Get.
	Update(ctx context.Context, caller string, id uuid.UUID, patch domain.SpendingPatch) (*domain.Spending, error)

	// Delete removes a record. Errors as for Get.
	Delete(ctx context.Context, caller string, id uuid.UUID) error
}

// SpendingServiceImpl implements the SpendingService interface
type SpendingServiceImpl struct {
	spendings store.Collection[*domain.Spending]
	db        *sql.DB
	logger    *slog.Logger
}

var _ SpendingService = (*SpendingServiceImpl)(nil)

// NewSpendingService creates a new SpendingService. When db is non-nil, the
// ownership check and the write of Update and Delete share a transaction.
func NewSpendingService(spendings store.Collection[*domain.Spending], db *sql.DB, log *slog.Logger) *SpendingServiceImpl {
	if log == nil {
		log = slog.Default()
	}
	return &SpendingServiceImpl{
		spendings: spendings,
		db:        db,
		logger:    log.With("component", "spending_service"),
	}
}

// List implements SpendingService.List.
func (s *SpendingServiceImpl) List(ctx context.Context, caller string) ([]*domain.Spending, error) {
	records, err := s.spendings.GetAll(ctx, store.Filter{"creator": domain.NormalizeEmail(caller)})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list spendings", "error", err)
		return nil, NewServiceError("spending", "list", "failed to list records", err)
	}
	return records, nil
}

// Get implements SpendingService.Get.
func (s *SpendingServiceImpl) Get(ctx context.Context, caller string, id uuid.UUID) (*domain.Spending, error) {
	return s.fetchOwned(ctx, s.spendings, caller, id, "get")
}

// Create implements SpendingService.Create.
func (s *SpendingServiceImpl) Create(ctx context.Context, caller string, record domain.Spending) (*domain.Spending, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record.ID = uuid.Nil
	record.Creator = domain.NormalizeEmail(caller)
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.spendings.Save(ctx, &record); err != nil {
		log.Error("failed to save spending", "error", err)
		return nil, NewServiceError("spending", "create", "failed to save record", err)
	}

	log.Info("spending created", "spending_id", record.ID)
	return &record, nil
}

// Update implements SpendingService.Update.
func (s *SpendingServiceImpl) Update(
	ctx context.Context,
	caller string,
	id uuid.UUID,
	patch domain.SpendingPatch,
) (*domain.Spending, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Spending
	err := withCollection(ctx, s.db, s.spendings, func(ctx context.Context, spendings store.Collection[*domain.Spending]) error {
		existing, err := s.fetchOwned(ctx, spendings, caller, id, "update")
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			updated = existing
			return nil
		}
		updated, err = spendings.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, s.wrap(ctx, "update", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("spending updated", "spending_id", id)
	return updated, nil
}

// Delete implements SpendingService.Delete.
func (s *SpendingServiceImpl) Delete(ctx context.Context, caller string, id uuid.UUID) error {
	err := withCollection(ctx, s.db, s.spendings, func(ctx context.Context, spendings store.Collection[*domain.Spending]) error {
		if _, err := s.fetchOwned(ctx, spendings, caller, id, "delete"); err != nil {
			return err
		}
		deleted, err := spendings.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return store.ErrSpendingNotFound
		}
		return nil
	})
	if err != nil {
		return s.wrap(ctx, "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("spending deleted", "spending_id", id)
	return nil
}

// fetchOwned loads a record and checks it belongs to caller.
func (s *SpendingServiceImpl) fetchOwned(
	ctx context.Context,
	spendings store.Collection[*domain.Spending],
	caller string,
	id uuid.UUID,
	operation string,
) (*domain.Spending, error) {
	record, err := spendings.Get(ctx, id)
	if err != nil {
		return nil, s.wrap(ctx, operation, err)
	}
	if !record.OwnedBy(caller) {
		logger.FromContextOrDefault(ctx, s.logger).Debug("caller does not own spending",
			"spending_id", id,
			"operation", operation)
		return nil, ErrNotOwned
	}
	return record, nil
}

// wrap passes expected errors through and wraps everything else in a ServiceError.
func (s *SpendingServiceImpl) wrap(ctx context.Context, operation string, err error) error {
	var serviceErr *ServiceError
	switch {
	case store.IsNotFoundError(err):
		return store.ErrSpendingNotFound
	case errors.Is(err, ErrNotOwned), errors.Is(err, domain.ErrValidation), errors.As(err, &serviceErr):
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("spending operation failed",
		"operation", operation,
		"error", err)
	return NewServiceError("spending", operation, "storage failure", err)
}
