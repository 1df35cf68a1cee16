package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-application-system/internal/event"
	"credit-application-system/internal/infrastructure/monitoring"
	"credit-application-system/internal/pkg/apperrors"
)

const customerNotFound = "Customer not found by repository"

type CustomerService interface {
	Save(ctx context.Context, customer *Customer) (*Customer, error)
	FindByID(ctx context.Context, customerID int64) (*Customer, error)
	Update(ctx context.Context, customerID int64, fields UpdateFields) (*Customer, error)
	Delete(ctx context.Context, customerID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   Repository
	pub    event.Publisher
	logger *slog.Logger
}

// NewCustomerService wires the service. A nil publisher disables domain events.
func NewCustomerService(repo Repository, publisher event.Publisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		pub:    publisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID: cust.ID,
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		Email:      cust.Email,
		Income:     cust.Income.StringFixed(2),
		ZipCode:    cust.Address.ZipCode,
		Street:     cust.Address.Street,
		CreatedAt:  cust.CreatedAt,
		UpdatedAt:  cust.UpdatedAt,
	}
}

func (s *customerService) Save(ctx context.Context, customer *Customer) (*Customer, error) {
	if customer == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	// A set ID would send the repository down its update path.
	if customer.ID != 0 {
		return nil, fmt.Errorf("%w: new customer must not carry an id, got %d", apperrors.ErrInvalidArgument, customer.ID)
	}
	logCtx := s.logger.With(slog.String("email", customer.Email))
	logCtx.InfoContext(ctx, "Attempting to save customer")

	if err := s.repo.Save(ctx, customer); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logCtx = logCtx.With(slog.Int64("customerID", customer.ID))
	monitoring.RecordCustomerRegistered()
	logCtx.InfoContext(ctx, "Customer saved, publishing creation event")

	if s.pub != nil {
		created := event.CustomerEvent{Timestamp: time.Now(), Payload: NewCustomerEventPayload(customer)}
		if pubErr := s.pub.PublishCustomerCreated(ctx, created); pubErr != nil {
			logCtx.ErrorContext(ctx, "Customer saved, but FAILED to publish creation event", slog.Any("error", pubErr))
		}
	}

	return customer, nil
}

func (s *customerService) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.DebugContext(ctx, "Calling repository FindByID")

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, apperrors.NewNotFoundError("Id %d not found", customerID)
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	return customer, nil
}

func (s *customerService) Update(ctx context.Context, customerID int64, fields UpdateFields) (*Customer, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	customer, err := s.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.ApplyUpdate(fields)

	if err := s.repo.Save(ctx, customer); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Id %d not found", customerID)
		}
		return nil, fmt.Errorf("failed to update customer %d: %w", customerID, err)
	}

	if s.pub != nil {
		updated := event.CustomerEvent{Timestamp: time.Now(), Payload: NewCustomerEventPayload(customer)}
		if pubErr := s.pub.PublishCustomerUpdated(ctx, updated); pubErr != nil {
			logCtx.ErrorContext(ctx, "Customer updated, but FAILED to publish update event", slog.Any("error", pubErr))
		}
	}

	logCtx.InfoContext(ctx, "Successfully updated customer")
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, customerID int64) error {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	if _, err := s.FindByID(ctx, customerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer disappeared before delete completed")
			return apperrors.NewNotFoundError("Id %d not found", customerID)
		}
		logCtx.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	if s.pub != nil {
		deleted := event.CustomerDeletedEvent{Timestamp: time.Now(), CustomerID: customerID}
		if pubErr := s.pub.PublishCustomerDeleted(ctx, deleted); pubErr != nil {
			logCtx.ErrorContext(ctx, "Customer deleted, but FAILED to publish deletion event", slog.Any("error", pubErr))
		}
	}

	logCtx.InfoContext(ctx, "Successfully deleted customer")
	return nil
}
