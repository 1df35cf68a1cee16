package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-application-system/internal/domain/customer"
	"credit-application-system/internal/event"
	"credit-application-system/internal/infrastructure/monitoring"
	"credit-application-system/internal/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	invalidDateMessage = "Invalid Date"
	accessDeniedMsg    = "Contact admin"

	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

type CreditService interface {
	Save(ctx context.Context, credit *Credit) (*Credit, error)
	FindAllByCustomer(ctx context.Context, customerID int64) ([]*Credit, error)
	FindByCreditCode(ctx context.Context, customerID int64, code uuid.UUID) (*Credit, error)
}

var _ CreditService = (*creditService)(nil)

type creditService struct {
	repo            Repository
	customerService customer.CustomerService
	pub             event.Publisher
	logger          *slog.Logger
	now             func() time.Time
}

func NewCreditService(repo Repository, cs customer.CustomerService, publisher event.Publisher, logger *slog.Logger) CreditService {
	if repo == nil {
		panic("credit repository cannot be nil")
	}
	if cs == nil {
		panic("customer service cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditService, using default stderr handler")
	}

	return &creditService{
		repo:            repo,
		customerService: cs,
		pub:             publisher,
		logger:          logger.With(slog.String("component", "creditService")),
		now:             time.Now,
	}
}

func NewCreditIssuedEvent(c *Credit) event.CreditIssuedEvent {
	return event.CreditIssuedEvent{
		Timestamp:            time.Now(),
		CreditCode:           c.CreditCode.String(),
		CustomerID:           c.CustomerID(),
		CreditValue:          c.CreditValue.StringFixed(2),
		DayFirstInstallment:  c.DayFirstInstallment.Format(time.DateOnly),
		NumberOfInstallments: c.NumberOfInstallments,
		Status:               string(c.Status),
	}
}

func (s *creditService) Save(ctx context.Context, credit *Credit) (*Credit, error) {
	if credit == nil || credit.CustomerID() == 0 {
		return nil, fmt.Errorf("%w: credit must reference a customer id", apperrors.ErrInvalidArgument)
	}
	logCtx := s.logger.With(
		slog.Int64("customerID", credit.CustomerID()),
		slog.String("creditCode", credit.CreditCode.String()),
	)
	logCtx.InfoContext(ctx, "Attempting to issue credit")

	if !credit.FirstInstallmentWithinWindow(s.now()) {
		logCtx.WarnContext(ctx, "Business rule failed: first installment outside allowed window",
			slog.String("dayFirstInstallment", credit.DayFirstInstallment.Format(time.DateOnly)))
		monitoring.RecordCreditIssued(outcomeRejected)
		return nil, apperrors.NewBusinessError(invalidDateMessage)
	}

	owner, err := s.customerService.FindByID(ctx, credit.CustomerID())
	if err != nil {
		logCtx.WarnContext(ctx, "Could not resolve credit owner", slog.Any("error", err))
		monitoring.RecordCreditIssued(outcomeRejected)
		return nil, err
	}
	credit.Customer = owner
	if credit.Status == "" {
		credit.Status = StatusCurrent
	}

	if err := s.repo.Save(ctx, credit); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save credit", slog.Any("error", err))
		monitoring.RecordCreditIssued(outcomeFailed)
		return nil, fmt.Errorf("failed to save credit: %w", err)
	}
	monitoring.RecordCreditIssued(outcomeSuccess)

	if s.pub != nil {
		if pubErr := s.pub.PublishCreditIssued(ctx, NewCreditIssuedEvent(credit)); pubErr != nil {
			logCtx.ErrorContext(ctx, "Credit saved, but FAILED to publish issued event", slog.Any("error", pubErr))
		}
	}

	logCtx.InfoContext(ctx, "Successfully issued credit", slog.Int64("creditID", credit.ID))
	return credit, nil
}

func (s *creditService) FindAllByCustomer(ctx context.Context, customerID int64) ([]*Credit, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID))

	credits, err := s.repo.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Repository error listing credits", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list credits for customer %d: %w", customerID, err)
	}
	if credits == nil {
		credits = make([]*Credit, 0)
	}

	logCtx.DebugContext(ctx, "Listed credits", slog.Int("count", len(credits)))
	return credits, nil
}

func (s *creditService) FindByCreditCode(ctx context.Context, customerID int64, code uuid.UUID) (*Credit, error) {
	logCtx := s.logger.With(slog.Int64("customerID", customerID), slog.String("creditCode", code.String()))

	credit, err := s.repo.FindByCreditCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Credit not found by repository")
			return nil, apperrors.NewBusinessError("Creditcode %s not found", code)
		}
		logCtx.ErrorContext(ctx, "Repository error finding credit", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get credit %s: %w", code, err)
	}

	if !credit.BelongsTo(customerID) {
		logCtx.WarnContext(ctx, "Credit requested by a customer that does not own it",
			slog.Int64("ownerID", credit.CustomerID()))
		return nil, apperrors.NewAccessError(accessDeniedMsg)
	}

	return credit, nil
}
