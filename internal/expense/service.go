package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/splitmate/splitmate/internal"
	"github.com/splitmate/splitmate/internal/core/events"
	"github.com/splitmate/splitmate/internal/ledger"
	"github.com/splitmate/splitmate/pkg/logger"
)

// EventPublisher is the slice of the event bus this service needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Repository defines the data access methods for expenses.
type Repository interface {
	Create(expense *Expense) error
	GetByID(id string) (*Expense, error)
	List(filter ListExpensesDTO) ([]*Expense, error)
	Delete(id string) error
}

// Service handles expense business logic.
type Service struct {
	repo   Repository
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// CreateExpense validates and persists a new expense, then announces it on
// the event bus so listeners like the snapshot refresher can react.
func (s *Service) CreateExpense(ctx context.Context, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "paid_by", dto.PaidBy)
		return nil, err
	}

	now := time.Now()
	exp := &Expense{
		ID:           uuid.New().String(),
		Title:        dto.Title,
		Amount:       dto.Amount,
		Date:         dto.Date,
		Category:     dto.Category,
		PaidBy:       dto.PaidBy,
		GroupID:      dto.GroupID,
		SplitType:    dto.SplitType,
		SplitBetween: dto.SplitBetween,
		SplitDetails: dto.toSplitDetails(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(exp); err != nil {
		s.logger.Error("failed to create expense", "error", err, "paid_by", dto.PaidBy)
		return nil, err
	}

	// Handlers reached through the bus log with the expense already tagged.
	ctx = logger.With(ctx, "expense_id", exp.ID)
	if err := s.bus.Publish(ctx, events.NewExpenseCreatedEvent(
		exp.ID, exp.Title, exp.Amount, exp.PaidBy, exp.GroupID,
		ledger.Participants(exp.ToLedger()),
	)); err != nil {
		s.logger.Error("failed to publish expense created event", "error", err, "expense_id", exp.ID)
	}

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"paid_by", exp.PaidBy,
		"amount", exp.Amount,
		"split_type", exp.SplitType)

	return exp, nil
}

func (s *Service) GetExpense(id string) (*Expense, error) {
	exp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, errors.ErrExpenseNotFound
	}
	return exp, nil
}

// ListExpenses returns expenses matching the filter, newest first. An empty
// filter returns everything, the shape a snapshot fetch wants.
func (s *Service) ListExpenses(filter ListExpensesDTO) ([]*Expense, error) {
	expenses, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", filter.UserID, "group_id", filter.GroupID)
		return nil, err
	}
	return expenses, nil
}

func (s *Service) DeleteExpense(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		s.logger.Error("expense not found for deletion", "error", err, "expense_id", id)
		return errors.ErrExpenseNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return err
	}
	s.logger.Info("expense deleted", "expense_id", id)
	return nil
}
