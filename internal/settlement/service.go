package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/splitmate/splitmate/internal"
	"github.com/splitmate/splitmate/internal/core/events"
	"github.com/splitmate/splitmate/pkg/logger"
)

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Repository defines the data access methods for settlements.
type Repository interface {
	Create(settlement *Settlement) error
	GetByID(id string) (*Settlement, error)
	List(filter ListSettlementsDTO) ([]*Settlement, error)
	ListBetween(userA, userB string) ([]*Settlement, error)
	Delete(id string) error
}

// Service handles settlement business logic.
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

// RecordSettlement persists a payment between two users and announces it on
// the bus. The settled-at time defaults to now.
func (s *Service) RecordSettlement(ctx context.Context, dto CreateSettlementDTO) (*Settlement, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("settlement validation failed", "error", err, "from", dto.FromUserID, "to", dto.ToUserID)
		return nil, err
	}

	settledAt := time.Now()
	if dto.SettledAt != nil {
		settledAt = *dto.SettledAt
	}

	stl := &Settlement{
		ID:         uuid.New().String(),
		FromUserID: dto.FromUserID,
		ToUserID:   dto.ToUserID,
		Amount:     dto.Amount,
		GroupID:    dto.GroupID,
		SettledAt:  settledAt,
		Note:       dto.Note,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(stl); err != nil {
		s.logger.Error("failed to record settlement", "error", err, "from", dto.FromUserID, "to", dto.ToUserID)
		return nil, err
	}

	ctx = logger.With(ctx, "settlement_id", stl.ID)
	if err := s.bus.Publish(ctx, events.NewSettlementRecordedEvent(
		stl.ID, stl.FromUserID, stl.ToUserID, stl.Amount, stl.GroupID,
	)); err != nil {
		s.logger.Error("failed to publish settlement recorded event", "error", err, "settlement_id", stl.ID)
	}

	s.logger.Info("settlement recorded",
		"settlement_id", stl.ID,
		"from", stl.FromUserID,
		"to", stl.ToUserID,
		"amount", stl.Amount)

	return stl, nil
}

func (s *Service) GetSettlement(id string) (*Settlement, error) {
	stl, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get settlement", "error", err, "settlement_id", id)
		return nil, errors.ErrSettlementNotFound
	}
	return stl, nil
}

func (s *Service) ListSettlements(filter ListSettlementsDTO) ([]*Settlement, error) {
	settlements, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list settlements", "error", err, "user_id", filter.UserID)
		return nil, err
	}
	return settlements, nil
}

// ListBetween returns every settlement exchanged between two users, in
// either direction, for the pairwise ledger view.
func (s *Service) ListBetween(userA, userB string) ([]*Settlement, error) {
	settlements, err := s.repo.ListBetween(userA, userB)
	if err != nil {
		s.logger.Error("failed to list settlements between users", "error", err, "user_a", userA, "user_b", userB)
		return nil, err
	}
	return settlements, nil
}

func (s *Service) DeleteSettlement(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		s.logger.Error("settlement not found for deletion", "error", err, "settlement_id", id)
		return errors.ErrSettlementNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete settlement", "error", err, "settlement_id", id)
		return err
	}
	s.logger.Info("settlement deleted", "settlement_id", id)
	return nil
}
