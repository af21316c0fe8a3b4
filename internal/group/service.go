package group

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/splitmate/splitmate/internal"
)

// Repository defines the data access methods for groups.
type Repository interface {
	Create(group *Group) error
	GetByID(id string) (*Group, error)
	List() ([]*Group, error)
	ListForUser(userID string) ([]*Group, error)
	AddMember(groupID, userID string) error
	RemoveMember(groupID, userID string) error
}

// Service handles group business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateGroup persists a new group. The creator is always a member.
func (s *Service) CreateGroup(dto CreateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("group validation failed", "error", err, "name", dto.Name)
		return nil, err
	}

	members := dto.Members
	if dto.CreatedBy != "" && !contains(members, dto.CreatedBy) {
		members = append(members, dto.CreatedBy)
	}

	now := time.Now()
	g := &Group{
		ID:        uuid.New().String(),
		Name:      dto.Name,
		CreatedBy: dto.CreatedBy,
		Members:   members,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(g); err != nil {
		s.logger.Error("failed to create group", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("group created", "group_id", g.ID, "name", g.Name, "members", len(g.Members))
	return g, nil
}

func (s *Service) GetGroup(id string) (*Group, error) {
	g, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get group", "error", err, "group_id", id)
		return nil, errors.ErrGroupNotFound
	}
	return g, nil
}

func (s *Service) ListGroups() ([]*Group, error) {
	groups, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list groups", "error", err)
		return nil, err
	}
	return groups, nil
}

func (s *Service) ListGroupsForUser(userID string) ([]*Group, error) {
	groups, err := s.repo.ListForUser(userID)
	if err != nil {
		s.logger.Error("failed to list groups for user", "error", err, "user_id", userID)
		return nil, err
	}
	return groups, nil
}

func (s *Service) AddMember(dto AddMemberDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	g, err := s.repo.GetByID(dto.GroupID)
	if err != nil {
		return errors.ErrGroupNotFound
	}
	if g.HasMember(dto.UserID) {
		return errors.NewConflictError("user is already a member", errors.ErrCodeValidationFailed)
	}

	if err := s.repo.AddMember(dto.GroupID, dto.UserID); err != nil {
		s.logger.Error("failed to add member", "error", err, "group_id", dto.GroupID, "user_id", dto.UserID)
		return err
	}
	s.logger.Info("member added", "group_id", dto.GroupID, "user_id", dto.UserID)
	return nil
}

func (s *Service) RemoveMember(dto AddMemberDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	g, err := s.repo.GetByID(dto.GroupID)
	if err != nil {
		return errors.ErrGroupNotFound
	}
	if !g.HasMember(dto.UserID) {
		return errors.ErrUserNotFound
	}

	if err := s.repo.RemoveMember(dto.GroupID, dto.UserID); err != nil {
		s.logger.Error("failed to remove member", "error", err, "group_id", dto.GroupID, "user_id", dto.UserID)
		return err
	}
	s.logger.Info("member removed", "group_id", dto.GroupID, "user_id", dto.UserID)
	return nil
}

func contains(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
