package group

import (
	errors "github.com/splitmate/splitmate/internal"
)

type CreateGroupDTO struct {
	Name      string   `json:"name"`
	CreatedBy string   `json:"created_by,omitempty"`
	Members   []string `json:"members,omitempty"`
}

func (dto CreateGroupDTO) Validate() error {
	if dto.Name == "" {
		return errors.NewValidationFieldError("name", "name is required", errors.ErrCodeValidationFailed)
	}
	seen := make(map[string]struct{}, len(dto.Members))
	for _, id := range dto.Members {
		if id == "" {
			return errors.NewValidationFieldError("members", "member ids cannot be empty", errors.ErrCodeValidationFailed)
		}
		if _, dup := seen[id]; dup {
			return errors.NewValidationFieldError("members", "duplicate member "+id, errors.ErrCodeValidationFailed)
		}
		seen[id] = struct{}{}
	}
	return nil
}

type AddMemberDTO struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

func (dto AddMemberDTO) Validate() error {
	if dto.GroupID == "" {
		return errors.NewValidationFieldError("group_id", "group_id is required", errors.ErrCodeValidationFailed)
	}
	if dto.UserID == "" {
		return errors.NewValidationFieldError("user_id", "user_id is required", errors.ErrCodeValidationFailed)
	}
	return nil
}
