package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	errors "github.com/splitmate/splitmate/internal"
	"github.com/splitmate/splitmate/internal/core/common/validation"
)

type CreateSettlementDTO struct {
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	GroupID    string          `json:"group_id,omitempty"`
	SettledAt  *time.Time      `json:"settled_at,omitempty"`
	Note       string          `json:"note,omitempty"`
}

func (dto CreateSettlementDTO) Validate() error {
	if dto.FromUserID == "" {
		return errors.NewValidationFieldError("from_user_id", "from_user_id is required", errors.ErrCodeValidationFailed)
	}
	if dto.ToUserID == "" {
		return errors.NewValidationFieldError("to_user_id", "to_user_id is required", errors.ErrCodeValidationFailed)
	}
	if dto.FromUserID == dto.ToUserID {
		return errors.NewValidationFieldError("to_user_id", "cannot settle with yourself", errors.ErrCodeValidationFailed)
	}
	if err := validation.ValidateAmount(dto.Amount); err != nil {
		return err
	}
	return nil
}

type ListSettlementsDTO struct {
	UserID  string     `json:"user_id,omitempty"`
	GroupID string     `json:"group_id,omitempty"`
	Since   *time.Time `json:"since,omitempty"`
}
