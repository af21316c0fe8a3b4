package expense

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	errors "github.com/splitmate/splitmate/internal"
	"github.com/splitmate/splitmate/internal/core/common/validation"
	"github.com/splitmate/splitmate/internal/ledger"
)

// splitSumTolerance absorbs rounding from clients that divide amounts
// before submitting explicit shares.
var splitSumTolerance = decimal.NewFromFloat(0.01)

type SplitDetailDTO struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

type CreateExpenseDTO struct {
	Title        string           `json:"title"`
	Amount       decimal.Decimal  `json:"amount"`
	Date         *time.Time       `json:"date,omitempty"`
	Category     string           `json:"category,omitempty"`
	PaidBy       string           `json:"paid_by"`
	GroupID      string           `json:"group_id,omitempty"`
	SplitType    ledger.SplitType `json:"split_type"`
	SplitBetween []string         `json:"split_between,omitempty"`
	SplitDetails []SplitDetailDTO `json:"split_details,omitempty"`
}

func (dto CreateExpenseDTO) Validate() error {
	if err := validation.ValidateTitle(dto.Title); err != nil {
		return err
	}
	if err := validation.ValidateAmount(dto.Amount); err != nil {
		return err
	}
	if dto.PaidBy == "" {
		return errors.NewValidationFieldError("paid_by", "paid_by is required", errors.ErrCodeValidationFailed)
	}
	if dto.Date != nil {
		if err := validation.ValidateExpenseDate(*dto.Date); err != nil {
			return err
		}
	}

	switch dto.SplitType {
	case ledger.SplitTypeEqual:
		if len(dto.SplitBetween) == 0 {
			return errors.NewValidationFieldError("split_between",
				"an equal split needs at least one participant", errors.ErrCodeInvalidSplit)
		}
	case ledger.SplitTypeUnequal:
		return dto.validateSplitDetails()
	default:
		return errors.NewValidationFieldError("split_type",
			fmt.Sprintf("unknown split type %q", dto.SplitType), errors.ErrCodeInvalidSplit)
	}
	return nil
}

func (dto CreateExpenseDTO) validateSplitDetails() error {
	if len(dto.SplitDetails) == 0 {
		return errors.NewValidationFieldError("split_details",
			"an unequal split needs explicit shares", errors.ErrCodeInvalidSplit)
	}

	seen := make(map[string]struct{}, len(dto.SplitDetails))
	sum := decimal.Zero
	for _, d := range dto.SplitDetails {
		if d.UserID == "" {
			return errors.NewValidationFieldError("split_details",
				"every share needs a user id", errors.ErrCodeInvalidSplit)
		}
		if _, dup := seen[d.UserID]; dup {
			return errors.NewValidationFieldError("split_details",
				fmt.Sprintf("duplicate share for user %s", d.UserID), errors.ErrCodeInvalidSplit)
		}
		seen[d.UserID] = struct{}{}
		if d.Amount.IsNegative() {
			return errors.NewValidationFieldError("split_details",
				"shares cannot be negative", errors.ErrCodeInvalidSplit)
		}
		sum = sum.Add(d.Amount)
	}

	if sum.Sub(dto.Amount).Abs().GreaterThan(splitSumTolerance) {
		return errors.NewValidationFieldError("split_details",
			fmt.Sprintf("shares sum to %s but the expense amount is %s", sum, dto.Amount),
			errors.ErrCodeSplitSumMismatch)
	}
	return nil
}

func (dto CreateExpenseDTO) toSplitDetails() []ledger.SplitDetail {
	details := make([]ledger.SplitDetail, len(dto.SplitDetails))
	for i, d := range dto.SplitDetails {
		details[i] = ledger.SplitDetail{UserID: d.UserID, Amount: d.Amount}
	}
	return details
}

type ListExpensesDTO struct {
	UserID  string     `json:"user_id,omitempty"`
	GroupID string     `json:"group_id,omitempty"`
	Since   *time.Time `json:"since,omitempty"`
}
