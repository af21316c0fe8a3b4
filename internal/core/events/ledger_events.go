package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeExpenseCreated     = "expense.created"
	EventTypeSettlementRecorded = "settlement.recorded"
)

type ExpenseCreatedEvent struct {
	BaseEvent
	ExpenseID    string          `json:"expense_id"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	PaidBy       string          `json:"paid_by"`
	GroupID      string          `json:"group_id,omitempty"`
	Participants []string        `json:"participants"`
}

func NewExpenseCreatedEvent(expenseID, title string, amount decimal.Decimal, paidBy, groupID string, participants []string) *ExpenseCreatedEvent {
	return &ExpenseCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpenseCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"expense_id":   expenseID,
				"title":        title,
				"amount":       amount.String(),
				"paid_by":      paidBy,
				"group_id":     groupID,
				"participants": participants,
			},
		},
		ExpenseID:    expenseID,
		Title:        title,
		Amount:       amount,
		PaidBy:       paidBy,
		GroupID:      groupID,
		Participants: participants,
	}
}

type SettlementRecordedEvent struct {
	BaseEvent
	SettlementID string          `json:"settlement_id"`
	FromUserID   string          `json:"from_user_id"`
	ToUserID     string          `json:"to_user_id"`
	Amount       decimal.Decimal `json:"amount"`
	GroupID      string          `json:"group_id,omitempty"`
}

func NewSettlementRecordedEvent(settlementID, fromUserID, toUserID string, amount decimal.Decimal, groupID string) *SettlementRecordedEvent {
	return &SettlementRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeSettlementRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"settlement_id": settlementID,
				"from_user_id":  fromUserID,
				"to_user_id":    toUserID,
				"amount":        amount.String(),
				"group_id":      groupID,
			},
		},
		SettlementID: settlementID,
		FromUserID:   fromUserID,
		ToUserID:     toUserID,
		Amount:       amount,
		GroupID:      groupID,
	}
}
