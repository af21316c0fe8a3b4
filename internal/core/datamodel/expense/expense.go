package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID           string               `gorm:"primaryKey;type:uuid"`
	Title        string               `gorm:"column:title;not null"`
	Amount       decimal.Decimal      `gorm:"column:amount;type:numeric(14,2);not null"`
	ExpenseDate  *time.Time           `gorm:"column:expense_date"`
	Category     string               `gorm:"column:category"`
	PaidBy       string               `gorm:"column:paid_by;type:uuid;not null"`
	GroupID      *string              `gorm:"column:group_id;type:uuid"`
	SplitType    string               `gorm:"column:split_type;default:EQUAL"`
	Participants []ExpenseParticipant `gorm:"foreignKey:ExpenseID"`
	Splits       []ExpenseSplit       `gorm:"foreignKey:ExpenseID"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

type ExpenseParticipant struct {
	ID        int64  `gorm:"primaryKey"`
	ExpenseID string `gorm:"column:expense_id;type:uuid;not null;index"`
	UserID    string `gorm:"column:user_id;type:uuid;not null"`
}

type ExpenseSplit struct {
	ID        int64           `gorm:"primaryKey"`
	ExpenseID string          `gorm:"column:expense_id;type:uuid;not null;index"`
	UserID    string          `gorm:"column:user_id;type:uuid;not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
}
