package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

type Settlement struct {
	ID         string          `gorm:"primaryKey;type:uuid"`
	FromUserID string          `gorm:"column:from_user_id;type:uuid;not null;index"`
	ToUserID   string          `gorm:"column:to_user_id;type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	GroupID    *string         `gorm:"column:group_id;type:uuid"`
	SettledAt  time.Time       `gorm:"column:settled_at"`
	Note       string          `gorm:"column:note"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
