package user

import "time"

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Name      string    `gorm:"column:name;not null"`
	Mobile    string    `gorm:"column:mobile;uniqueIndex;not null"`
	Avatar    string    `gorm:"column:avatar"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}
