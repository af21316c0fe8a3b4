package group

import "time"

type Group struct {
	ID        string        `gorm:"primaryKey;type:uuid"`
	Name      string        `gorm:"column:name;not null"`
	CreatedBy string        `gorm:"column:created_by;type:uuid"`
	Members   []GroupMember `gorm:"foreignKey:GroupID"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

type GroupMember struct {
	ID       int64     `gorm:"primaryKey"`
	GroupID  string    `gorm:"column:group_id;type:uuid;not null;index"`
	UserID   string    `gorm:"column:user_id;type:uuid;not null"`
	JoinedAt time.Time `gorm:"column:joined_at;default:now()"`
}
