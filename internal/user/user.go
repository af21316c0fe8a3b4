package user

import (
	"time"

	userDatamodel "github.com/splitmate/splitmate/internal/core/datamodel/user"
	"github.com/splitmate/splitmate/internal/ledger"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) ToLedger() ledger.User {
	return ledger.User{
		ID:     u.ID,
		Name:   u.Name,
		Mobile: u.Mobile,
		Avatar: u.Avatar,
	}
}

func ToLedgerSlice(users []*User) []ledger.User {
	result := make([]ledger.User, len(users))
	for i, u := range users {
		result[i] = u.ToLedger()
	}
	return result
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:        u.ID,
		Name:      u.Name,
		Mobile:    u.Mobile,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func FromDataModel(dm *userDatamodel.User) *User {
	return &User{
		ID:        dm.ID,
		Name:      dm.Name,
		Mobile:    dm.Mobile,
		Avatar:    dm.Avatar,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
}

func FromDataModelSlice(models []*userDatamodel.User) []*User {
	result := make([]*User, len(models))
	for i, dm := range models {
		result[i] = FromDataModel(dm)
	}
	return result
}
