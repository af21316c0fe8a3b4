package group

import (
	"time"

	groupDatamodel "github.com/splitmate/splitmate/internal/core/datamodel/group"
	"github.com/splitmate/splitmate/internal/ledger"
)

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by,omitempty"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *Group) HasMember(userID string) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}

func (g *Group) ToLedger() ledger.Group {
	return ledger.Group{
		ID:      g.ID,
		Name:    g.Name,
		Members: g.Members,
	}
}

func ToLedgerSlice(groups []*Group) []ledger.Group {
	result := make([]ledger.Group, len(groups))
	for i, g := range groups {
		result[i] = g.ToLedger()
	}
	return result
}

func ToDataModel(g *Group) *groupDatamodel.Group {
	dm := &groupDatamodel.Group{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	for _, userID := range g.Members {
		dm.Members = append(dm.Members, groupDatamodel.GroupMember{
			GroupID: g.ID,
			UserID:  userID,
		})
	}
	return dm
}

func FromDataModel(dm *groupDatamodel.Group) *Group {
	g := &Group{
		ID:        dm.ID,
		Name:      dm.Name,
		CreatedBy: dm.CreatedBy,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
	for _, m := range dm.Members {
		g.Members = append(g.Members, m.UserID)
	}
	return g
}

func FromDataModelSlice(models []*groupDatamodel.Group) []*Group {
	result := make([]*Group, len(models))
	for i, dm := range models {
		result[i] = FromDataModel(dm)
	}
	return result
}
