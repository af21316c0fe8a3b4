package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	settlementDatamodel "github.com/splitmate/splitmate/internal/core/datamodel/settlement"
	"github.com/splitmate/splitmate/internal/ledger"
)

type Settlement struct {
	ID         string          `json:"id"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
	GroupID    string          `json:"group_id,omitempty"`
	SettledAt  time.Time       `json:"settled_at"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (s *Settlement) ToLedger() ledger.Settlement {
	return ledger.Settlement{
		ID:         s.ID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     s.Amount,
		GroupID:    s.GroupID,
		SettledAt:  s.SettledAt,
		Note:       s.Note,
	}
}

func ToLedgerSlice(settlements []*Settlement) []ledger.Settlement {
	result := make([]ledger.Settlement, len(settlements))
	for i, s := range settlements {
		result[i] = s.ToLedger()
	}
	return result
}

func ToDataModel(s *Settlement) *settlementDatamodel.Settlement {
	dm := &settlementDatamodel.Settlement{
		ID:         s.ID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     s.Amount,
		SettledAt:  s.SettledAt,
		Note:       s.Note,
		CreatedAt:  s.CreatedAt,
	}
	if s.GroupID != "" {
		groupID := s.GroupID
		dm.GroupID = &groupID
	}
	return dm
}

func FromDataModel(dm *settlementDatamodel.Settlement) *Settlement {
	s := &Settlement{
		ID:         dm.ID,
		FromUserID: dm.FromUserID,
		ToUserID:   dm.ToUserID,
		Amount:     dm.Amount,
		SettledAt:  dm.SettledAt,
		Note:       dm.Note,
		CreatedAt:  dm.CreatedAt,
	}
	if dm.GroupID != nil {
		s.GroupID = *dm.GroupID
	}
	return s
}

func FromDataModelSlice(models []*settlementDatamodel.Settlement) []*Settlement {
	result := make([]*Settlement, len(models))
	for i, dm := range models {
		result[i] = FromDataModel(dm)
	}
	return result
}
