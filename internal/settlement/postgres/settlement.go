package postgres

import (
	"gorm.io/gorm"

	errors "github.com/splitmate/splitmate/internal"
	settlementDatamodel "github.com/splitmate/splitmate/internal/core/datamodel/settlement"
	"github.com/splitmate/splitmate/internal/settlement"
)

// SettlementRepository implements the settlement.Repository interface using GORM.
type SettlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) settlement.Repository {
	return &SettlementRepository{db: db}
}

func (r *SettlementRepository) Create(stl *settlement.Settlement) error {
	return r.db.Create(settlement.ToDataModel(stl)).Error
}

func (r *SettlementRepository) GetByID(id string) (*settlement.Settlement, error) {
	var dm settlementDatamodel.Settlement
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSettlementNotFound
		}
		return nil, err
	}
	return settlement.FromDataModel(&dm), nil
}

func (r *SettlementRepository) List(filter settlement.ListSettlementsDTO) ([]*settlement.Settlement, error) {
	query := r.db.Model(&settlementDatamodel.Settlement{})

	if filter.GroupID != "" {
		query = query.Where("group_id = ?", filter.GroupID)
	}
	if filter.UserID != "" {
		query = query.Where("from_user_id = ? OR to_user_id = ?", filter.UserID, filter.UserID)
	}
	if filter.Since != nil {
		query = query.Where("settled_at >= ?", *filter.Since)
	}

	var models []*settlementDatamodel.Settlement
	err := query.Order("settled_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return settlement.FromDataModelSlice(models), nil
}

// ListBetween matches settlements in either direction between the pair.
func (r *SettlementRepository) ListBetween(userA, userB string) ([]*settlement.Settlement, error) {
	var models []*settlementDatamodel.Settlement
	err := r.db.
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userA, userB, userB, userA).
		Order("settled_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return settlement.FromDataModelSlice(models), nil
}

func (r *SettlementRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).
		Delete(&settlementDatamodel.Settlement{}).Error
}
