package postgres

import (
	"gorm.io/gorm"

	errors "github.com/splitmate/splitmate/internal"
	groupDatamodel "github.com/splitmate/splitmate/internal/core/datamodel/group"
	"github.com/splitmate/splitmate/internal/group"
)

// GroupRepository implements the group.Repository interface using GORM.
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) group.Repository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(g *group.Group) error {
	return r.db.Create(group.ToDataModel(g)).Error
}

func (r *GroupRepository) GetByID(id string) (*group.Group, error) {
	var dm groupDatamodel.Group
	err := r.db.Preload("Members").
		Where("id = ?", id).
		First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGroupNotFound
		}
		return nil, err
	}
	return group.FromDataModel(&dm), nil
}

func (r *GroupRepository) List() ([]*group.Group, error) {
	var models []*groupDatamodel.Group
	err := r.db.Preload("Members").
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return group.FromDataModelSlice(models), nil
}

func (r *GroupRepository) ListForUser(userID string) ([]*group.Group, error) {
	var models []*groupDatamodel.Group
	err := r.db.Preload("Members").
		Where("id IN (?)",
			r.db.Model(&groupDatamodel.GroupMember{}).
				Select("group_id").Where("user_id = ?", userID)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return group.FromDataModelSlice(models), nil
}

func (r *GroupRepository) AddMember(groupID, userID string) error {
	return r.db.Create(&groupDatamodel.GroupMember{
		GroupID: groupID,
		UserID:  userID,
	}).Error
}

func (r *GroupRepository) RemoveMember(groupID, userID string) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&groupDatamodel.GroupMember{}).Error
}
