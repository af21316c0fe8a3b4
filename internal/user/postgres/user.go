package postgres

import (
	"gorm.io/gorm"

	errors "github.com/splitmate/splitmate/internal"
	userDatamodel "github.com/splitmate/splitmate/internal/core/datamodel/user"
	"github.com/splitmate/splitmate/internal/user"
)

// UserRepository implements the user.Repository interface using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(user.ToDataModel(u)).Error
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetByMobile(mobile string) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("mobile = ?", mobile).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) List() ([]*user.User, error) {
	var models []*userDatamodel.User
	err := r.db.Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(models), nil
}
