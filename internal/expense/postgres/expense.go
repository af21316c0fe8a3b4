package postgres

import (
	"gorm.io/gorm"

	errors "github.com/splitmate/splitmate/internal"
	expenseDatamodel "github.com/splitmate/splitmate/internal/core/datamodel/expense"
	"github.com/splitmate/splitmate/internal/expense"
)

// ExpenseRepository implements the expense.Repository interface using GORM.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

// Create saves the expense together with its participant and split rows.
func (r *ExpenseRepository) Create(exp *expense.Expense) error {
	return r.db.Create(expense.ToDataModel(exp)).Error
}

func (r *ExpenseRepository) GetByID(id string) (*expense.Expense, error) {
	var dm expenseDatamodel.Expense
	err := r.db.Preload("Participants").Preload("Splits").
		Where("id = ?", id).
		First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense.FromDataModel(&dm), nil
}

// List returns expenses matching the filter, newest first by expense date
// with undated rows last. The user filter matches the payer or any
// participant or split holder.
func (r *ExpenseRepository) List(filter expense.ListExpensesDTO) ([]*expense.Expense, error) {
	query := r.db.Model(&expenseDatamodel.Expense{}).
		Preload("Participants").Preload("Splits")

	if filter.GroupID != "" {
		query = query.Where("group_id = ?", filter.GroupID)
	}
	if filter.Since != nil {
		query = query.Where("expense_date >= ?", *filter.Since)
	}
	if filter.UserID != "" {
		query = query.Where(
			"paid_by = ? OR id IN (?) OR id IN (?)",
			filter.UserID,
			r.db.Model(&expenseDatamodel.ExpenseParticipant{}).
				Select("expense_id").Where("user_id = ?", filter.UserID),
			r.db.Model(&expenseDatamodel.ExpenseSplit{}).
				Select("expense_id").Where("user_id = ?", filter.UserID),
		)
	}

	var models []*expenseDatamodel.Expense
	err := query.
		Order("expense_date DESC").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return expense.FromDataModelSlice(models), nil
}

// Delete removes the expense and its association rows in one transaction.
func (r *ExpenseRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", id).
			Delete(&expenseDatamodel.ExpenseParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("expense_id = ?", id).
			Delete(&expenseDatamodel.ExpenseSplit{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).
			Delete(&expenseDatamodel.Expense{}).Error
	})
}
