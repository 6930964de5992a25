package repositories

import (
	"errors"

	"nadgodziny/models"

	"gorm.io/gorm"
)

type BalanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

func (r *BalanceRepository) GetByUserID(userID uint) (*models.OvertimeBalance, error) {
	var balance models.OvertimeBalance
	err := r.db.Where("user_id = ?", userID).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &balance, nil
}

// AddHours increments the user's balance in a single UPDATE expression, so
// concurrent updates cannot lose each other. When the user has no balance
// row the statement matches nothing and the delta is dropped.
func (r *BalanceRepository) AddHours(userID uint, delta float64) error {
	return r.db.Model(&models.OvertimeBalance{}).
		Where("user_id = ?", userID).
		Update("balance_hours", gorm.Expr("balance_hours + ?", delta)).Error
}

func (r *BalanceRepository) ListByUserIDs(userIDs []uint) ([]models.OvertimeBalance, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var balances []models.OvertimeBalance
	err := r.db.Where("user_id IN ?", userIDs).Find(&balances).Error
	return balances, err
}
