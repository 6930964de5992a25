package repositories

import (
	"errors"

	"nadgodziny/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindFirstManager returns the lowest-id user with the manager role, or nil
// when no manager exists.
func (r *UserRepository) FindFirstManager() (*models.User, error) {
	var manager models.User
	err := r.db.Where("role = ?", models.RoleManager).Order("id asc").First(&manager).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}

func (r *UserRepository) FindDirectReports(managerID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("manager_id = ?", managerID).Order("full_name asc").Find(&users).Error
	return users, err
}

func (r *UserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}
