package repositories

import (
	"errors"
	"time"

	"nadgodziny/models"

	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// FindByUserAndDates returns existing requests of the user on any of the
// given dates, ordered by date. Used for the pre-insert duplicate check.
func (r *RequestRepository) FindByUserAndDates(userID uint, dates []time.Time) ([]models.OvertimeRequest, error) {
	var requests []models.OvertimeRequest
	err := r.db.
		Where("user_id = ? AND request_date IN ?", userID, dates).
		Order("request_date asc").
		Find(&requests).Error
	return requests, err
}

// CreateBatch inserts all rows in a single statement.
func (r *RequestRepository) CreateBatch(requests []models.OvertimeRequest) error {
	return r.db.Create(&requests).Error
}

func (r *RequestRepository) Create(request *models.OvertimeRequest) error {
	return r.db.Create(request).Error
}

func (r *RequestRepository) GetByID(id uint) (*models.OvertimeRequest, error) {
	var request models.OvertimeRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepository) UpdateStatus(id uint, status models.RequestStatus) error {
	return r.db.Model(&models.OvertimeRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// List returns requests matching the filter, newest first, with the subject
// user preloaded for display.
func (r *RequestRepository) List(filter models.RequestFilter) ([]models.OvertimeRequest, error) {
	query := r.db.Preload("User")

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ManagerID > 0 {
		query = query.Where("manager_id = ?", filter.ManagerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Month >= 1 && filter.Month <= 12 && filter.Year > 0 {
		start := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		query = query.Where("request_date >= ? AND request_date < ?", start, end)
	} else if filter.Year > 0 {
		start := time.Date(filter.Year, 1, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		query = query.Where("request_date >= ? AND request_date < ?", start, end)
	}

	var requests []models.OvertimeRequest
	err := query.Order("created_at desc").Find(&requests).Error
	return requests, err
}
