package database

import (
	"nadgodziny/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// Auto migrate the schema
	err = DB.AutoMigrate(&models.User{}, &models.OvertimeRequest{}, &models.OvertimeBalance{})
	if err != nil {
		return err
	}

	// Seed a default manager so submissions have someone to route to
	if err := seedDefaultManager(); err != nil {
		return err
	}

	return nil
}

// seedDefaultManager bootstraps an empty database with one manager account
// and its balance row. User provisioning is otherwise external.
func seedDefaultManager() error {
	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleManager).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("kierownik"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	manager := models.User{
		Username:           "kierownik",
		FullName:           "Kierownik",
		PasswordHash:       string(hashedPassword),
		Role:               models.RoleManager,
		MustChangePassword: true,
	}

	if err := DB.Create(&manager).Error; err != nil {
		return err
	}

	balance := models.OvertimeBalance{UserID: manager.ID}
	if err := DB.Create(&balance).Error; err != nil {
		return err
	}

	log.Info().Str("username", manager.Username).Msg("default manager account created")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
