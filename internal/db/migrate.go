package db

import (
	"os"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Customer{},
		&model.InstallationLocation{},
		&model.TechnicalConfig{},
		&model.FinancialTerms{},
		&model.Installment{},
		&model.PowerOfAttorney{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedDefaultOperator(); err != nil {
		logger.Error("Failed to seed default operator", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedDefaultOperator creates the first operator account when the users table
// is empty. Credentials come from the environment so fresh deployments can log
// in without manual SQL.
func seedDefaultOperator() error {
	email := os.Getenv("SEED_OPERATOR_EMAIL")
	password := os.Getenv("SEED_OPERATOR_PASSWORD")
	if email == "" || password == "" {
		logger.Info("No seed operator configured, skipping...")
		return nil
	}

	var count int64
	if err := DB.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Users already exist, skipping operator seeding", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	operator := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         os.Getenv("SEED_OPERATOR_NAME"),
	}
	if operator.Name == "" {
		operator.Name = "Operador"
	}

	if err := DB.Create(&operator).Error; err != nil {
		logger.Error("Failed to create seed operator", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	logger.Info("Seed operator created", map[string]interface{}{
		"email": email,
	})
	return nil
}
