package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sme-exchange-backend/internal/domain/company"
	"sme-exchange-backend/internal/domain/credit"
	"sme-exchange-backend/internal/domain/lender"
	"sme-exchange-backend/internal/domain/loan"
	"sme-exchange-backend/internal/domain/marketplace"
	"sme-exchange-backend/internal/domain/swap"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates or updates every table the exchange persists.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&company.Company{},
		&lender.Lender{},
		&loan.Loan{},
		&marketplace.Listing{},
		&marketplace.Bid{},
		&marketplace.Interest{},
		&marketplace.Reveal{},
		&swap.Proposal{},
		&credit.Transaction{},
	)
}
