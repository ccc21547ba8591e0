package database

import (
	"fmt"

	"github.com/OTISDav/vehiculesplatform/internal/core/config"
	"github.com/OTISDav/vehiculesplatform/internal/core/logger"
	catalogdomain "github.com/OTISDav/vehiculesplatform/internal/features/catalog/domain"
	paymentdomain "github.com/OTISDav/vehiculesplatform/internal/features/payments/domain"
	tariffdomain "github.com/OTISDav/vehiculesplatform/internal/features/tariffs/domain"
	transportdomain "github.com/OTISDav/vehiculesplatform/internal/features/transport/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the PostgreSQL connection and migrates the schema.
func Connect(cfg *config.AppConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.Environment != "production" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	logger.Get().Info("Database ready")
	return db, nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&catalogdomain.Vehicle{},
		&tariffdomain.Zone{},
		&tariffdomain.Transporter{},
		&transportdomain.Request{},
		&transportdomain.Step{},
		&paymentdomain.Payment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
