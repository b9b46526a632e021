package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/seed"
)

// SetupDatabase abre a conexão Postgres, aplica as migrações e garante os
// dados de referência do checklist.
func SetupDatabase() (*gorm.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not defined in the environment")
	}

	config := &gorm.Config{
		// Skip default transaction for better performance
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(logger.Error),
	}

	db, err := gorm.Open(postgres.Open(dbURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Pool de conexões
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedChecklistItems(db); err != nil {
		return nil, fmt.Errorf("failed to seed checklist items: %w", err)
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Institution{},
		&entities.Workflow{},
		&entities.WorkflowStep{},
		&entities.Evidence{},
		&entities.Activity{},
		&entities.ComplianceScore{},
		&entities.InstitutionDocument{},
		&entities.ChecklistItem{},
		&entities.ChecklistResponse{},
		&entities.AlertNotification{},
		&entities.InstitutionalPlan{},
		&entities.TrainingRecord{},
		&entities.CgrReport{},
	)
}

// seedChecklistItems grava as 17 normas de verificação se a tabela estiver
// vazia. Idempotente: reinícios não duplicam itens.
func seedChecklistItems(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entities.ChecklistItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Creating COSO checklist items...")
	items := seed.ChecklistItems()
	if err := db.Create(&items).Error; err != nil {
		return err
	}
	log.Printf("Created %d checklist items", len(items))
	return nil
}
