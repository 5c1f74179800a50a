package database

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthChecker предоставляет функции для проверки состояния базы данных
type HealthChecker struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDatabaseHealthChecker создает новый экземпляр проверки состояния базы данных
func NewDatabaseHealthChecker(db *gorm.DB, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		db:     db,
		logger: logger,
	}
}

// IsDatabaseHealthy проверяет здоровье PostgreSQL
func (c *HealthChecker) IsDatabaseHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	sqlDB, err := c.db.DB()
	if err != nil {
		c.logger.Warn("Не удалось получить экземпляр SQL DB", zap.Error(err))
		return false
	}

	// Простой запрос для проверки
	var result int
	if err := sqlDB.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		c.logger.Warn("Проверка здоровья PostgreSQL не удалась", zap.Error(err))
		return false
	}

	return result == 1
}
