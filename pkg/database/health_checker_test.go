package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB создает мок базы данных для тестов проверки здоровья
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("не удалось создать мок SQL-соединения: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("не удалось подключить GORM к моку: %v", err)
	}

	return db, mock
}

// TestIsDatabaseHealthy проверяет успешный ответ на контрольный запрос
func TestIsDatabaseHealthy(t *testing.T) {
	db, mock := setupMockDB(t)
	checker := NewDatabaseHealthChecker(db, zap.NewNop())

	mock.ExpectQuery("SELECT 1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	if !checker.IsDatabaseHealthy(context.Background()) {
		t.Error("ожидался здоровый статус базы данных")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("не все ожидания выполнены: %v", err)
	}
}

// TestIsDatabaseHealthyQueryFailure проверяет, что ошибка запроса
// переводит базу в нездоровый статус
func TestIsDatabaseHealthyQueryFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	checker := NewDatabaseHealthChecker(db, zap.NewNop())

	mock.ExpectQuery("SELECT 1").
		WillReturnError(errors.New("connection refused"))

	if checker.IsDatabaseHealthy(context.Background()) {
		t.Error("ожидался нездоровый статус при ошибке запроса")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("не все ожидания выполнены: %v", err)
	}
}
