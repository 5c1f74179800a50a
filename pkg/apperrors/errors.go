package apperrors

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Ошибки, различаемые на границах слоев
var (
	// ErrNotFound возвращается, когда перевал с указанным ID не найден.
	// Это не аварийная ситуация, а обычный пустой результат.
	ErrNotFound = errors.New("перевал не найден")

	// ErrDatabaseUnavailable возвращается, когда хранилище недоступно.
	// Повторных попыток не предпринимается, ошибка передается сразу.
	ErrDatabaseUnavailable = errors.New("база данных недоступна")

	// ErrRecordNotFound возвращается, когда запись не найдена в базе данных
	ErrRecordNotFound = gorm.ErrRecordNotFound
)

// Код SQLSTATE для нарушения уникального ограничения PostgreSQL
const pgUniqueViolationCode = "23505"

// TransactionError представляет сбой внутри транзакции отправки.
// Транзакция уже откачена, исходная причина сохраняется для диагностики.
type TransactionError struct {
	Op  string
	Err error
}

// Error возвращает текстовое описание ошибки транзакции
func (e *TransactionError) Error() string {
	return fmt.Sprintf("ошибка при выполнении операции %s: %v", e.Op, e.Err)
}

// Unwrap возвращает исходную причину ошибки
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError оборачивает причину сбоя транзакции
func NewTransactionError(op string, err error) *TransactionError {
	return &TransactionError{Op: op, Err: err}
}

// IsNotFound проверяет, является ли ошибка ошибкой "запись не найдена"
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrRecordNotFound)
}

// IsDuplicateKey проверяет, является ли ошибка нарушением уникального
// ограничения. Распознает как перевод GORM, так и код SQLSTATE 23505,
// который возвращает драйвер pgx.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// IsConnectionError проверяет, вызвана ли ошибка недоступностью хранилища
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrDatabaseUnavailable) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
