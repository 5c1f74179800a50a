package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDKey ключ для request ID в locals запроса
const RequestIDKey = "request_id"

// TracingMiddleware создает middleware Fiber для трассировки запросов.
// Каждому запросу присваивается request ID, начало и завершение логируются
// с длительностью обработки.
func TracingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Создаем или получаем request ID
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Locals(RequestIDKey, requestID)
		c.Set("X-Request-ID", requestID)

		startTime := time.Now()

		// Логируем начало запроса
		logger.Info("Start processing request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("request_id", requestID))

		// Выполняем исходный обработчик
		err := c.Next()

		// Рассчитываем длительность запроса
		duration := time.Since(startTime)

		// Логируем завершение запроса
		if err != nil {
			logger.Error("Request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("request_id", requestID),
				zap.Duration("duration", duration),
				zap.Error(err))
		} else {
			logger.Info("Request completed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.String("request_id", requestID),
				zap.Duration("duration", duration))
		}

		return err
	}
}
