package http

import (
	"errors"
	"strconv"

	"PerevalDataService/internal/models"
	"PerevalDataService/internal/service"
	"PerevalDataService/internal/validator"
	"PerevalDataService/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PerevalHandler представляет обработчик HTTP запросов к перевалам
type PerevalHandler struct {
	service service.PerevalServiceInterface
	logger  *zap.Logger
}

// NewPerevalHandler создает новый экземпляр PerevalHandler
func NewPerevalHandler(service service.PerevalServiceInterface, logger *zap.Logger) *PerevalHandler {
	return &PerevalHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes регистрирует маршруты обработчика в приложении Fiber
func (h *PerevalHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/submitData/", h.SubmitData)
	app.Get("/submitData/:id", h.GetPereval)
}

// SubmitData обрабатывает POST /submitData/: валидация тела запроса,
// сохранение отправки, ответ формы {status, message, id}
func (h *PerevalHandler) SubmitData(c *fiber.Ctx) error {
	var req models.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warn("Некорректный JSON в запросе", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(models.SubmitResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid JSON format",
			ID:      nil,
		})
	}

	// Валидация: нарушения никогда не достигают слоя хранения
	payload, validationErrs := validator.Validate(&req)
	if validationErrs != nil {
		h.logger.Warn("Ошибки валидации", zap.String("errors", validationErrs.Error()))
		return c.Status(fiber.StatusBadRequest).JSON(models.SubmitResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Bad Request",
			ID:      nil,
			Errors:  validationErrs,
		})
	}

	id, err := h.service.SubmitData(c.Context(), payload)
	if err != nil {
		if errors.Is(err, apperrors.ErrDatabaseUnavailable) {
			return c.Status(fiber.StatusInternalServerError).JSON(models.SubmitResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Ошибка подключения к базе данных",
				ID:      nil,
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(models.SubmitResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Ошибка при выполнении операции",
			ID:      nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.SubmitResponse{
		Status:  fiber.StatusOK,
		Message: "Отправлено успешно",
		ID:      &id,
	})
}

// GetPereval обрабатывает GET /submitData/:id и возвращает восстановленное
// представление отправки. Отсутствие записи - это 404, а не ошибка сервера.
func (h *PerevalHandler) GetPereval(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.SubmitResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Некорректный ID перевала",
			ID:      nil,
		})
	}

	pereval, err := h.service.GetPereval(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.SubmitResponse{
				Status:  fiber.StatusNotFound,
				Message: "Перевал не найден",
				ID:      nil,
			})
		}

		if errors.Is(err, apperrors.ErrDatabaseUnavailable) {
			return c.Status(fiber.StatusInternalServerError).JSON(models.SubmitResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Ошибка подключения к базе данных",
				ID:      nil,
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(models.SubmitResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Ошибка при выполнении операции",
			ID:      nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(pereval)
}
