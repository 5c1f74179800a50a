package service

import (
	"context"
	"errors"

	"PerevalDataService/internal/models"
	"PerevalDataService/pkg/apperrors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PerevalServiceInterface определяет интерфейс для сервиса перевалов
type PerevalServiceInterface interface {
	SubmitData(ctx context.Context, payload *models.PerevalPayload) (uint, error)
	GetPereval(ctx context.Context, id uint) (*models.PerevalResponse, error)
}

// PerevalRepositoryInterface описывает интерфейс для работы с хранилищем перевалов
type PerevalRepositoryInterface interface {
	CreateSubmission(ctx context.Context, payload *models.PerevalPayload) (uint, error)
	GetByID(ctx context.Context, id uint) (*models.Pereval, error)
}

// PerevalService представляет сервис для работы с отправками перевалов
type PerevalService struct {
	repo   PerevalRepositoryInterface
	logger *zap.Logger
}

// NewPerevalService создает новый экземпляр PerevalService
func NewPerevalService(repo PerevalRepositoryInterface, logger *zap.Logger) *PerevalService {
	return &PerevalService{
		repo:   repo,
		logger: logger,
	}
}

// SubmitData сохраняет нормализованную отправку перевала. Принимает только
// результат успешной валидации. Возвращает ID созданного перевала либо
// ошибку: ErrDatabaseUnavailable при недоступном хранилище, TransactionError
// при сбое транзакции. Транзакция к этому моменту уже откачена.
func (s *PerevalService) SubmitData(ctx context.Context, payload *models.PerevalPayload) (uint, error) {
	id, err := s.repo.CreateSubmission(ctx, payload)
	if err != nil {
		if apperrors.IsConnectionError(err) {
			s.logger.Error("База данных недоступна", zap.Error(err))
			return 0, apperrors.ErrDatabaseUnavailable
		}

		s.logger.Error("Не удалось сохранить отправку перевала",
			zap.Error(err),
			zap.String("title", payload.Title),
			zap.String("email", payload.User.Email))
		return 0, apperrors.NewTransactionError("submit_data", err)
	}

	s.logger.Info("Отправка перевала сохранена",
		zap.Uint("pereval_id", id),
		zap.String("title", payload.Title))
	return id, nil
}

// GetPereval получает перевал по ID и восстанавливает представление отправки
// в форме исходного запроса. Отсутствие записи возвращается как ErrNotFound,
// это обычный пустой результат, а не авария.
func (s *PerevalService) GetPereval(ctx context.Context, id uint) (*models.PerevalResponse, error) {
	pereval, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("Перевал не найден", zap.Uint("pereval_id", id))
			return nil, apperrors.ErrNotFound
		}

		if apperrors.IsConnectionError(err) {
			s.logger.Error("База данных недоступна", zap.Error(err))
			return nil, apperrors.ErrDatabaseUnavailable
		}

		s.logger.Error("Не удалось получить перевал", zap.Error(err), zap.Uint("pereval_id", id))
		return nil, err
	}

	return buildResponse(pereval), nil
}

// buildResponse преобразует модель перевала во вложенное представление ответа
func buildResponse(p *models.Pereval) *models.PerevalResponse {
	images := make([]models.ImageResponse, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, models.ImageResponse{
			Data:  img.Data,
			Title: img.Title,
		})
	}

	return &models.PerevalResponse{
		ID:          p.ID,
		BeautyTitle: p.BeautyTitle,
		Title:       p.Title,
		OtherTitles: p.OtherTitles,
		Connect:     p.Connect,
		AddTime:     p.AddTime,
		Status:      p.Status,
		User: models.UserResponse{
			Email: p.User.Email,
			Fam:   p.User.Fam,
			Name:  p.User.Name,
			Otc:   p.User.Otc,
			Phone: p.User.Phone,
		},
		Coords: models.CoordsResponse{
			Latitude:  p.Coords.Latitude,
			Longitude: p.Coords.Longitude,
			Height:    p.Coords.Height,
		},
		Level: models.LevelResponse{
			Winter: p.Level.Winter,
			Summer: p.Level.Summer,
			Autumn: p.Level.Autumn,
			Spring: p.Level.Spring,
		},
		Images: images,
	}
}
