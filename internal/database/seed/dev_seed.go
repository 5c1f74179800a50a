package seed

import (
	"context"
	"os"

	"PerevalDataService/internal/models"
	"PerevalDataService/internal/repository/postgres"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Однопиксельный PNG в base64 для тестового изображения
const samplePNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// DevEnvironmentSeeder обрабатывает заполнение тестовыми данными среды разработки
type DevEnvironmentSeeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDevEnvironmentSeeder создает новый объект для заполнения тестовыми данными
func NewDevEnvironmentSeeder(db *gorm.DB, logger *zap.Logger) *DevEnvironmentSeeder {
	return &DevEnvironmentSeeder{
		db:     db,
		logger: logger,
	}
}

// SeedSamplePereval создает тестовую отправку перевала, если мы находимся
// в режиме разработки
func (s *DevEnvironmentSeeder) SeedSamplePereval(ctx context.Context) error {
	// Проверяем, находимся ли мы в режиме разработки
	if os.Getenv("APP_ENV") != "development" {
		s.logger.Debug("Не в режиме разработки, пропускаем создание тестового перевала")
		return nil
	}

	s.logger.Info("Заполнение тестовым перевалом для среды разработки")

	// Проверяем, существует ли уже хотя бы один перевал
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Pereval{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("Тестовые данные уже существуют", zap.Int64("count", count))
		return nil
	}

	// Тестовая отправка проходит через тот же транзакционный конвейер,
	// что и реальные запросы
	payload := &models.PerevalPayload{
		BeautyTitle: "пер. ",
		Title:       "Пхия",
		OtherTitles: "Триев",
		Connect:     "",
		AddTime:     "2021-09-22 13:18:13",
		User: models.UserPayload{
			Email: "qwerty@mail.ru",
			Fam:   "Пупкин",
			Name:  "Василий",
			Otc:   "Иванович",
			Phone: "+7 555 55 55",
		},
		Coords: models.CoordsPayload{
			Latitude:  45.3842,
			Longitude: 7.1525,
			Height:    1200,
		},
		Level: models.LevelPayload{
			Winter: "",
			Summer: "1А",
			Autumn: "1А",
			Spring: "",
		},
		Images: []models.ImagePayload{
			{Data: samplePNG, Title: "Седловина"},
			{Data: samplePNG, Title: "Подъем"},
		},
	}

	repo := postgres.NewPerevalRepository(s.db)
	id, err := repo.CreateSubmission(ctx, payload)
	if err != nil {
		s.logger.Error("Не удалось заполнить тестовым перевалом", zap.Error(err))
		return err
	}

	s.logger.Info("Успешно создан тестовый перевал", zap.Uint("pereval_id", id))
	return nil
}

// SeedAllDevData заполняет все данные для разработки
func (s *DevEnvironmentSeeder) SeedAllDevData(ctx context.Context) error {
	return s.SeedSamplePereval(ctx)
}
