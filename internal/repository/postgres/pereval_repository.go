package postgres

import (
	"context"
	"errors"
	"time"

	"PerevalDataService/internal/models"
	"PerevalDataService/pkg/server"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PerevalRepository представляет репозиторий для работы с перевалами
type PerevalRepository struct {
	db *gorm.DB
}

// NewPerevalRepository создает новый экземпляр PerevalRepository
func NewPerevalRepository(db *gorm.DB) *PerevalRepository {
	return &PerevalRepository{
		db: db,
	}
}

// CreateSubmission сохраняет отправку перевала в одной транзакции:
// поиск или создание пользователя, вставка координат, уровня, перевала
// и изображений. Любой сбой откатывает все шаги, частичные записи
// никогда не сохраняются. Возвращает ID созданного перевала.
func (r *PerevalRepository) CreateSubmission(ctx context.Context, payload *models.PerevalPayload) (uint, error) {
	var perevalID uint

	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Пользователь: существующий используется повторно по email,
		// его поля никогда не перезаписываются
		userID, err := r.findOrCreateUser(tx, &payload.User)
		if err != nil {
			return err
		}

		// 2. Координаты: каждая отправка получает собственную запись
		coords := models.Coords{
			Latitude:  payload.Coords.Latitude,
			Longitude: payload.Coords.Longitude,
			Height:    payload.Coords.Height,
		}
		if err := tx.Create(&coords).Error; err != nil {
			return err
		}

		// 3. Уровень сложности по сезонам
		level := models.Level{
			Winter: payload.Level.Winter,
			Summer: payload.Level.Summer,
			Autumn: payload.Level.Autumn,
			Spring: payload.Level.Spring,
		}
		if err := tx.Create(&level).Error; err != nil {
			return err
		}

		// 4. Перевал: статус всегда new, значение клиента игнорируется
		pereval := models.Pereval{
			BeautyTitle: payload.BeautyTitle,
			Title:       payload.Title,
			OtherTitles: payload.OtherTitles,
			Connect:     payload.Connect,
			AddTime:     payload.AddTime,
			Status:      models.StatusNew,
			UserID:      userID,
			CoordsID:    coords.ID,
			LevelID:     level.ID,
		}
		if err := tx.Create(&pereval).Error; err != nil {
			return err
		}

		// 5. Изображения с серверным временем создания
		now := time.Now()
		for i := range payload.Images {
			image := models.Image{
				PerevalID: pereval.ID,
				Data:      payload.Images[i].Data,
				Title:     payload.Images[i].Title,
				DateAdded: now,
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}

		perevalID = pereval.ID
		return nil
	})
	server.RecordDBOperation("create_submission", time.Since(start), err)

	if err != nil {
		return 0, err
	}
	return perevalID, nil
}

// findOrCreateUser возвращает ID пользователя с указанным email, создавая
// запись при ее отсутствии. Гонка двух параллельных отправок с одним новым
// email разрешается уникальным ограничением: вставка выполняется через
// ON CONFLICT DO NOTHING, проигравшая сторона перечитывает существующую строку.
func (r *PerevalRepository) findOrCreateUser(tx *gorm.DB, payload *models.UserPayload) (uint, error) {
	var existing models.User
	err := tx.Where("email = ?", payload.Email).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	user := models.User{
		Email: payload.Email,
		Fam:   payload.Fam,
		Name:  payload.Name,
		Otc:   payload.Otc,
		Phone: payload.Phone,
	}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&user)
	if result.Error != nil {
		return 0, result.Error
	}

	// RowsAffected == 0 означает, что параллельная вставка успела раньше
	if result.RowsAffected == 0 || user.ID == 0 {
		if err := tx.Where("email = ?", payload.Email).First(&existing).Error; err != nil {
			return 0, err
		}
		return existing.ID, nil
	}

	return user.ID, nil
}

// GetByID получает перевал по ID вместе с пользователем, координатами,
// уровнем и всеми изображениями
func (r *PerevalRepository) GetByID(ctx context.Context, id uint) (*models.Pereval, error) {
	var pereval models.Pereval

	start := time.Now()
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Coords").
		Preload("Level").
		Preload("Images").
		First(&pereval, id).Error
	server.RecordDBOperation("get_pereval", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return &pereval, nil
}
