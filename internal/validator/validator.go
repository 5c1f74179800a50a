package validator

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"PerevalDataService/internal/models"
)

// Формат времени отправки: YYYY-MM-DD HH:MM:SS
const addTimeLayout = "2006-01-02 15:04:05"

// Максимальные длины полей по схеме хранения
const (
	maxTitleLen = 255
	maxLevelLen = 10
)

// FieldErrors содержит нарушения валидации по именам полей.
// Пустая карта означает, что нарушений нет.
type FieldErrors map[string][]string

// Add добавляет нарушение для указанного поля
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Error возвращает текстовое описание всех нарушений
func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, messages := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(messages, "; ")))
	}
	return strings.Join(parts, ", ")
}

// Validate проверяет сырое тело запроса и возвращает либо нормализованные
// данные отправки, либо карту нарушений по полям. Собираются все нарушения
// сразу, а не только первое. Функция чистая, без побочных эффектов.
func Validate(req *models.SubmitRequest) (*models.PerevalPayload, FieldErrors) {
	errs := make(FieldErrors)

	// Обязательные поля верхнего уровня проверяются все разом
	if req.BeautyTitle == nil {
		errs.Add("beauty_title", "обязательное поле отсутствует")
	}
	if req.Title == nil {
		errs.Add("title", "обязательное поле отсутствует")
	}
	if req.User == nil {
		errs.Add("user", "обязательное поле отсутствует")
	}
	if req.Coords == nil {
		errs.Add("coords", "обязательное поле отсутствует")
	}
	if req.Level == nil {
		errs.Add("level", "обязательное поле отсутствует")
	}
	if req.Images == nil {
		errs.Add("images", "обязательное поле отсутствует")
	}

	payload := &models.PerevalPayload{
		OtherTitles: req.OtherTitles,
		Connect:     req.Connect,
	}

	if req.BeautyTitle != nil {
		payload.BeautyTitle = *req.BeautyTitle
		if utf8.RuneCountInString(payload.BeautyTitle) > maxTitleLen {
			errs.Add("beauty_title", fmt.Sprintf("длина не должна превышать %d символов", maxTitleLen))
		}
	}
	if req.Title != nil {
		payload.Title = *req.Title
		if utf8.RuneCountInString(payload.Title) > maxTitleLen {
			errs.Add("title", fmt.Sprintf("длина не должна превышать %d символов", maxTitleLen))
		}
	}

	if req.User != nil {
		payload.User = validateUser(req.User, errs)
	}
	if req.Coords != nil {
		payload.Coords = validateCoords(req.Coords, errs)
	}
	if req.Level != nil {
		payload.Level = validateLevel(req.Level, errs)
	}
	if req.Images != nil {
		payload.Images = validateImages(*req.Images, errs)
	}

	// Время отправки: переданная строка используется как есть,
	// при отсутствии берется текущее время сервера
	if req.AddTime != "" {
		payload.AddTime = req.AddTime
	} else {
		payload.AddTime = time.Now().Format(addTimeLayout)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return payload, nil
}

// validateUser проверяет вложенный объект user.
// Поле otc (отчество) необязательно и по умолчанию пустое.
func validateUser(u *models.UserRequest, errs FieldErrors) models.UserPayload {
	user := models.UserPayload{Otc: u.Otc}

	if u.Email == nil {
		errs.Add("user.email", "обязательное поле отсутствует")
	} else {
		user.Email = *u.Email
	}
	if u.Fam == nil {
		errs.Add("user.fam", "обязательное поле отсутствует")
	} else {
		user.Fam = *u.Fam
	}
	if u.Name == nil {
		errs.Add("user.name", "обязательное поле отсутствует")
	} else {
		user.Name = *u.Name
	}
	if u.Phone == nil {
		errs.Add("user.phone", "обязательное поле отсутствует")
	} else {
		user.Phone = *u.Phone
	}

	return user
}

// validateCoords проверяет вложенный объект coords. Широта и долгота
// должны разбираться как десятичные числа, высота как целое.
func validateCoords(c *models.CoordsRequest, errs FieldErrors) models.CoordsPayload {
	coords := models.CoordsPayload{}

	if c.Latitude == nil {
		errs.Add("coords.latitude", "обязательное поле отсутствует")
	} else if lat, ok := parseFloat(c.Latitude); ok {
		coords.Latitude = lat
	} else {
		errs.Add("coords.latitude", "значение должно быть десятичным числом")
	}

	if c.Longitude == nil {
		errs.Add("coords.longitude", "обязательное поле отсутствует")
	} else if lon, ok := parseFloat(c.Longitude); ok {
		coords.Longitude = lon
	} else {
		errs.Add("coords.longitude", "значение должно быть десятичным числом")
	}

	if c.Height == nil {
		errs.Add("coords.height", "обязательное поле отсутствует")
	} else if h, ok := parseInt(c.Height); ok {
		coords.Height = h
	} else {
		errs.Add("coords.height", "значение должно быть целым числом")
	}

	return coords
}

// validateLevel проверяет вложенный объект level. Все сезоны
// необязательны, ограничение только на длину кода.
func validateLevel(l *models.LevelRequest, errs FieldErrors) models.LevelPayload {
	seasons := map[string]string{
		"winter": l.Winter,
		"summer": l.Summer,
		"autumn": l.Autumn,
		"spring": l.Spring,
	}
	for season, code := range seasons {
		if utf8.RuneCountInString(code) > maxLevelLen {
			errs.Add("level."+season, fmt.Sprintf("длина не должна превышать %d символов", maxLevelLen))
		}
	}

	return models.LevelPayload{
		Winter: l.Winter,
		Summer: l.Summer,
		Autumn: l.Autumn,
		Spring: l.Spring,
	}
}

// validateImages проверяет массив изображений. Пустой массив отклоняется
// отдельно от отсутствующего поля: хотя бы одно изображение обязательно.
func validateImages(images []models.ImageRequest, errs FieldErrors) []models.ImagePayload {
	if len(images) == 0 {
		errs.Add("images", "требуется хотя бы одно изображение")
		return nil
	}

	result := make([]models.ImagePayload, 0, len(images))
	for i, img := range images {
		field := fmt.Sprintf("images[%d]", i)

		image := models.ImagePayload{}
		if img.Data == nil {
			errs.Add(field+".data", "обязательное поле отсутствует")
		} else {
			image.Data = *img.Data
			if !isValidImageData(image.Data) {
				errs.Add(field+".data", "некорректные данные изображения base64")
			}
		}

		if img.Title == nil {
			errs.Add(field+".title", "обязательное поле отсутствует")
		} else {
			image.Title = *img.Title
			if utf8.RuneCountInString(image.Title) > maxTitleLen {
				errs.Add(field+".title", fmt.Sprintf("длина не должна превышать %d символов", maxTitleLen))
			}
		}

		result = append(result, image)
	}

	return result
}

// isValidImageData проверяет корректность base64-данных изображения.
// Строка с префиксом data:image проверяется после первой запятой,
// иначе как base64 проверяется вся строка целиком.
func isValidImageData(data string) bool {
	payload := data
	if strings.HasPrefix(data, "data:image") {
		idx := strings.Index(data, ",")
		if idx < 0 {
			return false
		}
		payload = data[idx+1:]
	}

	_, err := base64.StdEncoding.DecodeString(payload)
	return err == nil
}

// parseFloat приводит значение JSON к float64. Принимаются числа
// и числовые строки, как в исходном API.
func parseFloat(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// parseInt приводит значение JSON к int. JSON-числа приходят как
// float64, дробная часть означает некорректную высоту.
func parseInt(v interface{}) (int, bool) {
	switch value := v.(type) {
	case float64:
		if value != math.Trunc(value) {
			return 0, false
		}
		return int(value), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		return n, err == nil
	default:
		return 0, false
	}
}
