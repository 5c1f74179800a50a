package validator

import (
	"strings"
	"testing"
	"time"

	"PerevalDataService/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

// validRequest возвращает полностью заполненный корректный запрос
func validRequest() *models.SubmitRequest {
	images := []models.ImageRequest{
		{Data: strPtr("aGVsbG8="), Title: strPtr("Седловина")},
	}
	return &models.SubmitRequest{
		BeautyTitle: strPtr("пер. "),
		Title:       strPtr("Пхия"),
		OtherTitles: "Триев",
		Connect:     "",
		AddTime:     "2021-09-22 13:18:13",
		User: &models.UserRequest{
			Email: strPtr("qwerty@mail.ru"),
			Fam:   strPtr("Пупкин"),
			Name:  strPtr("Василий"),
			Otc:   "Иванович",
			Phone: strPtr("+7 555 55 55"),
		},
		Coords: &models.CoordsRequest{
			Latitude:  "45.3842",
			Longitude: "7.1525",
			Height:    "1200",
		},
		Level: &models.LevelRequest{
			Summer: "1А",
			Autumn: "1А",
		},
		Images: &images,
	}
}

// TestValidateSuccess проверяет нормализацию полностью корректного запроса
func TestValidateSuccess(t *testing.T) {
	payload, errs := Validate(validRequest())
	require.Nil(t, errs)
	require.NotNil(t, payload)

	assert.Equal(t, "пер. ", payload.BeautyTitle)
	assert.Equal(t, "Пхия", payload.Title)
	assert.Equal(t, "qwerty@mail.ru", payload.User.Email)
	assert.Equal(t, "Иванович", payload.User.Otc)
	assert.InDelta(t, 45.3842, payload.Coords.Latitude, 1e-9)
	assert.InDelta(t, 7.1525, payload.Coords.Longitude, 1e-9)
	assert.Equal(t, 1200, payload.Coords.Height)
	assert.Equal(t, "1А", payload.Level.Summer)
	assert.Equal(t, "", payload.Level.Winter)
	assert.Equal(t, "2021-09-22 13:18:13", payload.AddTime)
	require.Len(t, payload.Images, 1)
	assert.Equal(t, "aGVsbG8=", payload.Images[0].Data)
}

// TestValidateMissingTopLevelFields проверяет, что называются все
// отсутствующие обязательные поля, а не только первое
func TestValidateMissingTopLevelFields(t *testing.T) {
	payload, errs := Validate(&models.SubmitRequest{})
	require.Nil(t, payload)
	require.NotNil(t, errs)

	for _, field := range []string{"beauty_title", "title", "user", "coords", "level", "images"} {
		assert.Contains(t, errs, field, "пропущено нарушение для поля %s", field)
	}
}

// TestValidateMissingUserFields проверяет обязательные поля пользователя
func TestValidateMissingUserFields(t *testing.T) {
	req := validRequest()
	req.User = &models.UserRequest{Otc: "Иванович"}

	payload, errs := Validate(req)
	require.Nil(t, payload)

	for _, field := range []string{"user.email", "user.fam", "user.name", "user.phone"} {
		assert.Contains(t, errs, field)
	}
}

// TestValidateEmptyImages проверяет, что пустой массив изображений
// отклоняется отдельно от отсутствующего поля
func TestValidateEmptyImages(t *testing.T) {
	req := validRequest()
	empty := []models.ImageRequest{}
	req.Images = &empty

	payload, errs := Validate(req)
	require.Nil(t, payload)
	require.Contains(t, errs, "images")
	assert.Contains(t, errs["images"][0], "хотя бы одно изображение")

	// Отсутствующее поле дает другое сообщение
	req2 := validRequest()
	req2.Images = nil
	_, errs2 := Validate(req2)
	require.Contains(t, errs2, "images")
	assert.NotEqual(t, errs["images"][0], errs2["images"][0])
}

// TestValidateBase64 проверяет валидацию данных изображения
func TestValidateBase64(t *testing.T) {
	cases := []struct {
		name  string
		data  string
		valid bool
	}{
		{"чистый base64", "aGVsbG8gd29ybGQ=", true},
		{"data-URI с корректным base64", "data:image/png;base64,aGVsbG8=", true},
		{"data-URI с мусором", "data:image/png;base64,###notbase64###", false},
		{"data-URI без запятой", "data:image/png;base64", false},
		{"не base64", "###notbase64###", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			images := []models.ImageRequest{
				{Data: strPtr(tc.data), Title: strPtr("фото")},
			}
			req.Images = &images

			_, errs := Validate(req)
			if tc.valid {
				assert.Nil(t, errs)
			} else {
				assert.Contains(t, errs, "images[0].data")
			}
		})
	}
}

// TestValidateCoords проверяет приведение координат к числам
func TestValidateCoords(t *testing.T) {
	// Значения как JSON-числа
	req := validRequest()
	req.Coords = &models.CoordsRequest{
		Latitude:  45.3842,
		Longitude: 7.1525,
		Height:    float64(1200),
	}
	payload, errs := Validate(req)
	require.Nil(t, errs)
	assert.Equal(t, 1200, payload.Coords.Height)

	// Нечисловые значения отклоняются
	req = validRequest()
	req.Coords = &models.CoordsRequest{
		Latitude:  "не число",
		Longitude: true,
		Height:    "12.5",
	}
	_, errs = Validate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "coords.latitude")
	assert.Contains(t, errs, "coords.longitude")
	assert.Contains(t, errs, "coords.height")

	// Дробная высота отклоняется
	req = validRequest()
	req.Coords = &models.CoordsRequest{Latitude: 1.0, Longitude: 2.0, Height: 12.5}
	_, errs = Validate(req)
	assert.Contains(t, errs, "coords.height")
}

// TestValidateAddTimeDefault проверяет подстановку текущего времени сервера
func TestValidateAddTimeDefault(t *testing.T) {
	req := validRequest()
	req.AddTime = ""

	payload, errs := Validate(req)
	require.Nil(t, errs)

	parsed, err := time.Parse(addTimeLayout, payload.AddTime)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

// TestValidateTitleLength проверяет ограничение длины заголовков
func TestValidateTitleLength(t *testing.T) {
	req := validRequest()
	long := strings.Repeat("x", maxTitleLen+1)
	req.Title = strPtr(long)

	images := []models.ImageRequest{
		{Data: strPtr("aGVsbG8="), Title: strPtr(long)},
	}
	req.Images = &images

	_, errs := Validate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "images[0].title")
}

// TestValidateCyrillicTitleLength проверяет, что длина считается в символах,
// а не в байтах: кириллический заголовок в пределах лимита проходит,
// хотя в UTF-8 он занимает вдвое больше байт
func TestValidateCyrillicTitleLength(t *testing.T) {
	req := validRequest()
	req.Title = strPtr(strings.Repeat("П", 150))

	payload, errs := Validate(req)
	require.Nil(t, errs)
	assert.Equal(t, 150, len([]rune(payload.Title)))

	req = validRequest()
	req.Title = strPtr(strings.Repeat("П", maxTitleLen+1))

	_, errs = Validate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "title")
}

// TestValidateLevelLength проверяет ограничение длины кодов сложности
func TestValidateLevelLength(t *testing.T) {
	req := validRequest()
	req.Level = &models.LevelRequest{Winter: strings.Repeat("1А", 6)}

	_, errs := Validate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "level.winter")
}
