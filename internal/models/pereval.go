package models

import (
	"time"
)

// Статусы модерации перевала
const (
	StatusNew      = "new"
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// User представляет туриста, отправившего данные о перевале.
// Идентифицируется по email: повторные отправки с тем же email
// используют существующую запись, поля никогда не перезаписываются.
type User struct {
	ID    uint   `gorm:"primaryKey"`
	Email string `gorm:"uniqueIndex;size:255;not null"`
	Fam   string `gorm:"size:255"`
	Name  string `gorm:"size:255"`
	Otc   string `gorm:"size:255"`
	Phone string `gorm:"size:20"`
}

// Coords представляет координаты перевала. Каждая отправка владеет
// собственной записью координат, дедупликации нет.
type Coords struct {
	ID        uint    `gorm:"primaryKey"`
	Latitude  float64 `gorm:"type:decimal(9,6)"`
	Longitude float64 `gorm:"type:decimal(9,6)"`
	Height    int
}

// Level представляет категорию сложности перевала по сезонам.
// Пустая строка означает "не оценен для этого сезона".
type Level struct {
	ID     uint   `gorm:"primaryKey"`
	Winter string `gorm:"size:10"`
	Summer string `gorm:"size:10"`
	Autumn string `gorm:"size:10"`
	Spring string `gorm:"size:10"`
}

// Pereval представляет основную запись о перевале
type Pereval struct {
	ID          uint   `gorm:"primaryKey"`
	BeautyTitle string `gorm:"size:255"`
	Title       string `gorm:"size:255"`
	OtherTitles string `gorm:"size:255"`
	Connect     string `gorm:"size:255"`
	AddTime     string `gorm:"size:32"`
	Status      string `gorm:"size:20;default:new"`

	// Связи: ровно один пользователь, одни координаты, один уровень
	UserID   uint   `gorm:"not null"`
	User     User   `gorm:"foreignKey:UserID"`
	CoordsID uint   `gorm:"not null"`
	Coords   Coords `gorm:"foreignKey:CoordsID"`
	LevelID  uint   `gorm:"not null"`
	Level    Level  `gorm:"foreignKey:LevelID"`

	Images []Image `gorm:"foreignKey:PerevalID"`
}

// Image представляет прикрепленное изображение перевала.
// Данные хранятся как непрозрачный base64-блок.
type Image struct {
	ID        uint   `gorm:"primaryKey"`
	PerevalID uint   `gorm:"not null"`
	Data      string `gorm:"type:text"`
	Title     string `gorm:"size:255"`
	DateAdded time.Time
}

// SubmitRequest представляет сырое тело запроса POST /submitData/.
// Указатели различают отсутствующие поля и присутствующие пустые:
// nil images - поле не передано, пустой срез - передан пустой список.
type SubmitRequest struct {
	BeautyTitle *string        `json:"beauty_title"`
	Title       *string        `json:"title"`
	OtherTitles string         `json:"other_titles"`
	Connect     string         `json:"connect"`
	AddTime     string         `json:"add_time"`
	User        *UserRequest   `json:"user"`
	Coords      *CoordsRequest `json:"coords"`
	Level       *LevelRequest  `json:"level"`
	Images      *[]ImageRequest `json:"images"`
	// Статус клиента игнорируется: новый перевал всегда создается со статусом new
	Status string `json:"status"`
}

// UserRequest представляет вложенный объект user в запросе
type UserRequest struct {
	Email *string `json:"email"`
	Fam   *string `json:"fam"`
	Name  *string `json:"name"`
	Otc   string  `json:"otc"`
	Phone *string `json:"phone"`
}

// CoordsRequest представляет вложенный объект coords в запросе.
// Значения принимаются как JSON-числа или числовые строки.
type CoordsRequest struct {
	Latitude  interface{} `json:"latitude"`
	Longitude interface{} `json:"longitude"`
	Height    interface{} `json:"height"`
}

// LevelRequest представляет вложенный объект level в запросе
type LevelRequest struct {
	Winter string `json:"winter"`
	Summer string `json:"summer"`
	Autumn string `json:"autumn"`
	Spring string `json:"spring"`
}

// ImageRequest представляет элемент массива images в запросе
type ImageRequest struct {
	Data  *string `json:"data"`
	Title *string `json:"title"`
}

// PerevalPayload представляет нормализованные данные отправки.
// Создается только валидатором, рабочий процесс отправки
// никогда не принимает сырой ввод.
type PerevalPayload struct {
	BeautyTitle string
	Title       string
	OtherTitles string
	Connect     string
	AddTime     string
	User        UserPayload
	Coords      CoordsPayload
	Level       LevelPayload
	Images      []ImagePayload
}

// UserPayload представляет нормализованные данные пользователя
type UserPayload struct {
	Email string
	Fam   string
	Name  string
	Otc   string
	Phone string
}

// CoordsPayload представляет нормализованные координаты
type CoordsPayload struct {
	Latitude  float64
	Longitude float64
	Height    int
}

// LevelPayload представляет нормализованные категории сложности
type LevelPayload struct {
	Winter string
	Summer string
	Autumn string
	Spring string
}

// ImagePayload представляет нормализованное изображение
type ImagePayload struct {
	Data  string
	Title string
}

// SubmitResponse представляет ответ эндпоинта POST /submitData/
type SubmitResponse struct {
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	ID      *uint               `json:"id"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// PerevalResponse представляет восстановленное представление отправки,
// повторяющее форму исходного тела запроса
type PerevalResponse struct {
	ID          uint            `json:"id"`
	BeautyTitle string          `json:"beauty_title"`
	Title       string          `json:"title"`
	OtherTitles string          `json:"other_titles"`
	Connect     string          `json:"connect"`
	AddTime     string          `json:"add_time"`
	Status      string          `json:"status"`
	User        UserResponse    `json:"user"`
	Coords      CoordsResponse  `json:"coords"`
	Level       LevelResponse   `json:"level"`
	Images      []ImageResponse `json:"images"`
}

// UserResponse представляет вложенный объект user в ответе
type UserResponse struct {
	Email string `json:"email"`
	Fam   string `json:"fam"`
	Name  string `json:"name"`
	Otc   string `json:"otc"`
	Phone string `json:"phone"`
}

// CoordsResponse представляет вложенный объект coords в ответе
type CoordsResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    int     `json:"height"`
}

// LevelResponse представляет вложенный объект level в ответе
type LevelResponse struct {
	Winter string `json:"winter"`
	Summer string `json:"summer"`
	Autumn string `json:"autumn"`
	Spring string `json:"spring"`
}

// ImageResponse представляет элемент массива images в ответе
type ImageResponse struct {
	Data  string `json:"data"`
	Title string `json:"title"`
}

// TableName устанавливает имя таблицы для модели User
func (User) TableName() string {
	return "pereval_user"
}

// TableName устанавливает имя таблицы для модели Coords
func (Coords) TableName() string {
	return "pereval_coords"
}

// TableName устанавливает имя таблицы для модели Level
func (Level) TableName() string {
	return "pereval_level"
}

// TableName устанавливает имя таблицы для модели Pereval
func (Pereval) TableName() string {
	return "pereval"
}

// TableName устанавливает имя таблицы для модели Image
func (Image) TableName() string {
	return "pereval_image"
}
