package models

import "time"

// Document представляет документ (страницу) сайта
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewsItem представляет новость в ленте
type NewsItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscriber представляет подписчика рассылки
type Subscriber struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"` // уникальный, хранится в lower-case
	CreatedAt time.Time `json:"created_at"`
}
