package api

// DocumentRequest представляет запрос на создание или обновление документа
type DocumentRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewsRequest представляет запрос на создание или обновление новости
type NewsRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SubscribeRequest представляет запрос на подписку на рассылку
type SubscribeRequest struct {
	Email string `json:"email"`
}

// MessageResponse представляет простой ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}
