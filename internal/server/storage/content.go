package storage

import (
	"context"

	"github.com/newsdeskhq/newsdesk/internal/models"
)

// DocumentStorage defines interface for document persistence
type DocumentStorage interface {
	// CreateDocument inserts a new document and fills in ID and timestamps
	CreateDocument(ctx context.Context, doc *models.Document) error

	// GetDocument retrieves document by ID
	// Returns ErrDocumentNotFound if it doesn't exist
	GetDocument(ctx context.Context, id int64) (*models.Document, error)

	// ListDocuments returns all documents, newest first
	ListDocuments(ctx context.Context) ([]*models.Document, error)

	// UpdateDocument updates title and body by ID
	// Returns ErrDocumentNotFound if it doesn't exist
	UpdateDocument(ctx context.Context, doc *models.Document) error

	// DeleteDocument deletes document by ID
	// Returns ErrDocumentNotFound if it doesn't exist
	DeleteDocument(ctx context.Context, id int64) error
}

// NewsStorage defines interface for news feed persistence
type NewsStorage interface {
	// CreateNews inserts a new news item and fills in ID and timestamps
	CreateNews(ctx context.Context, item *models.NewsItem) error

	// GetNews retrieves news item by ID
	// Returns ErrNewsNotFound if it doesn't exist
	GetNews(ctx context.Context, id int64) (*models.NewsItem, error)

	// ListNews returns all news items, newest first
	ListNews(ctx context.Context) ([]*models.NewsItem, error)

	// UpdateNews updates title and body by ID
	// Returns ErrNewsNotFound if it doesn't exist
	UpdateNews(ctx context.Context, item *models.NewsItem) error

	// DeleteNews deletes news item by ID
	// Returns ErrNewsNotFound if it doesn't exist
	DeleteNews(ctx context.Context, id int64) error
}

// SubscriberStorage defines interface for newsletter subscriptions.
// Emails must be normalized (lower-cased) by the caller.
type SubscriberStorage interface {
	// CreateSubscriber inserts a new subscriber
	// Returns ErrAlreadySubscribed if the email is already subscribed
	CreateSubscriber(ctx context.Context, sub *models.Subscriber) error
}
