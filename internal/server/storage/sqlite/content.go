package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/newsdeskhq/newsdesk/internal/models"
	"github.com/newsdeskhq/newsdesk/internal/server/storage"
)

// CreateDocument inserts a new document and fills in ID and timestamps
func (s *Storage) CreateDocument(ctx context.Context, doc *models.Document) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (title, body) VALUES (?, ?)`,
		doc.Title, doc.Body,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted document id: %w", err)
	}
	doc.ID = id

	err = s.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM documents WHERE id = ?`, id,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to read document timestamps: %w", err)
	}

	return nil
}

// GetDocument retrieves document by ID
func (s *Storage) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	doc := &models.Document{}

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, body, created_at, updated_at FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &doc.Title, &doc.Body, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// ListDocuments returns all documents, newest first
func (s *Storage) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, body, created_at, updated_at FROM documents ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*models.Document, 0)
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Body, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

// UpdateDocument updates title and body by ID
func (s *Storage) UpdateDocument(ctx context.Context, doc *models.Document) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE documents SET title = ?, body = ? WHERE id = ?`,
		doc.Title, doc.Body, doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrDocumentNotFound
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM documents WHERE id = ?`, doc.ID,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to read document timestamps: %w", err)
	}

	return nil
}

// DeleteDocument deletes document by ID
func (s *Storage) DeleteDocument(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrDocumentNotFound
	}

	return nil
}

// CreateNews inserts a new news item and fills in ID and timestamps
func (s *Storage) CreateNews(ctx context.Context, item *models.NewsItem) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO news (title, body) VALUES (?, ?)`,
		item.Title, item.Body,
	)
	if err != nil {
		return fmt.Errorf("failed to insert news item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted news id: %w", err)
	}
	item.ID = id

	err = s.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM news WHERE id = ?`, id,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to read news timestamps: %w", err)
	}

	return nil
}

// GetNews retrieves news item by ID
func (s *Storage) GetNews(ctx context.Context, id int64) (*models.NewsItem, error) {
	item := &models.NewsItem{}

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, body, created_at, updated_at FROM news WHERE id = ?`, id,
	).Scan(&item.ID, &item.Title, &item.Body, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to get news item: %w", err)
	}

	return item, nil
}

// ListNews returns all news items, newest first
func (s *Storage) ListNews(ctx context.Context) ([]*models.NewsItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, body, created_at, updated_at FROM news ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	items := make([]*models.NewsItem, 0)
	for rows.Next() {
		item := &models.NewsItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news: %w", err)
	}

	return items, nil
}

// UpdateNews updates title and body by ID
func (s *Storage) UpdateNews(ctx context.Context, item *models.NewsItem) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE news SET title = ?, body = ? WHERE id = ?`,
		item.Title, item.Body, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update news item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNewsNotFound
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM news WHERE id = ?`, item.ID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to read news timestamps: %w", err)
	}

	return nil
}

// DeleteNews deletes news item by ID
func (s *Storage) DeleteNews(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrNewsNotFound
	}

	return nil
}

// CreateSubscriber inserts a new newsletter subscriber
func (s *Storage) CreateSubscriber(ctx context.Context, sub *models.Subscriber) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO subscribers (email) VALUES (?)`,
		sub.Email,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: subscribers.email") {
			return storage.ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted subscriber id: %w", err)
	}
	sub.ID = id

	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM subscribers WHERE id = ?`, id,
	).Scan(&sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to read subscriber timestamp: %w", err)
	}

	return nil
}
