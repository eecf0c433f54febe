package store

import (
	"context"
	"time"

	"github.com/Kevbec/SalonManager/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is one row of the documents table. A collection name plus an
// owner id reproduce the collection/owner filtering of a hosted document
// store on top of postgres.
type Document struct {
	ID         string       `gorm:"type:uuid;primaryKey"`
	OwnerID    string       `gorm:"type:uuid;index:idx_documents_owner;not null"`
	Collection string       `gorm:"index:idx_documents_owner;not null"`
	Data       models.JSONB `gorm:"type:jsonb"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DocumentStore is the postgres-backed Gateway.
type DocumentStore struct {
	db *gorm.DB
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) ListByOwner(ctx context.Context, collection, ownerID string) ([]Record, error) {
	var docs []Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND owner_id = ?", collection, ownerID).
		Order("created_at").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(docs))
	for _, d := range docs {
		records = append(records, Record{ID: d.ID, Data: map[string]any(d.Data)})
	}
	return records, nil
}

func (s *DocumentStore) Create(ctx context.Context, collection, ownerID string, data map[string]any) (string, error) {
	doc := Document{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Collection: collection,
		Data:       models.JSONB(data),
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, data map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(&Document{}).
		Where("collection = ? AND id = ?", collection, id).
		Update("data", models.JSONB(data))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	result := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Exists(ctx context.Context, collection, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Document{}).
		Where("collection = ? AND id = ?", collection, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
