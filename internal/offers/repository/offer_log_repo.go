package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/marinv/contractor-pm/internal/offers/domain"
)

const (
	offerLogPrefix = "offers:project:" // List of sent offers: offers:project:{public_id}
	offerLogMax    = 50
	offerLogTTL    = 180 * 24 * time.Hour
)

// OfferLogRepository keeps a short, newest-first history of sent offers per project.
type OfferLogRepository struct {
	client *redis.Client
}

func NewOfferLogRepository(client *redis.Client) *OfferLogRepository {
	return &OfferLogRepository{client: client}
}

// Record stores rec, filling in the id and timestamp when missing.
func (r *OfferLogRepository) Record(ctx context.Context, rec *domain.OfferRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.SentAt.IsZero() {
		rec.SentAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal offer record: %w", err)
	}

	key := r.key(rec.ProjectPublicID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, offerLogMax-1)
	pipe.Expire(ctx, key, offerLogTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record offer: %w", err)
	}
	return nil
}

// List returns the project's offers, newest first.
func (r *OfferLogRepository) List(ctx context.Context, projectPublicID string) ([]domain.OfferRecord, error) {
	items, err := r.client.LRange(ctx, r.key(projectPublicID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	out := make([]domain.OfferRecord, 0, len(items))
	for _, item := range items {
		var rec domain.OfferRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal offer record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Forget drops the history of a deleted project.
func (r *OfferLogRepository) Forget(ctx context.Context, projectPublicID string) error {
	if err := r.client.Del(ctx, r.key(projectPublicID)).Err(); err != nil {
		return fmt.Errorf("failed to delete offer log: %w", err)
	}
	return nil
}

func (r *OfferLogRepository) key(projectPublicID string) string {
	return offerLogPrefix + projectPublicID
}
