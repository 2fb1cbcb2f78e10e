package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"timecraft/internal/model"
)

// ClientActivityRow is an aggregate of entries and hours for one client.
type ClientActivityRow struct {
	ClientID string          `json:"id"`
	Name     string          `json:"name"`
	Entries  int64           `json:"entries"`
	Hours    decimal.Decimal `json:"hours"`
}

// StatsRepository aggregates rewrite activity for the analytics dashboard.
type StatsRepository interface {
	CountRewrites(ctx context.Context) (int64, error)
	CountRewritesBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumHours(ctx context.Context) (decimal.Decimal, error)
	SumHoursBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	ClientActivity(ctx context.Context) ([]ClientActivityRow, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountRewrites(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RewriteRecord{}).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountRewritesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RewriteRecord{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) SumHours(ctx context.Context) (decimal.Decimal, error) {
	return r.sumHours(r.db.WithContext(ctx).Model(&model.TimeEntry{}))
}

func (r *statsRepository) SumHoursBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Model(&model.TimeEntry{}).
		Where("created_at >= ? AND created_at < ?", from, to)
	return r.sumHours(q)
}

func (r *statsRepository) sumHours(q *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := q.Select("SUM(hours)").Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// ClientActivity returns per-client entry counts and hour sums, busiest first.
func (r *statsRepository) ClientActivity(ctx context.Context) ([]ClientActivityRow, error) {
	var rows []ClientActivityRow
	err := r.db.WithContext(ctx).
		Model(&model.TimeEntry{}).
		Select("time_entries.client_id AS client_id, clients.name AS name, COUNT(*) AS entries, SUM(time_entries.hours) AS hours").
		Joins("JOIN clients ON clients.id = time_entries.client_id").
		Group("time_entries.client_id, clients.name").
		Order("hours DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
