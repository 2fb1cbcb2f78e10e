package repository

import (
	"context"

	"gorm.io/gorm"

	"timecraft/internal/model"
	"timecraft/internal/pagination"
)

// ExportRow is a flattened entry/rewrite/client row used by CSV export.
type ExportRow struct {
	Entry   model.TimeEntry
	Rewrite model.RewriteRecord
	Client  model.Client
}

// EntryRepository defines persistence for time entries, rewrite records, and
// rewrite version history.
type EntryRepository interface {
	CreateEntry(ctx context.Context, entry *model.TimeEntry) error
	FindEntryByID(ctx context.Context, id string) (*model.TimeEntry, error)
	ListRecent(ctx context.Context, params pagination.Params) ([]model.TimeEntry, int64, error)

	CreateRewrite(ctx context.Context, rewrite *model.RewriteRecord) error
	UpdateRewrite(ctx context.Context, rewrite *model.RewriteRecord) error
	FindRewriteByID(ctx context.Context, id string) (*model.RewriteRecord, error)
	LatestRewriteForEntry(ctx context.Context, entryID string) (*model.RewriteRecord, error)
	ListForExport(ctx context.Context, clientIDs []string) ([]ExportRow, error)

	CreateVersion(ctx context.Context, version *model.RewriteVersion) error
	FindVersion(ctx context.Context, entryID, versionID string) (*model.RewriteVersion, error)
	ListVersions(ctx context.Context, entryID string) ([]model.RewriteVersion, error)
	CountVersions(ctx context.Context, entryID string) (int64, error)
	ClearCurrentVersion(ctx context.Context, entryID string) error
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) CreateEntry(ctx context.Context, entry *model.TimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *entryRepository) FindEntryByID(ctx context.Context, id string) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	if err := r.db.WithContext(ctx).Preload("Client").Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListRecent returns entries newest first with their client preloaded.
func (r *entryRepository) ListRecent(ctx context.Context, params pagination.Params) ([]model.TimeEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.TimeEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.TimeEntry
	q := r.db.WithContext(ctx).Preload("Client").Order("created_at DESC")
	if err := pagination.Apply(q, params).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *entryRepository) CreateRewrite(ctx context.Context, rewrite *model.RewriteRecord) error {
	return r.db.WithContext(ctx).Create(rewrite).Error
}

func (r *entryRepository) UpdateRewrite(ctx context.Context, rewrite *model.RewriteRecord) error {
	return r.db.WithContext(ctx).Save(rewrite).Error
}

func (r *entryRepository) FindRewriteByID(ctx context.Context, id string) (*model.RewriteRecord, error) {
	var rewrite model.RewriteRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rewrite).Error; err != nil {
		return nil, err
	}
	return &rewrite, nil
}

func (r *entryRepository) LatestRewriteForEntry(ctx context.Context, entryID string) (*model.RewriteRecord, error) {
	var rewrite model.RewriteRecord
	err := r.db.WithContext(ctx).
		Where("time_entry_id = ?", entryID).
		Order("created_at DESC").
		First(&rewrite).Error
	if err != nil {
		return nil, err
	}
	return &rewrite, nil
}

// ListForExport joins entries with their rewrites and clients, restricted to
// the given client IDs.
func (r *entryRepository) ListForExport(ctx context.Context, clientIDs []string) ([]ExportRow, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Rewrites").
		Where("client_id IN ?", clientIDs).
		Order("created_at").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0, len(entries))
	for _, entry := range entries {
		for _, rewrite := range entry.Rewrites {
			rows = append(rows, ExportRow{
				Entry:   entry,
				Rewrite: rewrite,
				Client:  entry.Client,
			})
		}
	}
	return rows, nil
}

func (r *entryRepository) CreateVersion(ctx context.Context, version *model.RewriteVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

func (r *entryRepository) FindVersion(ctx context.Context, entryID, versionID string) (*model.RewriteVersion, error) {
	var version model.RewriteVersion
	err := r.db.WithContext(ctx).
		Where("id = ? AND time_entry_id = ?", versionID, entryID).
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *entryRepository) ListVersions(ctx context.Context, entryID string) ([]model.RewriteVersion, error) {
	var versions []model.RewriteVersion
	err := r.db.WithContext(ctx).
		Where("time_entry_id = ?", entryID).
		Order("version_number DESC").
		Find(&versions).Error
	if err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *entryRepository) CountVersions(ctx context.Context, entryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RewriteVersion{}).
		Where("time_entry_id = ?", entryID).
		Count(&count).Error
	return count, err
}

func (r *entryRepository) ClearCurrentVersion(ctx context.Context, entryID string) error {
	return r.db.WithContext(ctx).
		Model(&model.RewriteVersion{}).
		Where("time_entry_id = ?", entryID).
		Update("is_current", false).Error
}
