package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
	"timecraft/internal/repository"
)

// RestoredVersion is the response of a version restore.
type RestoredVersion struct {
	Message    string               `json:"message"`
	NewVersion model.RewriteVersion `json:"new_version"`
}

// HistoryService manages rewrite version history for time entries.
type HistoryService interface {
	ListVersions(ctx context.Context, user *model.User, entryID string) ([]model.RewriteVersion, error)
	RestoreVersion(ctx context.Context, user *model.User, entryID, versionID string) (*RestoredVersion, error)
}

type historyService struct {
	entries repository.EntryRepository
	access  ClientService
}

// NewHistoryService creates a new history service.
func NewHistoryService(entries repository.EntryRepository, access ClientService) HistoryService {
	return &historyService{entries: entries, access: access}
}

func (s *historyService) ListVersions(ctx context.Context, user *model.User, entryID string) ([]model.RewriteVersion, error) {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.access.EnsureAccess(ctx, user, entry.ClientID); err != nil {
		return nil, err
	}
	return s.entries.ListVersions(ctx, entryID)
}

// RestoreVersion copies an old version to the top of the history and marks
// it current. The restored version keeps its own data; only the number and
// the notes change.
func (s *historyService) RestoreVersion(ctx context.Context, user *model.User, entryID, versionID string) (*RestoredVersion, error) {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.access.EnsureAccess(ctx, user, entry.ClientID); err != nil {
		return nil, err
	}

	version, err := s.entries.FindVersion(ctx, entryID, versionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrVersionNotFound
		}
		return nil, err
	}

	count, err := s.entries.CountVersions(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if err := s.entries.ClearCurrentVersion(ctx, entryID); err != nil {
		return nil, err
	}

	newVersion := &model.RewriteVersion{
		ID:              uuid.New().String(),
		TimeEntryID:     entryID,
		VersionNumber:   int(count) + 1,
		Standard:        version.Standard,
		ClientCompliant: version.ClientCompliant,
		AuditSafe:       version.AuditSafe,
		Notes:           fmt.Sprintf("Restored from version %d", version.VersionNumber),
		CreatedBy:       user.Username,
		IsCurrent:       true,
	}
	if err := s.entries.CreateVersion(ctx, newVersion); err != nil {
		return nil, err
	}

	return &RestoredVersion{
		Message:    fmt.Sprintf("Restored version %d as version %d", version.VersionNumber, newVersion.VersionNumber),
		NewVersion: *newVersion,
	}, nil
}

func (s *historyService) findEntry(ctx context.Context, entryID string) (*model.TimeEntry, error) {
	entry, err := s.entries.FindEntryByID(ctx, entryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}
