package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"timecraft/internal/llm"
	"timecraft/internal/model"
	"timecraft/internal/pagination"
	"timecraft/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) GrantPermission(ctx context.Context, userID uint, clientID string) error {
	args := m.Called(ctx, userID, clientID)
	return args.Error(0)
}

func (m *MockUserRepository) RevokePermission(ctx context.Context, userID uint, clientID string) error {
	args := m.Called(ctx, userID, clientID)
	return args.Error(0)
}

func (m *MockUserRepository) ReplacePermissions(ctx context.Context, userID uint, clientIDs []string) error {
	args := m.Called(ctx, userID, clientIDs)
	return args.Error(0)
}

func (m *MockUserRepository) PermittedClientIDs(ctx context.Context, userID uint) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) HasPermission(ctx context.Context, userID uint, clientID string) (bool, error) {
	args := m.Called(ctx, userID, clientID)
	return args.Bool(0), args.Error(1)
}

// MockClientRepository is a mock implementation of repository.ClientRepository.
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context) ([]model.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockClientRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEntryRepository is a mock implementation of repository.EntryRepository.
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) CreateEntry(ctx context.Context, entry *model.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, id string) (*model.TimeEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimeEntry), args.Error(1)
}

func (m *MockEntryRepository) ListRecent(ctx context.Context, params pagination.Params) ([]model.TimeEntry, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.TimeEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) CreateRewrite(ctx context.Context, rewrite *model.RewriteRecord) error {
	args := m.Called(ctx, rewrite)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateRewrite(ctx context.Context, rewrite *model.RewriteRecord) error {
	args := m.Called(ctx, rewrite)
	return args.Error(0)
}

func (m *MockEntryRepository) FindRewriteByID(ctx context.Context, id string) (*model.RewriteRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RewriteRecord), args.Error(1)
}

func (m *MockEntryRepository) LatestRewriteForEntry(ctx context.Context, entryID string) (*model.RewriteRecord, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RewriteRecord), args.Error(1)
}

func (m *MockEntryRepository) ListForExport(ctx context.Context, clientIDs []string) ([]repository.ExportRow, error) {
	args := m.Called(ctx, clientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ExportRow), args.Error(1)
}

func (m *MockEntryRepository) CreateVersion(ctx context.Context, version *model.RewriteVersion) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockEntryRepository) FindVersion(ctx context.Context, entryID, versionID string) (*model.RewriteVersion, error) {
	args := m.Called(ctx, entryID, versionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RewriteVersion), args.Error(1)
}

func (m *MockEntryRepository) ListVersions(ctx context.Context, entryID string) ([]model.RewriteVersion, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RewriteVersion), args.Error(1)
}

func (m *MockEntryRepository) CountVersions(ctx context.Context, entryID string) (int64, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) ClearCurrentVersion(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// MockAuditRepository is a mock implementation of repository.AuditRepository.
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, event *model.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEvent), args.Error(1)
}

// MockGamificationRepository is a mock implementation of
// repository.GamificationRepository.
type MockGamificationRepository struct {
	mock.Mock
}

func (m *MockGamificationRepository) FindOrCreateProfile(ctx context.Context, userID uint) (*model.GamificationProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GamificationProfile), args.Error(1)
}

func (m *MockGamificationRepository) UpdateProfile(ctx context.Context, profile *model.GamificationProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockGamificationRepository) CreateTransaction(ctx context.Context, tx *model.XPTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockGamificationRepository) ListTransactions(ctx context.Context, userID uint, limit int) ([]model.XPTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.XPTransaction), args.Error(1)
}

func (m *MockGamificationRepository) ListBadges(ctx context.Context) ([]model.Badge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Badge), args.Error(1)
}

func (m *MockGamificationRepository) CreateBadge(ctx context.Context, badge *model.Badge) error {
	args := m.Called(ctx, badge)
	return args.Error(0)
}

func (m *MockGamificationRepository) CountBadges(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGamificationRepository) ListUserBadges(ctx context.Context, userID uint) ([]model.UserBadge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserBadge), args.Error(1)
}

func (m *MockGamificationRepository) HasBadge(ctx context.Context, userID, badgeID uint) (bool, error) {
	args := m.Called(ctx, userID, badgeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGamificationRepository) AwardBadge(ctx context.Context, award *model.UserBadge) error {
	args := m.Called(ctx, award)
	return args.Error(0)
}

// MockProgressRepository is a mock implementation of
// repository.ProgressRepository.
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) FindProgress(ctx context.Context, userID, lessonID uint) (*model.UserProgress, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) CreateProgress(ctx context.Context, progress *model.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) UpdateProgress(ctx context.Context, progress *model.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) ListProgress(ctx context.Context, userID uint) ([]model.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) HasStepCompletion(ctx context.Context, userID, stepID uint) (bool, error) {
	args := m.Called(ctx, userID, stepID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressRepository) CreateStepCompletion(ctx context.Context, completion *model.StepCompletion) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

func (m *MockProgressRepository) CountCompletedLessons(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepository) CountCompletedLessonsIn(ctx context.Context, userID uint, lessonIDs []uint) (int64, error) {
	args := m.Called(ctx, userID, lessonIDs)
	return args.Get(0).(int64), args.Error(1)
}

// MockContentRepository is a mock implementation of
// repository.ContentRepository.
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) ListTracks(ctx context.Context) ([]model.Track, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Track), args.Error(1)
}

func (m *MockContentRepository) FindTrackBySlug(ctx context.Context, slug string) (*model.Track, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Track), args.Error(1)
}

func (m *MockContentRepository) FindLesson(ctx context.Context, id uint) (*model.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lesson), args.Error(1)
}

func (m *MockContentRepository) FindStep(ctx context.Context, id uint) (*model.LessonStep, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LessonStep), args.Error(1)
}

func (m *MockContentRepository) StepsForLesson(ctx context.Context, lessonID uint) ([]model.LessonStep, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LessonStep), args.Error(1)
}

func (m *MockContentRepository) LessonIDsForTrack(ctx context.Context, trackID uint) ([]uint, error) {
	args := m.Called(ctx, trackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockContentRepository) TrackForLesson(ctx context.Context, lessonID uint) (*model.Track, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Track), args.Error(1)
}

func (m *MockContentRepository) CreateTrack(ctx context.Context, track *model.Track) error {
	args := m.Called(ctx, track)
	return args.Error(0)
}

func (m *MockContentRepository) CreateModule(ctx context.Context, module *model.CourseModule) error {
	args := m.Called(ctx, module)
	return args.Error(0)
}

func (m *MockContentRepository) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockContentRepository) CreateStep(ctx context.Context, step *model.LessonStep) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

func (m *MockContentRepository) CountTracks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnalyticsRepository is a mock implementation of
// repository.AnalyticsRepository.
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) Create(ctx context.Context, event *model.AnalyticsEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) CountByType(ctx context.Context, userID uint) ([]repository.EventCountRow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.EventCountRow), args.Error(1)
}

// MockRewriter is a mock implementation of llm.Rewriter.
type MockRewriter struct {
	mock.Mock
}

func (m *MockRewriter) Rewrite(ctx context.Context, original string, hours decimal.Decimal, rules llm.Rules) llm.Result {
	args := m.Called(ctx, original, hours, rules)
	return args.Get(0).(llm.Result)
}

func (m *MockRewriter) ModelName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockRewriter) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fixedTime is a helper for deterministic timestamps in tests.
func fixedTime(day int) time.Time {
	return time.Date(2026, time.March, day, 12, 0, 0, 0, time.UTC)
}
