package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "timecraft/internal/errors"
	"timecraft/internal/llm"
	"timecraft/internal/model"
)

func newRewriteFixture() (*MockEntryRepository, *MockClientRepository, *MockAuditRepository, *MockUserRepository, *MockRewriter, RewriteService) {
	entries := new(MockEntryRepository)
	clients := new(MockClientRepository)
	audits := new(MockAuditRepository)
	users := new(MockUserRepository)
	rewriter := new(MockRewriter)

	access := NewClientService(clients, users)
	svc := NewRewriteService(entries, clients, audits, access, rewriter)
	return entries, clients, audits, users, rewriter, svc
}

func demoResult() llm.Result {
	return llm.Result{
		Standard:        "Reviewed and analyzed client correspondence regarding contract terms.",
		ClientCompliant: "Reviewed and analyzed correspondence; contract terms.",
		AuditSafe:       "Reviewed and analyzed client correspondence regarding disputed contract terms.",
		Notes:           "Clarified subject.",
	}
}

func TestRewrite_EmptyNarrative(t *testing.T) {
	_, _, _, _, _, svc := newRewriteFixture()

	_, err := svc.Rewrite(context.Background(), "   ", decimal.NewFromInt(1), nil)

	assert.ErrorIs(t, err, apperrors.ErrEmptyNarrative)
}

func TestRewrite_InvalidHours(t *testing.T) {
	_, _, _, _, _, svc := newRewriteFixture()

	_, err := svc.Rewrite(context.Background(), "reviewed docs", decimal.NewFromInt(30), nil)

	assert.Error(t, err)
}

func TestRewriteAndSave_PersistsEverything(t *testing.T) {
	entries, clients, audits, users, rewriter, svc := newRewriteFixture()

	admin := &model.User{ID: 1, Username: "admin", Role: "admin"}
	client := &model.Client{ID: "C001", Name: "Acme Manufacturing"}

	clients.On("FindByID", mock.Anything, "C001").Return(client, nil)
	rewriter.On("Rewrite", mock.Anything, "reviewed email re contract", mock.Anything, mock.Anything).
		Return(demoResult())
	rewriter.On("ModelName").Return("qwen2.5:7b")
	entries.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e *model.TimeEntry) bool {
		return e.ClientID == "C001" && e.Original == "reviewed email re contract"
	})).Return(nil)
	entries.On("CreateRewrite", mock.Anything, mock.MatchedBy(func(r *model.RewriteRecord) bool {
		return r.Status == model.FeedbackNotSubmitted && r.Standard != ""
	})).Return(nil)
	entries.On("CreateVersion", mock.Anything, mock.MatchedBy(func(v *model.RewriteVersion) bool {
		return v.VersionNumber == 1 && v.IsCurrent && v.CreatedBy == "admin"
	})).Return(nil)
	audits.On("Create", mock.Anything, mock.MatchedBy(func(e *model.AuditEvent) bool {
		return e.Username == "admin" && e.ClientID == "C001" && e.ModelName == "qwen2.5:7b"
	})).Return(nil)

	saved, err := svc.RewriteAndSave(context.Background(), admin, "C001", "reviewed email re contract", decimal.NewFromFloat(1.5))

	assert.NoError(t, err)
	assert.NotEmpty(t, saved.TimeEntryID)
	assert.NotEmpty(t, saved.RewriteID)
	assert.Equal(t, "C001", saved.Client.ID)
	assert.Equal(t, demoResult().Standard, saved.Rewrite.Standard)
	entries.AssertExpectations(t)
	audits.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestRewriteAndSave_DeniedWithoutPermission(t *testing.T) {
	_, clients, _, users, _, svc := newRewriteFixture()

	user := &model.User{ID: 2, Username: "demo", Role: "user"}
	clients.On("FindByID", mock.Anything, "C001").
		Return(&model.Client{ID: "C001", Name: "Acme Manufacturing"}, nil)
	users.On("HasPermission", mock.Anything, uint(2), "C001").Return(false, nil)

	_, err := svc.RewriteAndSave(context.Background(), user, "C001", "reviewed docs", decimal.NewFromInt(1))

	assert.ErrorIs(t, err, apperrors.ErrClientAccessDenied)
}

func TestRewriteAndSave_UnknownClient(t *testing.T) {
	_, clients, _, _, _, svc := newRewriteFixture()

	admin := &model.User{ID: 1, Username: "admin", Role: "admin"}
	clients.On("FindByID", mock.Anything, "NOPE").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.RewriteAndSave(context.Background(), admin, "NOPE", "reviewed docs", decimal.NewFromInt(1))

	assert.ErrorIs(t, err, apperrors.ErrClientNotFound)
}

func TestTagFeedback_SuccessIngestsExample(t *testing.T) {
	entries, clients, _, _, _, svc := newRewriteFixture()

	rewrite := &model.RewriteRecord{
		ID:          "RW-1",
		TimeEntryID: "TE-1",
		Standard:    "Reviewed and analyzed correspondence.",
	}
	entry := &model.TimeEntry{ID: "TE-1", ClientID: "C001", Original: "reviewed email", Hours: decimal.NewFromInt(1)}
	client := &model.Client{ID: "C001", Name: "Acme Manufacturing"}

	entries.On("FindRewriteByID", mock.Anything, "RW-1").Return(rewrite, nil)
	entries.On("FindEntryByID", mock.Anything, "TE-1").Return(entry, nil)
	clients.On("FindByID", mock.Anything, "C001").Return(client, nil)
	entries.On("UpdateRewrite", mock.Anything, rewrite).Return(nil)
	clients.On("Update", mock.Anything, client).Return(nil)

	result, err := svc.TagFeedback(context.Background(), "RW-1", FeedbackInput{
		Status:          model.FeedbackSuccess,
		SelectedVariant: model.VariantStandard,
		FeedbackNotes:   "client approved",
	})

	assert.NoError(t, err)
	assert.True(t, result.AutoIngested)
	assert.Equal(t, model.FeedbackSuccess, result.Status)
	assert.Contains(t, client.AcceptedExamples, "SUCCESS EXAMPLE")
	assert.Contains(t, client.AcceptedExamples, "Reviewed and analyzed correspondence.")
}

func TestTagFeedback_FailureIngestsDeniedExample(t *testing.T) {
	entries, clients, _, _, _, svc := newRewriteFixture()

	rewrite := &model.RewriteRecord{ID: "RW-2", TimeEntryID: "TE-2", AuditSafe: "Too verbose rewrite."}
	entry := &model.TimeEntry{ID: "TE-2", ClientID: "C002", Original: "call", Hours: decimal.NewFromFloat(0.5)}
	client := &model.Client{ID: "C002", Name: "Globex Corporation"}

	entries.On("FindRewriteByID", mock.Anything, "RW-2").Return(rewrite, nil)
	entries.On("FindEntryByID", mock.Anything, "TE-2").Return(entry, nil)
	clients.On("FindByID", mock.Anything, "C002").Return(client, nil)
	entries.On("UpdateRewrite", mock.Anything, rewrite).Return(nil)
	clients.On("Update", mock.Anything, client).Return(nil)

	result, err := svc.TagFeedback(context.Background(), "RW-2", FeedbackInput{
		Status:          model.FeedbackFailure,
		SelectedVariant: model.VariantAuditSafe,
	})

	assert.NoError(t, err)
	assert.True(t, result.AutoIngested)
	assert.Contains(t, client.DeniedExamples, "FAILURE EXAMPLE")
	assert.Contains(t, client.DeniedExamples, "Not specified")
}

func TestTagFeedback_NoVariantNoIngestion(t *testing.T) {
	entries, clients, _, _, _, svc := newRewriteFixture()

	rewrite := &model.RewriteRecord{ID: "RW-3", TimeEntryID: "TE-3"}
	entry := &model.TimeEntry{ID: "TE-3", ClientID: "C001"}
	client := &model.Client{ID: "C001"}

	entries.On("FindRewriteByID", mock.Anything, "RW-3").Return(rewrite, nil)
	entries.On("FindEntryByID", mock.Anything, "TE-3").Return(entry, nil)
	clients.On("FindByID", mock.Anything, "C001").Return(client, nil)
	entries.On("UpdateRewrite", mock.Anything, rewrite).Return(nil)

	result, err := svc.TagFeedback(context.Background(), "RW-3", FeedbackInput{
		Status: model.FeedbackNotSubmitted,
	})

	assert.NoError(t, err)
	assert.False(t, result.AutoIngested)
	clients.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTagFeedback_RewriteNotFound(t *testing.T) {
	entries, _, _, _, _, svc := newRewriteFixture()

	entries.On("FindRewriteByID", mock.Anything, "RW-x").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.TagFeedback(context.Background(), "RW-x", FeedbackInput{Status: model.FeedbackSuccess})

	assert.ErrorIs(t, err, apperrors.ErrRewriteNotFound)
}
