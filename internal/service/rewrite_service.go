package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "timecraft/internal/errors"
	"timecraft/internal/llm"
	"timecraft/internal/model"
	"timecraft/internal/pagination"
	"timecraft/internal/repository"
)

// SavedRewrite is the response for a persisted client-aware rewrite.
type SavedRewrite struct {
	TimeEntryID string              `json:"time_entry_id"`
	RewriteID   string              `json:"rewrite_id"`
	Client      model.ClientSummary `json:"client"`
	Original    string              `json:"original"`
	Hours       decimal.Decimal     `json:"hours"`
	Rewrite     llm.Result          `json:"rewrite"`
}

// EntryView is a recent time entry together with its latest rewrite.
type EntryView struct {
	model.TimeEntry
	LatestRewrite *model.RewriteRecord `json:"latest_rewrite,omitempty"`
}

// FeedbackInput tags a rewrite with reviewer outcome.
type FeedbackInput struct {
	Status          model.FeedbackStatus `json:"status" validate:"required,oneof=success failure not_submitted"`
	SelectedVariant string               `json:"selected_variant" validate:"omitempty,oneof=standard client_compliant audit_safe"`
	FeedbackNotes   string               `json:"feedback_notes"`
}

// FeedbackResult reports the stored feedback and whether an example block
// was ingested into the client's guidance.
type FeedbackResult struct {
	RewriteID       string               `json:"rewrite_id"`
	Status          model.FeedbackStatus `json:"status"`
	SelectedVariant string               `json:"selected_variant,omitempty"`
	FeedbackDate    *time.Time           `json:"feedback_date,omitempty"`
	FeedbackNotes   string               `json:"feedback_notes,omitempty"`
	AutoIngested    bool                 `json:"auto_ingested"`
}

// RewriteService produces and persists narrative rewrites.
type RewriteService interface {
	Rewrite(ctx context.Context, original string, hours decimal.Decimal, rules llm.Rules) (*llm.Result, error)
	RewriteAndSave(ctx context.Context, user *model.User, clientID, original string, hours decimal.Decimal) (*SavedRewrite, error)
	ListRecent(ctx context.Context, params pagination.Params) (*pagination.Page[EntryView], error)
	TagFeedback(ctx context.Context, rewriteID string, input FeedbackInput) (*FeedbackResult, error)
}

type rewriteService struct {
	entries  repository.EntryRepository
	clients  repository.ClientRepository
	audits   repository.AuditRepository
	access   ClientService
	rewriter llm.Rewriter
}

// NewRewriteService creates a new rewrite service.
func NewRewriteService(
	entries repository.EntryRepository,
	clients repository.ClientRepository,
	audits repository.AuditRepository,
	access ClientService,
	rewriter llm.Rewriter,
) RewriteService {
	return &rewriteService{
		entries:  entries,
		clients:  clients,
		audits:   audits,
		access:   access,
		rewriter: rewriter,
	}
}

// Rewrite runs a stateless rewrite with caller-supplied rules. Nothing is
// persisted.
func (s *rewriteService) Rewrite(ctx context.Context, original string, hours decimal.Decimal, rules llm.Rules) (*llm.Result, error) {
	original, err := SanitizeText(original)
	if err != nil {
		return nil, err
	}
	if original == "" {
		return nil, apperrors.ErrEmptyNarrative
	}
	hours, err = NormalizeHours(hours)
	if err != nil {
		return nil, err
	}

	result := s.rewriter.Rewrite(ctx, original, hours, rules)
	return &result, nil
}

// RewriteAndSave runs a client-aware rewrite and persists the entry, the
// rewrite record, version 1 of its history, and an audit event.
func (s *rewriteService) RewriteAndSave(ctx context.Context, user *model.User, clientID, original string, hours decimal.Decimal) (*SavedRewrite, error) {
	original, err := SanitizeText(original)
	if err != nil {
		return nil, err
	}
	if original == "" {
		return nil, apperrors.ErrEmptyNarrative
	}
	hours, err = NormalizeHours(hours)
	if err != nil {
		return nil, err
	}

	if err := s.access.EnsureAccess(ctx, user, clientID); err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	rules := BuildClientRules(client)
	result := s.rewriter.Rewrite(ctx, original, hours, rules)

	entry := &model.TimeEntry{
		ID:       model.NewEntryID(),
		ClientID: client.ID,
		Original: original,
		Hours:    hours,
	}
	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	rewrite := &model.RewriteRecord{
		ID:              model.NewRewriteID(),
		TimeEntryID:     entry.ID,
		Standard:        result.Standard,
		ClientCompliant: result.ClientCompliant,
		AuditSafe:       result.AuditSafe,
		Notes:           result.Notes,
		Status:          model.FeedbackNotSubmitted,
	}
	if err := s.entries.CreateRewrite(ctx, rewrite); err != nil {
		return nil, err
	}

	version := &model.RewriteVersion{
		ID:              uuid.New().String(),
		TimeEntryID:     entry.ID,
		VersionNumber:   1,
		Standard:        result.Standard,
		ClientCompliant: result.ClientCompliant,
		AuditSafe:       result.AuditSafe,
		Notes:           result.Notes,
		CreatedBy:       user.Username,
		IsCurrent:       true,
	}
	if err := s.entries.CreateVersion(ctx, version); err != nil {
		return nil, err
	}

	rulesSnapshot, err := json.Marshal(rules)
	if err != nil {
		rulesSnapshot = []byte("{}")
	}
	event := &model.AuditEvent{
		ID:            model.NewAuditID(),
		Timestamp:     time.Now().UTC(),
		Username:      user.Username,
		Role:          user.Role,
		ClientID:      client.ID,
		TimeEntryID:   entry.ID,
		RewriteID:     rewrite.ID,
		ModelName:     s.rewriter.ModelName(),
		RulesSnapshot: string(rulesSnapshot),
	}
	if err := s.audits.Create(ctx, event); err != nil {
		return nil, err
	}

	return &SavedRewrite{
		TimeEntryID: entry.ID,
		RewriteID:   rewrite.ID,
		Client:      client.Summary(),
		Original:    original,
		Hours:       hours,
		Rewrite:     result,
	}, nil
}

// ListRecent returns recent entries newest first with their latest rewrite.
func (s *rewriteService) ListRecent(ctx context.Context, params pagination.Params) (*pagination.Page[EntryView], error) {
	params = params.Normalize()
	entries, total, err := s.entries.ListRecent(ctx, params)
	if err != nil {
		return nil, err
	}

	views := make([]EntryView, 0, len(entries))
	for i := range entries {
		view := EntryView{TimeEntry: entries[i]}
		if rewrite, err := s.entries.LatestRewriteForEntry(ctx, entries[i].ID); err == nil {
			view.LatestRewrite = rewrite
		}
		views = append(views, view)
	}

	page := pagination.NewPage(views, total, params)
	return &page, nil
}

// TagFeedback records reviewer feedback on a rewrite. Successful rewrites
// are appended to the client's accepted examples, failed ones to the denied
// examples, so future rewrites learn from real outcomes.
func (s *rewriteService) TagFeedback(ctx context.Context, rewriteID string, input FeedbackInput) (*FeedbackResult, error) {
	rewrite, err := s.entries.FindRewriteByID(ctx, rewriteID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRewriteNotFound
		}
		return nil, err
	}

	entry, err := s.entries.FindEntryByID(ctx, rewrite.TimeEntryID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(ctx, entry.ClientID)
	if err != nil {
		return nil, err
	}

	notes, err := SanitizeText(input.FeedbackNotes)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rewrite.Status = input.Status
	rewrite.SelectedVariant = input.SelectedVariant
	rewrite.FeedbackNotes = notes
	rewrite.FeedbackDate = &now

	autoIngested := false
	if input.SelectedVariant != "" {
		switch input.Status {
		case model.FeedbackSuccess:
			client.AcceptedExamples += successExampleBlock(entry, rewrite, now)
			autoIngested = true
		case model.FeedbackFailure:
			client.DeniedExamples += failureExampleBlock(entry, rewrite, now)
			autoIngested = true
		}
	}

	if err := s.entries.UpdateRewrite(ctx, rewrite); err != nil {
		return nil, err
	}
	if autoIngested {
		if err := s.clients.Update(ctx, client); err != nil {
			return nil, err
		}
	}

	return &FeedbackResult{
		RewriteID:       rewrite.ID,
		Status:          rewrite.Status,
		SelectedVariant: rewrite.SelectedVariant,
		FeedbackDate:    rewrite.FeedbackDate,
		FeedbackNotes:   rewrite.FeedbackNotes,
		AutoIngested:    autoIngested,
	}, nil
}

func successExampleBlock(entry *model.TimeEntry, rewrite *model.RewriteRecord, at time.Time) string {
	notes := rewrite.FeedbackNotes
	if notes == "" {
		notes = "None"
	}
	return fmt.Sprintf(
		"\n=== SUCCESS EXAMPLE (Auto-ingested %s) ===\nOriginal: %s (%s hours)\nApproved Rewrite: %s\nVariant Used: %s\nNotes: %s\n---\n",
		at.Format("2006-01-02"), entry.Original, entry.Hours.String(),
		rewrite.VariantText(rewrite.SelectedVariant), rewrite.SelectedVariant, notes,
	)
}

func failureExampleBlock(entry *model.TimeEntry, rewrite *model.RewriteRecord, at time.Time) string {
	reason := rewrite.FeedbackNotes
	if reason == "" {
		reason = "Not specified"
	}
	return fmt.Sprintf(
		"\n=== FAILURE EXAMPLE (Auto-ingested %s) ===\nOriginal: %s (%s hours)\nRejected Rewrite: %s\nVariant Used: %s\nReason: %s\n---\n",
		at.Format("2006-01-02"), entry.Original, entry.Hours.String(),
		rewrite.VariantText(rewrite.SelectedVariant), rewrite.SelectedVariant, reason,
	)
}
