package service

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
	"timecraft/internal/pdftext"
	"timecraft/internal/repository"
)

// PDFSlot names which guidance document an upload replaces.
type PDFSlot string

const (
	PDFSlotGuidelines         PDFSlot = "guidelines"
	PDFSlotSuccessfulExamples PDFSlot = "successful_examples"
	PDFSlotFailedExamples     PDFSlot = "failed_examples"
)

// ClientInput carries the writable fields of a client.
type ClientInput struct {
	ID                string `json:"id" validate:"required,max=50"`
	Name              string `json:"name" validate:"required,max=255"`
	Code              string `json:"code" validate:"max=50"`
	BillingGuidelines string `json:"billing_guidelines"`
	AcceptedExamples  string `json:"accepted_examples"`
	DeniedExamples    string `json:"denied_examples"`
}

// ClientService manages billing clients and their guidance material.
type ClientService interface {
	ListForUser(ctx context.Context, user *model.User) ([]model.ClientSummary, error)
	List(ctx context.Context) ([]model.Client, error)
	Get(ctx context.Context, id string) (*model.Client, error)
	Create(ctx context.Context, input ClientInput) (*model.Client, error)
	Update(ctx context.Context, id string, input ClientInput) (*model.Client, error)
	Delete(ctx context.Context, id string) error
	AttachPDF(ctx context.Context, id string, slot PDFSlot, data []byte) (*model.Client, int, error)
	EnsureAccess(ctx context.Context, user *model.User, clientID string) error
}

type clientService struct {
	clients repository.ClientRepository
	users   repository.UserRepository
}

// NewClientService creates a new client service.
func NewClientService(clients repository.ClientRepository, users repository.UserRepository) ClientService {
	return &clientService{clients: clients, users: users}
}

// ListForUser returns client summaries limited to the caller's permissions.
// Admins see every client.
func (s *clientService) ListForUser(ctx context.Context, user *model.User) ([]model.ClientSummary, error) {
	all, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin() {
		summaries := make([]model.ClientSummary, 0, len(all))
		for i := range all {
			summaries = append(summaries, all[i].Summary())
		}
		return summaries, nil
	}

	permitted, err := s.users.PermittedClientIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]struct{}, len(permitted))
	for _, id := range permitted {
		allowed[id] = struct{}{}
	}

	summaries := make([]model.ClientSummary, 0, len(permitted))
	for i := range all {
		if _, ok := allowed[all[i].ID]; ok {
			summaries = append(summaries, all[i].Summary())
		}
	}
	return summaries, nil
}

func (s *clientService) List(ctx context.Context) ([]model.Client, error) {
	return s.clients.List(ctx)
}

func (s *clientService) Get(ctx context.Context, id string) (*model.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) Create(ctx context.Context, input ClientInput) (*model.Client, error) {
	if !ValidClientID(input.ID) {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest,
			"client ID may only contain letters, digits, dashes and underscores", "INVALID_CLIENT_ID")
	}

	if _, err := s.clients.FindByID(ctx, input.ID); err == nil {
		return nil, apperrors.ErrClientExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err := sanitizeFields(&input.Name, &input.Code, &input.BillingGuidelines,
		&input.AcceptedExamples, &input.DeniedExamples); err != nil {
		return nil, err
	}

	client := &model.Client{
		ID:                input.ID,
		Name:              input.Name,
		Code:              input.Code,
		BillingGuidelines: input.BillingGuidelines,
		AcceptedExamples:  input.AcceptedExamples,
		DeniedExamples:    input.DeniedExamples,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, id string, input ClientInput) (*model.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sanitizeFields(&input.Name, &input.Code, &input.BillingGuidelines,
		&input.AcceptedExamples, &input.DeniedExamples); err != nil {
		return nil, err
	}

	client.Name = input.Name
	client.Code = input.Code
	client.BillingGuidelines = input.BillingGuidelines
	client.AcceptedExamples = input.AcceptedExamples
	client.DeniedExamples = input.DeniedExamples

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	client, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.clients.Delete(ctx, client)
}

// AttachPDF extracts text from an uploaded PDF and stores it in the given
// slot. The number of extracted characters is returned for the response.
func (s *clientService) AttachPDF(ctx context.Context, id string, slot PDFSlot, data []byte) (*model.Client, int, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	text, err := pdftext.Extract(data)
	if err != nil {
		return nil, 0, apperrors.NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PDF")
	}

	switch slot {
	case PDFSlotGuidelines:
		client.GuidelinesPDFText = text
	case PDFSlotSuccessfulExamples:
		client.SuccessfulExamplesPDFText = text
	case PDFSlotFailedExamples:
		client.FailedExamplesPDFText = text
	default:
		return nil, 0, apperrors.NewHTTPError(http.StatusBadRequest, "unknown document type", "INVALID_PDF_SLOT")
	}

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, 0, err
	}
	return client, len(text), nil
}

// EnsureAccess verifies the user may work with the client. Admins always may.
func (s *clientService) EnsureAccess(ctx context.Context, user *model.User, clientID string) error {
	if _, err := s.Get(ctx, clientID); err != nil {
		return err
	}
	if user.IsAdmin() {
		return nil
	}
	allowed, err := s.users.HasPermission(ctx, user.ID, clientID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.ErrClientAccessDenied
	}
	return nil
}
