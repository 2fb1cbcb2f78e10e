package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
	"timecraft/internal/repository"
)

var exportHeader = []string{
	"client_id", "client_name", "original", "hours",
	"standard", "client_compliant", "audit_safe", "notes", "created_at",
}

// importRow is one parsed line of an import CSV.
type importRow struct {
	ClientID string
	Original string
	Hours    decimal.Decimal
}

// ExportFile is a rendered CSV export ready to be sent as a download.
type ExportFile struct {
	Filename string
	Content  []byte
}

// BulkService handles CSV import and export of time entries.
type BulkService interface {
	ImportCSV(ctx context.Context, user *model.User, filename string, data io.Reader) (*model.BatchOperation, error)
	ExportCSV(ctx context.Context, user *model.User, clientID string) (*ExportFile, error)
	ListBatches(ctx context.Context, user *model.User, limit int) ([]model.BatchOperation, error)
	GetBatch(ctx context.Context, user *model.User, batchID string) (*model.BatchOperation, error)
}

type bulkService struct {
	batches  repository.BatchRepository
	entries  repository.EntryRepository
	users    repository.UserRepository
	clients  repository.ClientRepository
	rewrites RewriteService
	access   ClientService
}

// NewBulkService creates a new bulk operations service.
func NewBulkService(
	batches repository.BatchRepository,
	entries repository.EntryRepository,
	users repository.UserRepository,
	clients repository.ClientRepository,
	rewrites RewriteService,
	access ClientService,
) BulkService {
	return &bulkService{
		batches:  batches,
		entries:  entries,
		users:    users,
		clients:  clients,
		rewrites: rewrites,
		access:   access,
	}
}

// ImportCSV parses an uploaded CSV and rewrites every row through the
// client-aware pipeline. Row failures are collected in the batch error log
// instead of aborting the import.
func (s *bulkService) ImportCSV(ctx context.Context, user *model.User, filename string, data io.Reader) (*model.BatchOperation, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "only CSV files are allowed", "INVALID_FILE_TYPE")
	}

	rows, err := parseImportCSV(data)
	if err != nil {
		return nil, err
	}

	batch := &model.BatchOperation{
		ID:            uuid.New().String(),
		UserID:        user.ID,
		OperationType: "import",
		Filename:      filename,
		TotalRows:     len(rows),
		Status:        model.BatchProcessing,
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}

	var errLines []string
	successful, failed := 0, 0
	for idx, row := range rows {
		if err := s.importRow(ctx, user, row); err != nil {
			errLines = append(errLines, fmt.Sprintf("Row %d: %s", idx+1, err.Error()))
			failed++
			continue
		}
		successful++
	}

	now := time.Now().UTC()
	batch.SuccessfulRows = successful
	batch.FailedRows = failed
	batch.Status = model.BatchCompleted
	if failed > 0 {
		batch.Status = model.BatchCompletedWithErrors
	}
	batch.ErrorLog = strings.Join(errLines, "\n")
	batch.CompletedAt = &now

	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *bulkService) importRow(ctx context.Context, user *model.User, row importRow) error {
	if _, err := s.rewrites.RewriteAndSave(ctx, user, row.ClientID, row.Original, row.Hours); err != nil {
		return err
	}
	return nil
}

// ExportCSV renders every rewrite the user may see as a CSV download and
// records the export as a completed batch operation.
func (s *bulkService) ExportCSV(ctx context.Context, user *model.User, clientID string) (*ExportFile, error) {
	var clientIDs []string
	if clientID != "" {
		if err := s.access.EnsureAccess(ctx, user, clientID); err != nil {
			return nil, err
		}
		clientIDs = []string{clientID}
	} else if user.IsAdmin() {
		clients, err := s.clients.List(ctx)
		if err != nil {
			return nil, err
		}
		for i := range clients {
			clientIDs = append(clientIDs, clients[i].ID)
		}
	} else {
		permitted, err := s.users.PermittedClientIDs(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		clientIDs = permitted
	}

	var rows []repository.ExportRow
	if len(clientIDs) > 0 {
		var err error
		rows, err = s.entries.ListForExport(ctx, clientIDs)
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.Client.ID,
			row.Client.Name,
			row.Entry.Original,
			row.Entry.Hours.String(),
			row.Rewrite.Standard,
			row.Rewrite.ClientCompliant,
			row.Rewrite.AuditSafe,
			row.Rewrite.Notes,
			row.Entry.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	batch := &model.BatchOperation{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		OperationType:  "export",
		Filename:       fmt.Sprintf("export_%s.csv", now.Format("20060102_150405")),
		TotalRows:      len(rows),
		SuccessfulRows: len(rows),
		Status:         model.BatchCompleted,
		CompletedAt:    &now,
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}

	return &ExportFile{Filename: batch.Filename, Content: buf.Bytes()}, nil
}

func (s *bulkService) ListBatches(ctx context.Context, user *model.User, limit int) ([]model.BatchOperation, error) {
	return s.batches.ListForUser(ctx, user.ID, limit)
}

func (s *bulkService) GetBatch(ctx context.Context, user *model.User, batchID string) (*model.BatchOperation, error) {
	batch, err := s.batches.FindForUser(ctx, user.ID, batchID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, err
	}
	return batch, nil
}

// parseImportCSV reads and validates the import file. The header must
// contain client_id, original and hours.
func parseImportCSV(data io.Reader) ([]importRow, error) {
	reader := csv.NewReader(data)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "CSV file is empty", "EMPTY_CSV")
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"client_id", "original", "hours"} {
		if _, ok := cols[required]; !ok {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest,
				"CSV must contain headers: client_id, original, hours", "INVALID_CSV_HEADER")
		}
	}

	var rows []importRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("invalid CSV format: %s", err.Error()), "INVALID_CSV")
		}

		hours, err := decimal.NewFromString(strings.TrimSpace(record[cols["hours"]]))
		if err != nil {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("invalid hours value %q", record[cols["hours"]]), "INVALID_CSV")
		}
		rows = append(rows, importRow{
			ClientID: strings.TrimSpace(record[cols["client_id"]]),
			Original: strings.TrimSpace(record[cols["original"]]),
			Hours:    hours,
		})
	}

	if len(rows) == 0 {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "CSV file is empty", "EMPTY_CSV")
	}
	return rows, nil
}
