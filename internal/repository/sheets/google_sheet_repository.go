package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/config"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

const snapshotRange = "DailySnapshots!A:F"

// Repository exports advisor aggregates to the admin spreadsheet.
type Repository interface {
	AppendDailySnapshot(ctx context.Context, snap models.DailySnapshot) error
}

// GoogleSheetRepository implements Repository using the official Google
// Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDailySnapshot adds one row to the daily snapshot sheet.
func (r *GoogleSheetRepository) AppendDailySnapshot(ctx context.Context, snap models.DailySnapshot) error {
	values := []interface{}{
		snap.Date.Format("2006-01-02"),
		snap.Recommendations,
		snap.CriticalAlerts,
		snap.MeanSoilMoisture,
		snap.RainfallMM7d,
		snap.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, snapshotRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot row into range %s: %w", snapshotRange, err)
	}

	r.logger.Debug("snapshot row appended to sheet", zap.String("range", snapshotRange))
	return nil
}
