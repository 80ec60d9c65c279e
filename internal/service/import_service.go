package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/repository"
)

// csvTradeRow mirrors one line of an uploaded trade CSV. Every column is
// read as text so a single malformed cell fails that row, not the file.
type csvTradeRow struct {
	Symbol     string `csv:"symbol"`
	TradeType  string `csv:"trade_type"`
	Status     string `csv:"status"`
	EntryPrice string `csv:"entry_price"`
	ExitPrice  string `csv:"exit_price"`
	Quantity   string `csv:"quantity"`
	PointValue string `csv:"point_value"`
	Fees       string `csv:"fees"`
	EntryDate  string `csv:"entry_date"`
	ExitDate   string `csv:"exit_date"`
	Setup      string `csv:"setup"`
	Notes      string `csv:"notes"`
}

// csvDateFormats are tried in order when parsing date cells
var csvDateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ImportService turns uploaded CSV files into trades. Uploads are queued
// as pending import logs and drained asynchronously by the import
// worker; each row failure is recorded on the log instead of aborting
// the whole file.
type ImportService struct {
	tradeService *TradeService
	importRepo   *repository.ImportLogRepository
	batchSize    int
}

// NewImportService creates a new ImportService
func NewImportService(tradeService *TradeService, importRepo *repository.ImportLogRepository, batchSize int) *ImportService {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &ImportService{
		tradeService: tradeService,
		importRepo:   importRepo,
		batchSize:    batchSize,
	}
}

// Queue stores an uploaded CSV as a pending import
func (s *ImportService) Queue(userID uint, filename string, data []byte) (*models.ImportLog, error) {
	log := &models.ImportLog{
		UserID:   userID,
		Filename: filename,
		Status:   models.ImportStatusPending,
		RawData:  data,
	}
	if err := s.importRepo.Create(log); err != nil {
		return nil, err
	}
	return log, nil
}

// Get retrieves one import log
func (s *ImportService) Get(userID, logID uint) (*models.ImportLog, error) {
	return s.importRepo.GetByIDAndUserID(logID, userID)
}

// List retrieves a user's recent import logs
func (s *ImportService) List(userID uint, limit int) ([]models.ImportLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.importRepo.GetByUserID(userID, limit)
}

// ProcessPending claims and processes queued imports; called by the
// import worker on every tick
func (s *ImportService) ProcessPending(ctx context.Context) {
	logs, err := s.importRepo.GetPending(s.batchSize)
	if err != nil {
		return
	}
	for i := range logs {
		claimed, err := s.importRepo.MarkProcessing(logs[i].ID)
		if err != nil || !claimed {
			continue
		}
		s.process(ctx, &logs[i])
	}
}

// process parses one queued CSV and bulk-inserts its valid rows
func (s *ImportService) process(ctx context.Context, log *models.ImportLog) {
	trades, rowErrors, total := parseTradeCSV(log.RawData)

	log.TotalRows = total
	log.RowErrors = rowErrors
	log.FailedRows = len(rowErrors)
	log.RawData = nil

	if len(trades) > 0 {
		if _, err := s.tradeService.BulkCreate(ctx, log.UserID, trades); err != nil {
			log.Status = models.ImportStatusFailed
			log.RowErrors = append(log.RowErrors, fmt.Sprintf("insert failed: %v", err))
			s.importRepo.Update(log)
			return
		}
		log.ImportedRows = len(trades)
	}

	if total == 0 || log.ImportedRows == 0 && log.FailedRows > 0 {
		log.Status = models.ImportStatusFailed
	} else {
		log.Status = models.ImportStatusCompleted
	}
	s.importRepo.Update(log)
}

// parseTradeCSV converts CSV bytes into trades, collecting one error
// string per rejected row. Row numbers are 1-based data rows (the
// header is row 0).
func parseTradeCSV(data []byte) ([]models.Trade, models.StringList, int) {
	var rows []*csvTradeRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, models.StringList{fmt.Sprintf("invalid csv: %v", err)}, 0
	}

	trades := make([]models.Trade, 0, len(rows))
	var rowErrors models.StringList
	for i, row := range rows {
		trade, err := parseTradeRow(row)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		trades = append(trades, trade)
	}
	return trades, rowErrors, len(rows)
}

func parseTradeRow(row *csvTradeRow) (models.Trade, error) {
	var trade models.Trade

	trade.Symbol = strings.TrimSpace(row.Symbol)
	if trade.Symbol == "" {
		return trade, fmt.Errorf("symbol is required")
	}

	tradeType, err := parseTradeType(strings.ToLower(strings.TrimSpace(row.TradeType)))
	if err != nil {
		return trade, err
	}
	trade.TradeType = tradeType

	trade.Status = models.TradeStatusOpen
	if status := strings.ToLower(strings.TrimSpace(row.Status)); status != "" {
		parsed, err := parseTradeStatus(status)
		if err != nil {
			return trade, err
		}
		trade.Status = parsed
	}

	if trade.EntryPrice, err = parseOptionalFloat("entry_price", row.EntryPrice); err != nil {
		return trade, err
	}
	if trade.ExitPrice, err = parseOptionalFloat("exit_price", row.ExitPrice); err != nil {
		return trade, err
	}
	if qty, err := parseOptionalFloat("quantity", row.Quantity); err != nil {
		return trade, err
	} else if qty != nil {
		trade.Quantity = *qty
	}
	trade.PointValue = 1
	if pv, err := parseOptionalFloat("point_value", row.PointValue); err != nil {
		return trade, err
	} else if pv != nil {
		trade.PointValue = *pv
	}
	if fees, err := parseOptionalFloat("fees", row.Fees); err != nil {
		return trade, err
	} else if fees != nil {
		trade.Fees = *fees
	}

	if trade.EntryDate, err = parseOptionalDate("entry_date", row.EntryDate); err != nil {
		return trade, err
	}
	if trade.ExitDate, err = parseOptionalDate("exit_date", row.ExitDate); err != nil {
		return trade, err
	}

	trade.Setup = strings.TrimSpace(row.Setup)
	trade.Notes = strings.TrimSpace(row.Notes)
	trade.FollowedPlan = true
	return trade, nil
}

func parseOptionalFloat(column, value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: not a number: %q", column, value)
	}
	return &parsed, nil
}

func parseOptionalDate(column, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, format := range csvDateFormats {
		if parsed, err := time.ParseInLocation(format, value, time.Local); err == nil {
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("%s: unrecognized date: %q", column, value)
}
