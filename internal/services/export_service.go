package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/terraincognita07/graceflow/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	exportDateLayout = "2006-01-02"
	exportSheetName  = "Cycles"
)

var ExportHeaders = []string{
	"Start date",
	"End date",
	"Period end date",
	"Cycle length",
	"Notes",
}

type ExportCycleReader interface {
	ListByUser(userID uint) ([]models.CycleRecord, error)
}

type ExportService struct {
	cycles ExportCycleReader
}

type ExportRow struct {
	StartDate     string
	EndDate       string
	PeriodEndDate string
	CycleLength   string
	Notes         string
}

func NewExportService(cycles ExportCycleReader) *ExportService {
	return &ExportService{cycles: cycles}
}

// BuildHistoryRows lists every cycle of the user oldest first. Open values
// are exported as empty cells.
func (service *ExportService) BuildHistoryRows(userID uint) ([]ExportRow, error) {
	records, err := service.cycles.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}

	rows := make([]ExportRow, 0, len(records))
	for _, record := range records {
		row := ExportRow{
			StartDate:     formatExportDay(&record.StartDate),
			EndDate:       formatExportDay(record.EndDate),
			PeriodEndDate: formatExportDay(record.PeriodEndDate),
			Notes:         record.Notes,
		}
		if record.CycleLength != nil {
			row.CycleLength = strconv.Itoa(*record.CycleLength)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (row ExportRow) Columns() []string {
	return []string{row.StartDate, row.EndDate, row.PeriodEndDate, row.CycleLength, row.Notes}
}

func WriteCSV(output io.Writer, rows []ExportRow) error {
	writer := csv.NewWriter(output)
	if err := writer.Write(ExportHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.Columns()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteXLSX(output io.Writer, rows []ExportRow) (err error) {
	workbook := excelize.NewFile()
	defer func() {
		if closeErr := workbook.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := workbook.SetSheetName("Sheet1", exportSheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := writeSheetRow(workbook, 1, ExportHeaders); err != nil {
		return err
	}
	for index, row := range rows {
		if err := writeSheetRow(workbook, index+2, row.Columns()); err != nil {
			return err
		}
	}

	if _, err := workbook.WriteTo(output); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheetRow(workbook *excelize.File, rowNumber int, columns []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return err
	}
	values := make([]any, len(columns))
	for index, column := range columns {
		values[index] = column
	}
	if err := workbook.SetSheetRow(exportSheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNumber, err)
	}
	return nil
}

func formatExportDay(value *time.Time) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return value.UTC().Format(exportDateLayout)
}
