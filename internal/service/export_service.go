package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/frontdesk/visitor-register/internal/domain"
)

// ErrExportGenerateFail is returned when the workbook cannot be written.
var ErrExportGenerateFail = errors.New("failed to generate visitor log workbook")

const exportSheet = "Visitor Logs"

var exportHeaders = []string{
	"Ticket Number", "Full Name", "Phone", "Ghana Card Number", "Staff Member",
	"Purpose", "Check-in Time", "Check-out Time", "Status",
}

// ExportService renders visitor logs as an .xlsx workbook.
type ExportService struct {
	visitors *VisitorService
	logger   *zap.Logger
}

// NewExportService creates the service.
func NewExportService(visitors *VisitorService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{visitors: visitors, logger: logger}
}

// ExportVisitorLogs returns the workbook and a suggested filename.
func (s *ExportService) ExportVisitorLogs(ctx context.Context, ticketNumber, timePeriod string) (*bytes.Buffer, string, error) {
	visitors, err := s.visitors.ExportLogs(ctx, ticketNumber, timePeriod)
	if err != nil {
		return nil, "", err
	}
	loc := s.visitors.Location()

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, header)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	_ = f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle)
	_ = f.SetColWidth(exportSheet, "A", lastCol, 22)

	for r, v := range visitors {
		checkOut := ""
		if v.CheckOutTime != nil {
			checkOut = v.CheckOutTime.In(loc).Format(time.RFC3339)
		}
		row := []any{
			v.TicketNumber,
			v.FullName,
			v.Phone,
			v.GhanaCardNumber,
			domain.StaffLabel(v.Staff),
			string(v.Purpose),
			v.CheckInTime.In(loc).Format(time.RFC3339),
			checkOut,
			string(v.Status),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			s.logger.Error("write export row failed", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("visitor_logs_%s.xlsx", s.visitors.now().In(loc).Format("20060102_150405"))
	return buf, filename, nil
}
