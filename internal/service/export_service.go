package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/siakad-dev/siakad-api/internal/dto"
	appErrors "github.com/siakad-dev/siakad-api/pkg/errors"
	"github.com/siakad-dev/siakad-api/pkg/export"
)

// Export formats accepted by the conflict-report export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type reportGenerator interface {
	GenerateConflictReport(ctx context.Context, periodID string) (*dto.PeriodConflictReport, error)
}

type tabularExporter interface {
	Render(data export.Dataset) ([]byte, error)
}

type documentExporter interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportedFile is a rendered download payload.
type ExportedFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders period conflict reports as downloadable files.
type ExportService struct {
	reports reportGenerator
	csv     tabularExporter
	pdf     documentExporter
	logger  *zap.Logger
}

// NewExportService wires export dependencies.
func NewExportService(reports reportGenerator, csv tabularExporter, pdf documentExporter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{reports: reports, csv: csv, pdf: pdf, logger: logger}
}

// ExportConflictReport renders the period's conflict report in the requested
// format. One row per detected error, flattened for spreadsheet review.
func (s *ExportService) ExportConflictReport(ctx context.Context, periodID, format string) (*ExportedFile, error) {
	format = strings.ToLower(format)
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	report, err := s.reports.GenerateConflictReport(ctx, periodID)
	if err != nil {
		return nil, err
	}

	dataset := conflictReportDataset(report)
	title := fmt.Sprintf("Conflict Report %s %s", report.Year, report.Semester)
	year := strings.ReplaceAll(report.Year, "/", "-")
	base := fmt.Sprintf("conflict-report-%s-%s", year, strings.ToLower(string(report.Semester)))

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportedFile{Filename: base + ".csv", ContentType: "text/csv", Content: content}, nil
	default:
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportedFile{Filename: base + ".pdf", ContentType: "application/pdf", Content: content}, nil
	}
}

func conflictReportDataset(report *dto.PeriodConflictReport) export.Dataset {
	headers := []string{"No", "Program", "Section", "Course", "Lecturer", "Day", "Time", "Type", "Message"}
	rows := make([]map[string]string, 0)
	n := 0
	for _, schedule := range report.Schedules {
		for _, issue := range schedule.Result.Errors {
			n++
			rows = append(rows, map[string]string{
				"No":       strconv.Itoa(n),
				"Program":  schedule.ProgramName,
				"Section":  schedule.ClassSection,
				"Course":   issue.CourseName,
				"Lecturer": issue.LecturerName,
				"Day":      string(issue.Day),
				"Time":     issue.TimeRange,
				"Type":     issue.Type,
				"Message":  issue.Message,
			})
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
