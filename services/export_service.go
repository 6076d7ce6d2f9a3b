package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"salestrack/database"
	repository "salestrack/repositories"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const reportsSheet = "Reports"

var reportColumns = []any{
	"Date", "Week", "Target", "Calls Made", "Completion %", "Commitment Status",
	"Prospects", "Converted", "Meetings", "Expected Revenue", "Revenue", "Feedback",
}

type ExportService interface {
	// EmployeeReports builds an xlsx workbook with one row per reported day.
	EmployeeReports(ctx context.Context, uid string) (data []byte, filename string, err error)
}

type exportService struct {
	users       repository.UserRepository
	reports     repository.ReportRepository
	commitments repository.CommitmentRepository
	logger      *zap.Logger
}

func NewExportService(
	users repository.UserRepository,
	reports repository.ReportRepository,
	commitments repository.CommitmentRepository,
	logger *zap.Logger,
) ExportService {
	return &exportService{users: users, reports: reports, commitments: commitments, logger: logger}
}

func (s *exportService) EmployeeReports(ctx context.Context, uid string) ([]byte, string, error) {
	user, err := s.users.GetByID(ctx, uid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}

	reports, err := s.reports.GetAll(ctx, uid)
	if err != nil {
		return nil, "", err
	}
	commitments, err := s.commitments.GetAll(ctx, uid, database.PeriodDaily)
	if err != nil {
		return nil, "", err
	}
	statusByDay := make(map[string]string, len(commitments))
	for _, c := range commitments {
		statusByDay[c.ID] = c.Value.Status
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].ID > reports[j].ID
	})

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), reportsSheet); err != nil {
		return nil, "", err
	}
	if err := f.SetSheetRow(reportsSheet, "A1", &reportColumns); err != nil {
		return nil, "", err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(reportColumns), 1)
	if err := f.SetCellStyle(reportsSheet, "A1", lastHeader, bold); err != nil {
		return nil, "", err
	}

	for i, entry := range reports {
		r := entry.Value
		status := statusByDay[entry.ID]
		if status == "" {
			status = "no commitment"
		}
		row := []any{
			entry.ID, r.WeekStr, r.CallsTarget, r.CallsMade, r.Completion, status,
			r.ProspectsCount, r.ConvertedProspects, r.MeetingsBooked,
			r.TotalExpectedRevenue, r.RevenueGenerated, r.Feedback,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(reportsSheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	name := user.Name
	if name == "" {
		name = uid
	}
	s.logger.Debug("exported reports", zap.String("user_id", uid), zap.Int("rows", len(reports)))
	return buf.Bytes(), fmt.Sprintf("%s-reports.xlsx", sanitizeFilename(name)), nil
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "employee"
	}
	return string(out)
}
