package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docflow/internal/domain"
	"docflow/internal/export"
)

func sampleDashboard() *domain.Dashboard {
	deadline := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Dashboard{
		TotalDocuments: 7,
		ByStatus: []domain.StatusCount{
			{Status: domain.StatusRegistered, Count: 4},
			{Status: domain.StatusLeaderReviewing, Count: 3},
		},
		ByDepartment: []domain.DepartmentCount{
			{DepartmentName: "Planning", Count: 5},
			{DepartmentName: "Finance", Count: 2},
		},
		Overdue: []domain.Document{
			{
				DocumentNumber:  "2026/12-CV",
				Title:           "Overdue request",
				Kind:            domain.KindIncoming,
				Status:          domain.StatusSpecialistProcessing,
				ProcessDeadline: &deadline,
			},
		},
		Upcoming: []domain.Document{},
	}
}

func TestWriteDashboardWorkbook(t *testing.T) {
	data, err := export.WriteDashboardWorkbook(sampleDashboard())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"By Status", "By Department", "Overdue", "Upcoming"}, sheets)

	status, err := f.GetCellValue("By Status", "A2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRegistered.DisplayName(), status)

	dept, err := f.GetCellValue("By Department", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Planning", dept)

	deadline, err := f.GetCellValue("Overdue", "E2")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", deadline)
}

func TestWriteDashboardWorkbook_EmptyDashboard(t *testing.T) {
	data, err := export.WriteDashboardWorkbook(&domain.Dashboard{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue("By Status", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)
}
