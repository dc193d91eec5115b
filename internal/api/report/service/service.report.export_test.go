package reportsvc

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"treesure/internal/api/report/dto"
	"treesure/internal/common"

	"github.com/stretchr/testify/assert"
)

func TestExport_RefusesEmptyRowsForEveryFormat(t *testing.T) {
	svc := &ReportService{}
	for _, format := range []string{FormatCSV, FormatRows, FormatHTML} {
		_, err := svc.Export(dto.ExportRequest{
			Tab:     "trees",
			Format:  format,
			Headers: []string{"Species", "Municipality"},
			Rows:    nil,
		})
		assert.ErrorIs(t, err, common.ErrExportRefused, "format %s must refuse an empty table", format)
	}
}

func TestExport_DropsInternalColumns(t *testing.T) {
	svc := &ReportService{}
	resp, err := svc.Export(dto.ExportRequest{
		Tab:     "trees",
		Format:  FormatRows,
		Headers: []string{"Species", "Actions", "Municipality", "QR Code"},
		Rows: [][]string{
			{"Narra", "[edit]", "Solana", "<img>"},
			{"Acacia", "[edit]", "Piat", "<img>"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Species", "Municipality"}, resp.Matrix[0])
	assert.Equal(t, []string{"Narra", "Solana"}, resp.Matrix[1])
	assert.Equal(t, []string{"Acacia", "Piat"}, resp.Matrix[2])
}

func TestExport_CSV(t *testing.T) {
	svc := &ReportService{}
	resp, err := svc.Export(dto.ExportRequest{
		Tab:     "Applications",
		Format:  FormatCSV,
		Headers: []string{"Applicant", "Status"},
		Rows: [][]string{
			{"Reyes, Juan", "Pending"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Applicant,Status\n\"Reyes, Juan\",Pending\n", resp.Content)

	wantName := fmt.Sprintf("treesure_applications_report_%s.csv", time.Now().Format("2006-01-02"))
	assert.Equal(t, wantName, resp.FileName)
}

func TestExport_HTMLEscapesCells(t *testing.T) {
	svc := &ReportService{}
	resp, err := svc.Export(dto.ExportRequest{
		Tab:     "trees",
		Format:  FormatHTML,
		Headers: []string{"Species"},
		Rows:    [][]string{{"<script>alert(1)</script>"}},
	})
	assert.NoError(t, err)
	assert.Contains(t, resp.Content, "<table>")
	assert.Contains(t, resp.Content, "<th>Species</th>")
	assert.NotContains(t, resp.Content, "<script>")
	assert.True(t, strings.Contains(resp.Content, "&lt;script&gt;"), "cell content must be escaped")
}

func TestExport_UnknownFormat(t *testing.T) {
	svc := &ReportService{}
	_, err := svc.Export(dto.ExportRequest{
		Tab:     "trees",
		Format:  "pdf2000",
		Headers: []string{"Species"},
		Rows:    [][]string{{"Narra"}},
	})
	assert.Error(t, err)
	var customErr *common.Error
	assert.True(t, errors.As(err, &customErr))
}

func TestExport_AllColumnsInternalStillRefusesNothing(t *testing.T) {
	// Rows remain (as empty cell sets) when every column is internal, so
	// the export proceeds rather than refusing.
	svc := &ReportService{}
	resp, err := svc.Export(dto.ExportRequest{
		Tab:     "trees",
		Format:  FormatRows,
		Headers: []string{"Actions"},
		Rows:    [][]string{{"[edit]"}},
	})
	assert.NoError(t, err)
	assert.Empty(t, resp.Matrix[0])
}
