package reportsvc

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"strings"
	"time"

	"treesure/internal/api/report/dto"
	"treesure/internal/common"
)

// Export formats supported by the dashboard.
const (
	FormatCSV  = "csv"
	FormatRows = "rows"
	FormatHTML = "html"
)

// Columns that exist only for on-screen interaction and never belong in
// an export, matched against headers case-insensitively.
var internalColumns = map[string]bool{
	"actions": true,
	"action":  true,
	"qr":      true,
	"qr code": true,
}

var htmlTableTemplate = template.Must(template.New("export").Parse(`<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
`))

// Export projects the rendered table into the requested format. The
// table arrives exactly as displayed, internal-only columns are dropped
// here by header name. Zero visible rows refuse the export outright, no
// empty file is ever produced.
func (s *ReportService) Export(req dto.ExportRequest) (*dto.ExportResponse, error) {
	headers, rows := dropInternalColumns(req.Headers, req.Rows)
	if len(rows) == 0 {
		return nil, common.ErrExportRefused
	}

	response := &dto.ExportResponse{Format: req.Format}
	switch req.Format {
	case FormatCSV:
		content, err := renderCSV(headers, rows)
		if err != nil {
			return nil, common.NewError(common.ErrCodeReportExport, err.Error(), common.StatusInternalServerError, nil)
		}
		response.Content = content
		response.FileName = exportFileName(req.Tab, "csv")
	case FormatRows:
		matrix := make([][]string, 0, len(rows)+1)
		matrix = append(matrix, headers)
		matrix = append(matrix, rows...)
		response.Matrix = matrix
		response.FileName = exportFileName(req.Tab, "xlsx")
	case FormatHTML:
		content, err := renderHTML(headers, rows)
		if err != nil {
			return nil, common.NewError(common.ErrCodeReportExport, err.Error(), common.StatusInternalServerError, nil)
		}
		response.Content = content
		response.FileName = exportFileName(req.Tab, "html")
	default:
		return nil, common.ErrUnknownFormat
	}

	return response, nil
}

// dropInternalColumns removes the on-screen-only columns from the
// headers and from every row. Ragged rows are tolerated, short rows
// simply have fewer cells to copy.
func dropInternalColumns(headers []string, rows [][]string) ([]string, [][]string) {
	keep := make([]int, 0, len(headers))
	keptHeaders := make([]string, 0, len(headers))
	for i, header := range headers {
		if internalColumns[strings.ToLower(strings.TrimSpace(header))] {
			continue
		}
		keep = append(keep, i)
		keptHeaders = append(keptHeaders, header)
	}

	keptRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		kept := make([]string, 0, len(keep))
		for _, i := range keep {
			if i < len(row) {
				kept = append(kept, row[i])
			}
		}
		keptRows = append(keptRows, kept)
	}
	return keptHeaders, keptRows
}

func renderCSV(headers []string, rows [][]string) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.Write(headers); err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderHTML(headers []string, rows [][]string) (string, error) {
	var sb strings.Builder
	err := htmlTableTemplate.Execute(&sb, struct {
		Headers []string
		Rows    [][]string
	}{Headers: headers, Rows: rows})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// exportFileName builds treesure_<tab>_report_<ISO-date>.<ext>.
func exportFileName(tab, ext string) string {
	slug := strings.ToLower(strings.TrimSpace(tab))
	slug = strings.ReplaceAll(slug, " ", "_")
	return fmt.Sprintf("treesure_%s_report_%s.%s", slug, time.Now().Format("2006-01-02"), ext)
}
