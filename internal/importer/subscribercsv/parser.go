package subscribercsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/zinminlatt/ispbill/internal/encoding"
)

// Row is one parsed subscriber. Quarter and plan are carried by name;
// the caller resolves them to records before creating customers.
type Row struct {
	Name           string
	PrimaryPhone   string
	SecondaryPhone string
	Address        string
	QuarterName    string
	PlanName       string
	ONUSerial      string
	DNSN           string
	GPSCoords      string
	InstallDate    time.Time
	ExpiryDate     *time.Time
}

// Column headers of a subscriber sheet. Matching is case-insensitive
// and ignores surrounding whitespace.
const (
	colName        = "name"
	colPrimary     = "primary phone"
	colSecondary   = "secondary phone"
	colAddress     = "address"
	colQuarter     = "quarter"
	colPlan        = "plan"
	colONUSerial   = "onu serial"
	colDNSN        = "dnsn"
	colGPS         = "gps"
	colInstallDate = "install date"
	colExpiryDate  = "expiry date"
)

var requiredCols = []string{colName, colPrimary, colAddress, colQuarter, colPlan, colInstallDate}

// Parser reads subscriber sheets exported by the field teams and
// produces import rows. The header row is located by scanning for the
// required column set, so leading title or summary rows are tolerated.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// colIndex maps normalized column names to their index in the row.
type colIndex map[string]int

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := findHeader(records)
	if cols == nil {
		return nil, fmt.Errorf("no subscriber header found: expected columns %s", strings.Join(requiredCols, ", "))
	}

	return parseRows(cols, records[headerIdx+1:], headerIdx)
}

// findHeader scans rows for one containing every required column.
func findHeader(records [][]string) (colIndex, int) {
	for rowIdx, row := range records {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		if hasRequired(cols) {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func hasRequired(cols colIndex) bool {
	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts subscribers from data rows. headerRowNum is the
// 0-based index of the header in the original file, used for error
// messages that point at the real spreadsheet line.
func parseRows(cols colIndex, records [][]string, headerRowNum int) ([]Row, error) {
	var rows []Row

	for i, record := range records {
		line := headerRowNum + i + 2 // 1-based spreadsheet line

		if isBlank(record) {
			continue
		}

		row := Row{
			Name:           cell(record, cols, colName),
			PrimaryPhone:   cell(record, cols, colPrimary),
			SecondaryPhone: cell(record, cols, colSecondary),
			Address:        cell(record, cols, colAddress),
			QuarterName:    cell(record, cols, colQuarter),
			PlanName:       cell(record, cols, colPlan),
			ONUSerial:      cell(record, cols, colONUSerial),
			DNSN:           cell(record, cols, colDNSN),
			GPSCoords:      cell(record, cols, colGPS),
		}

		if row.Name == "" {
			return nil, fmt.Errorf("line %d: name is empty", line)
		}

		installRaw := cell(record, cols, colInstallDate)

		install, err := time.Parse(time.DateOnly, installRaw)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid install date %q", line, installRaw)
		}

		row.InstallDate = install

		if expiryRaw := cell(record, cols, colExpiryDate); expiryRaw != "" {
			expiry, err := time.Parse(time.DateOnly, expiryRaw)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid expiry date %q", line, expiryRaw)
			}

			row.ExpiryDate = &expiry
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func cell(record []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
