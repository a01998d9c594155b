package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wahlimport/internal/errors"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	config   ExcelConfig
	fileType string // "xlsx" or "csv"
	logger   logrus.FieldLogger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig, logger logrus.FieldLogger) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		config:   config,
		fileType: fileType,
		logger:   logger.WithField("component", "excel"),
	}
}

// ReadData reads the configured sheet into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	log := r.logger.WithFields(logrus.Fields{"file": r.config.FilePath, "type": r.fileType})
	log.Debug("starting to read file")

	info, err := os.Stat(r.config.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(r.config.FilePath)
		}
		return nil, errors.ReadFailed("failed to stat input file", err)
	}
	if info.IsDir() {
		return nil, errors.ReadFailed(fmt.Sprintf("%s is a directory", r.config.FilePath), nil)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	default:
		return r.readExcelData()
	}
}

// readExcelData reads the selected sheet, or the first one, with raw cell values
func (r *DataReader) readExcelData() (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, errors.ReadFailed("failed to open Excel file", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.ReadFailed("workbook contains no sheets", nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.ReadFailed(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	r.logger.WithFields(logrus.Fields{
		"sheet":   sheet,
		"rows":    len(rows),
		"elapsed": time.Since(startTime).String(),
	}).Debug("sheet read")

	return r.processRows(sheet, rows)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, errors.ReadFailed("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ReadFailed("failed to read CSV file", err)
	}

	return r.processRows(filepath.Base(r.config.FilePath), rows)
}

// processRows converts raw string rows into ExcelData format
func (r *DataReader) processRows(sheet string, rows [][]string) (*ExcelData, error) {
	if len(rows) == 0 {
		return nil, errors.ReadFailed(fmt.Sprintf("sheet %q has no header row", sheet), nil)
	}

	headers := normalizeHeaders(rows[0])

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRowData, len(headers))
		for j, cell := range rows[i] {
			if j >= len(headers) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			rowData[headers[j]] = cell
		}
		// blank lines carry no polling place
		if len(rowData) == 0 {
			continue
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.WithFields(logrus.Fields{
		"sheet":   sheet,
		"columns": len(headers),
		"rows":    len(dataRows),
	}).Info("sheet processed")

	return &ExcelData{
		Sheet:   sheet,
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

// normalizeHeaders trims header cells, names empty ones "Unnamed: <i>" and
// suffixes repeated names with ".1", ".2", ... so every column stays addressable.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, header := range raw {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[header]; dup {
			var renamed string
			for {
				n++
				renamed = fmt.Sprintf("%s.%d", header, n)
				if _, taken := seen[renamed]; !taken && !laterHeader(raw[i+1:], renamed) {
					break
				}
			}
			seen[header] = n
			seen[renamed] = 0
			headers[i] = renamed
			continue
		}
		seen[header] = 0
		headers[i] = header
	}
	return headers
}

// laterHeader reports whether name appears verbatim further right in the header row
func laterHeader(rest []string, name string) bool {
	for _, h := range rest {
		if strings.TrimSpace(h) == name {
			return true
		}
	}
	return false
}
