package excel

// RawRowData represents a row of raw sheet data keyed by column header.
// Empty cells are absent from the map.
type RawRowData map[string]string

// ExcelData represents one loaded sheet
type ExcelData struct {
	Sheet   string       // Name of the sheet that was read
	Headers []string     // Column headers in sheet order
	Rows    []RawRowData // Data rows
}
