package excel

// ExcelConfig holds the input selection for a spreadsheet import
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	// Sheet is the worksheet to read; empty selects the first sheet of the workbook
	Sheet string `json:"sheet"`
}

// DefaultExcelConfig returns a config reading the first sheet of path
func DefaultExcelConfig(path string) ExcelConfig {
	return ExcelConfig{FilePath: path}
}
