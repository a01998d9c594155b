package dataset

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"wahlimport/internal/errors"
	"wahlimport/models"
)

// MaxAGSLength is the length of a municipality key; longer keys lose their last character
const MaxAGSLength = 8

// Clean converts reshaped rows into storage records. Any conversion failure
// aborts the whole table.
func Clean(long Table) ([]models.ElectionResult, error) {
	results := make([]models.ElectionResult, 0, len(long.Rows))
	for i, r := range long.Rows {
		result, err := cleanRow(r)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d (%s)", i+1, describeRow(r))
		}
		results = append(results, result)
	}
	return results, nil
}

func cleanRow(r Row) (models.ElectionResult, error) {
	var (
		res models.ElectionResult
		err error
	)

	res.Partei = r[ColPartei]
	if res.Stimmen, err = requireCount(r, ColStimmen); err != nil {
		return res, err
	}
	res.AGS = NormalizeAGS(r[ColAGS])
	if res.Wahlberechtigte, err = optionalCount(r, ColWahlberechtigte); err != nil {
		return res, err
	}

	if res.WKNr, err = requireCount(r, ColWKNr); err != nil {
		return res, err
	}
	if res.Waehler, err = requireCount(r, ColWaehler); err != nil {
		return res, err
	}
	if res.Ungueltige, err = requireCount(r, ColUngueltige); err != nil {
		return res, err
	}
	if res.Gueltige, err = requireCount(r, ColGueltige); err != nil {
		return res, err
	}

	res.Wahl = r[ColWahl]
	res.WKName = r[ColWKName]
	res.Ebene = r[ColEbene]
	res.Ortname = r[ColOrtname]
	res.BriefwahlSonderfall = r[ColBriefwahlSonderfall]
	res.WBZArt = r[ColWBZArt]
	res.WBZNr = r[ColWBZNr]
	res.WBZName = r[ColWBZName]
	res.Stimmart = r[ColStimmart]
	return res, nil
}

// NormalizeAGS drops the trailing character of keys longer than eight characters
func NormalizeAGS(ags string) string {
	if utf8.RuneCountInString(ags) > MaxAGSLength {
		r := []rune(ags)
		return string(r[:len(r)-1])
	}
	return ags
}

// ParseCount converts a cell into an integer count. Spreadsheet numbers may
// arrive as "12" or "12.0"; fractional or non-numeric values are rejected.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, errors.ValueError("value out of range: %q", s)
		}
		return int(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errors.ValueError("invalid literal for integer: %q", s)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, errors.ValueError("value out of range: %q", s)
	}
	return int(f), nil
}

func requireCount(r Row, column string) (int, error) {
	v, ok := r[column]
	if !ok {
		return 0, errors.ValueError("cannot convert missing %s to integer", column)
	}
	n, err := ParseCount(v)
	if err != nil {
		return 0, errors.Wrapf(err, "column %s", column)
	}
	return n, nil
}

func optionalCount(r Row, column string) (int, error) {
	if _, ok := r[column]; !ok {
		return 0, nil
	}
	return requireCount(r, column)
}

func describeRow(r Row) string {
	parts := make([]string, 0, 4)
	for _, c := range []string{ColWKNr, ColAGS, ColWBZNr, ColStimmart, ColPartei} {
		if v, ok := r[c]; ok {
			parts = append(parts, c+"="+v)
		}
	}
	return strings.Join(parts, ", ")
}
