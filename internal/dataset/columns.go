package dataset

import (
	"strings"
)

// Fixed column headers identifying a polling place
const (
	ColWahl                = "Wahl"
	ColWKNr                = "WK-Nr"
	ColWKName              = "WK-Name"
	ColEbene               = "Ebene"
	ColAGS                 = "AGS"
	ColOrtname             = "Ortname"
	ColBriefwahlSonderfall = "Briefwahl_Sonderfall"
	ColWBZArt              = "WBZ-Art"
	ColWBZNr               = "WBZ-Nr"
	ColWBZName             = "WBZ-Name"
	ColWahlberechtigte     = "Wahlberechtigte"
	ColWaehler             = "Wähler"
)

// Derived long-format columns
const (
	ColStimmart       = "Stimmart"
	ColUngueltige     = "ungueltige"
	ColGueltige       = "gueltige"
	ColPartei         = "Partei"
	ColStimmen        = "Stimmen"
	colParteiStimmart = "Partei_Stimmart"
)

// Labels of the invalid and valid ballot columns (ungültige_1, gültige_2, ...)
const (
	LabelUngueltige = "ungültige"
	LabelGueltige   = "gültige"
)

// FixedColumns are kept as identifying columns during the reshape
var FixedColumns = []string{
	ColWahl, ColWKNr, ColWKName, ColEbene, ColAGS, ColOrtname,
	ColBriefwahlSonderfall, ColWBZArt, ColWBZNr, ColWBZName,
	ColWahlberechtigte, ColWaehler,
}

// OptionalFixedColumns may be absent from a sheet; their values are then missing
var OptionalFixedColumns = map[string]bool{
	ColBriefwahlSonderfall: true,
}

// UngueltigeColumns and GueltigeColumns hold the ballot counts per vote type
var (
	UngueltigeColumns = []string{LabelUngueltige + "_1", LabelUngueltige + "_2"}
	GueltigeColumns   = []string{LabelGueltige + "_1", LabelGueltige + "_2"}
)

// ColumnSet is the classification of a sheet's headers
type ColumnSet struct {
	Fixed []string
	// Party holds every non-fixed column
	Party []string
	// Votes holds the party columns carrying a vote-type suffix
	Votes []string
	// Ignored holds party columns without a vote-type suffix
	Ignored []string
}

// IsFixedColumn reports whether name is one of the identifying columns
func IsFixedColumn(name string) bool {
	for _, c := range FixedColumns {
		if c == name {
			return true
		}
	}
	return false
}

// HasVoteTypeSuffix reports whether name ends in _1 or _2
func HasVoteTypeSuffix(name string) bool {
	return strings.HasSuffix(name, "_1") || strings.HasSuffix(name, "_2")
}

// ClassifyColumns partitions headers into fixed and party/vote-type columns
func ClassifyColumns(headers []string) ColumnSet {
	set := ColumnSet{Fixed: FixedColumns}
	for _, h := range headers {
		if IsFixedColumn(h) {
			continue
		}
		set.Party = append(set.Party, h)
		if HasVoteTypeSuffix(h) {
			set.Votes = append(set.Votes, h)
		} else {
			set.Ignored = append(set.Ignored, h)
		}
	}
	return set
}

// MissingColumns lists the required fixed and ballot columns absent from headers
func MissingColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, c := range FixedColumns {
		if !present[c] && !OptionalFixedColumns[c] {
			missing = append(missing, c)
		}
	}
	for _, c := range append(append([]string(nil), UngueltigeColumns...), GueltigeColumns...) {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// voteType is the vote-type code of a suffixed column: its last character
func voteType(column string) string {
	r := []rune(column)
	if len(r) == 0 {
		return ""
	}
	return string(r[len(r)-1])
}

// partyLabel is the column name without its two-character vote-type suffix
func partyLabel(column string) string {
	r := []rune(column)
	if len(r) < 2 {
		return ""
	}
	return string(r[:len(r)-2])
}
