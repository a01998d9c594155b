package dataset

import (
	"strings"

	"wahlimport/internal/errors"
)

// PlaceholderMarker marks a party that did not contest a race
const PlaceholderMarker = "x"

// Reshape turns the wide polling-place table into long rows of
// (fixed columns, Stimmart, ungueltige, gueltige, Partei, Stimmen).
func Reshape(wide Table) (Table, error) {
	if missing := MissingColumns(wide.Columns); len(missing) > 0 {
		return Table{}, errors.ValueError("missing required columns: %s", strings.Join(missing, ", "))
	}

	set := ClassifyColumns(wide.Columns)
	keys := append(append([]string(nil), set.Fixed...), ColStimmart)

	ungueltige := Melt(wide, set.Fixed, UngueltigeColumns, ColStimmart, ColUngueltige)
	ungueltige.MapColumn(ColStimmart, voteType)
	gueltige := Melt(wide, set.Fixed, GueltigeColumns, ColStimmart, ColGueltige)
	gueltige.MapColumn(ColStimmart, voteType)

	votes, err := Merge(ungueltige, gueltige, keys, InnerJoin)
	if err != nil {
		return Table{}, errors.Wrap(err, "failed to merge ballot counts")
	}

	parties := Melt(wide, set.Fixed, set.Votes, colParteiStimmart, ColStimmen)
	parties.DeriveColumn(colParteiStimmart, ColStimmart, voteType)
	parties.DeriveColumn(colParteiStimmart, ColPartei, partyLabel)
	parties.DropColumn(colParteiStimmart)

	long, err := Merge(votes, parties, keys, LeftJoin)
	if err != nil {
		return Table{}, errors.Wrap(err, "failed to merge party votes")
	}

	// ballot columns also carry a vote-type suffix and melt into pseudo parties
	long = long.Filter(func(r Row) bool {
		p, ok := r[ColPartei]
		return !ok || (p != LabelUngueltige && p != LabelGueltige)
	})
	long = long.Filter(func(r Row) bool {
		s, ok := r[ColStimmen]
		return !ok || s != PlaceholderMarker
	})
	return long, nil
}
