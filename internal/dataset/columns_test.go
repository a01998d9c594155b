package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyColumns(t *testing.T) {
	set := ClassifyColumns(wideHeaders)

	assert.Len(t, set.Fixed, 12)
	assert.Equal(t, []string{"ungültige_1", "ungültige_2", "gültige_1", "gültige_2",
		"CDU_1", "CDU_2", "SPD_1", "SPD_2", "Bemerkung"}, set.Party)
	assert.Equal(t, []string{"ungültige_1", "ungültige_2", "gültige_1", "gültige_2",
		"CDU_1", "CDU_2", "SPD_1", "SPD_2"}, set.Votes)
	assert.Equal(t, []string{"Bemerkung"}, set.Ignored)
}

func TestVoteTypeAndPartyLabel(t *testing.T) {
	tests := []struct {
		column   string
		stimmart string
		partei   string
	}{
		{"CDU_1", "1", "CDU"},
		{"GRÜNE_2", "2", "GRÜNE"},
		{"ungültige_1", "1", "ungültige"},
		{"Die PARTEI_2", "2", "Die PARTEI"},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			assert.Equal(t, tt.stimmart, voteType(tt.column))
			assert.Equal(t, tt.partei, partyLabel(tt.column))
		})
	}
}

func TestMissingColumns(t *testing.T) {
	assert.Empty(t, MissingColumns(wideHeaders))
	assert.Equal(t, []string{"Wähler", "gültige_1"}, MissingColumns([]string{
		"Wahl", "WK-Nr", "WK-Name", "Ebene", "AGS", "Ortname", "WBZ-Art", "WBZ-Nr",
		"WBZ-Name", "Wahlberechtigte", "ungültige_1", "ungültige_2", "gültige_2",
	}))
}
