package app

import (
	"context"
	"testing"

	"wahlimport/internal"
	"wahlimport/internal/errors"
	"wahlimport/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importedFixture(t *testing.T) *importFixture {
	t.Helper()

	path := writeElectionWorkbook(t, t.TempDir(), workbookRows)
	fx := newImportFixture(t, "", 1000)
	_, err := fx.service.Import(context.Background(), ImportRequest{Path: path})
	require.NoError(t, err)
	return fx
}

func TestSummarize_SecondVote(t *testing.T) {
	fx := importedFixture(t)
	svc := NewSummaryService(fx.results, internal.NewNopLogger())

	summary, err := svc.Summarize(context.Background(), "LTW2024", "")
	require.NoError(t, err)

	assert.Equal(t, models.StimmartZweitstimme, summary.Stimmart)
	assert.Equal(t, 3, summary.PollingPlaces)

	// the postal district has no electorate and is left out of turnout
	assert.Equal(t, 2, summary.Turnout.Counted)
	assert.InDelta(t, 1000.0/1800.0, summary.Turnout.Overall, 1e-9)
	assert.InDelta(t, 0.55, summary.Turnout.Mean, 1e-9)
	assert.InDelta(t, 0.55, summary.Turnout.Median, 1e-9)
	assert.InDelta(t, 0.5, summary.Turnout.Min, 1e-9)
	assert.InDelta(t, 0.6, summary.Turnout.Max, 1e-9)
	assert.InDelta(t, 0.05, summary.Turnout.StdDev, 1e-9)

	assert.Equal(t, int64(593+398+299), summary.Ballots.Gueltige)
	assert.Equal(t, int64(7+2+1), summary.Ballots.Ungueltige)

	require.Len(t, summary.Parties, 2)
	assert.Equal(t, "CDU", summary.Parties[0].Partei)
	assert.Equal(t, int64(630), summary.Parties[0].Stimmen)
	assert.InDelta(t, 630.0/1290.0, summary.Parties[0].Anteil, 1e-9)
	assert.Equal(t, "SPD", summary.Parties[1].Partei)
	assert.Equal(t, int64(521), summary.Parties[1].Stimmen)
}

func TestSummarize_FirstVote(t *testing.T) {
	fx := importedFixture(t)
	svc := NewSummaryService(fx.results, internal.NewNopLogger())

	summary, err := svc.Summarize(context.Background(), "LTW2024", models.StimmartErststimme)
	require.NoError(t, err)

	assert.Equal(t, int64(595+396+297), summary.Ballots.Gueltige)
	require.Len(t, summary.Parties, 2)
	assert.Equal(t, "CDU", summary.Parties[0].Partei)
	assert.Equal(t, int64(300+200+150), summary.Parties[0].Stimmen)
	assert.Equal(t, int64(295+196+147), summary.Parties[1].Stimmen)
}

func TestSummarize_Errors(t *testing.T) {
	fx := importedFixture(t)
	svc := NewSummaryService(fx.results, internal.NewNopLogger())

	_, err := svc.Summarize(context.Background(), "LTW2024", "3")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.Summarize(context.Background(), "BTW2025", "")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
