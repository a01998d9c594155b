package app

import (
	"context"

	"wahlimport/internal/errors"
	"wahlimport/models"
	"wahlimport/ports"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
)

// SummaryService aggregates imported results of one election
type SummaryService struct {
	results ports.ResultRepository
	logger  logrus.FieldLogger
}

// NewSummaryService creates a summary service
func NewSummaryService(results ports.ResultRepository, logger logrus.FieldLogger) *SummaryService {
	return &SummaryService{
		results: results,
		logger:  logger.WithField("component", "summary"),
	}
}

// Summarize computes turnout statistics and party shares. An empty stimmart
// selects the secondary vote.
func (s *SummaryService) Summarize(ctx context.Context, wahl, stimmart string) (*models.ElectionSummary, error) {
	if stimmart == "" {
		stimmart = models.StimmartZweitstimme
	}
	if stimmart != models.StimmartErststimme && stimmart != models.StimmartZweitstimme {
		return nil, errors.InvalidInput("stimmart must be '1' or '2', got '" + stimmart + "'")
	}

	places, err := s.results.Turnout(ctx, wahl)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, errors.NotFound("election " + wahl)
	}

	turnout, err := turnoutStats(places)
	if err != nil {
		return nil, errors.Wrap(errors.InternalError(err.Error()), "failed to compute turnout")
	}

	summary := &models.ElectionSummary{
		Wahl:          wahl,
		Stimmart:      stimmart,
		PollingPlaces: len(places),
		Turnout:       turnout,
		Ballots:       models.BallotTotal{Stimmart: stimmart},
		Parties:       []models.PartySummary{},
	}

	ballots, err := s.results.BallotTotals(ctx, wahl, stimmart)
	if err != nil {
		return nil, err
	}
	if len(ballots) > 0 {
		summary.Ballots = ballots[0]
	}

	parties, err := s.results.PartyTotals(ctx, wahl, stimmart)
	if err != nil {
		return nil, err
	}
	for _, p := range parties {
		share := 0.0
		if summary.Ballots.Gueltige > 0 {
			share = float64(p.Stimmen) / float64(summary.Ballots.Gueltige)
		}
		summary.Parties = append(summary.Parties, models.PartySummary{
			Partei:  p.Partei,
			Stimmen: p.Stimmen,
			Anteil:  share,
		})
	}

	s.logger.WithFields(logrus.Fields{
		"wahl":           wahl,
		"stimmart":       stimmart,
		"polling_places": len(places),
		"parties":        len(summary.Parties),
	}).Debug("election summarized")
	return summary, nil
}

// turnoutStats ignores polling places without a registered electorate,
// such as postal voting districts.
func turnoutStats(places []models.PollingPlaceTurnout) (models.TurnoutStats, error) {
	var out models.TurnoutStats
	var electorate, voters int64
	ratios := make(stats.Float64Data, 0, len(places))
	for _, p := range places {
		if p.Wahlberechtigte <= 0 {
			continue
		}
		electorate += int64(p.Wahlberechtigte)
		voters += int64(p.Waehler)
		ratios = append(ratios, float64(p.Waehler)/float64(p.Wahlberechtigte))
	}
	if len(ratios) == 0 {
		return out, nil
	}

	var err error
	out.Counted = len(ratios)
	out.Overall = float64(voters) / float64(electorate)
	if out.Mean, err = ratios.Mean(); err != nil {
		return out, err
	}
	if out.Median, err = ratios.Median(); err != nil {
		return out, err
	}
	if out.Min, err = ratios.Min(); err != nil {
		return out, err
	}
	if out.Max, err = ratios.Max(); err != nil {
		return out, err
	}
	if out.StdDev, err = ratios.StandardDeviation(); err != nil {
		return out, err
	}
	return out, nil
}
