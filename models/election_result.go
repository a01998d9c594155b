package models

import (
	"time"
)

// Vote categories recorded per polling place
const (
	StimmartErststimme  = "1"
	StimmartZweitstimme = "2"
)

// ElectionResult is one long-format row: votes of one party in one vote category at one polling place
type ElectionResult struct {
	ID                  int64     `json:"id" db:"id"`
	Wahl                string    `json:"wahl" db:"wahl"`
	WKNr                int       `json:"wk_nr" db:"wk_nr"`
	WKName              string    `json:"wk_name" db:"wk_name"`
	Ebene               string    `json:"ebene" db:"ebene"`
	AGS                 string    `json:"ags" db:"ags"`
	Ortname             string    `json:"ortname" db:"ortname"`
	BriefwahlSonderfall string    `json:"briefwahl_sonderfall" db:"briefwahl_sonderfall"`
	WBZArt              string    `json:"wbz_art" db:"wbz_art"`
	WBZNr               string    `json:"wbz_nr" db:"wbz_nr"`
	WBZName             string    `json:"wbz_name" db:"wbz_name"`
	Wahlberechtigte     int       `json:"wahlberechtigte" db:"wahlberechtigte"`
	Waehler             int       `json:"waehler" db:"waehler"`
	Stimmart            string    `json:"stimmart" db:"stimmart"`
	Ungueltige          int       `json:"ungueltige" db:"ungueltige"`
	Gueltige            int       `json:"gueltige" db:"gueltige"`
	Partei              string    `json:"partei" db:"partei"`
	Stimmen             int       `json:"stimmen" db:"stimmen"`
	AktualisiertAm      time.Time `json:"aktualisiert_am" db:"aktualisiert_am"`
}

// ResultFilter narrows result queries. Zero values are ignored.
type ResultFilter struct {
	Wahl     string
	WKNr     int
	AGS      string
	WBZNr    string
	Stimmart string
	Partei   string
	Limit    int
	Offset   int
}

// PollingPlaceTurnout is the per-polling-place electorate used for turnout statistics
type PollingPlaceTurnout struct {
	WKNr            int    `db:"wk_nr"`
	AGS             string `db:"ags"`
	WBZNr           string `db:"wbz_nr"`
	Wahlberechtigte int    `db:"wahlberechtigte"`
	Waehler         int    `db:"waehler"`
}

// PartyTotal is the summed vote count of one party in one vote category
type PartyTotal struct {
	Stimmart string `json:"stimmart" db:"stimmart"`
	Partei   string `json:"partei" db:"partei"`
	Stimmen  int64  `json:"stimmen" db:"stimmen"`
}

// BallotTotal is the summed valid and invalid ballots in one vote category
type BallotTotal struct {
	Stimmart   string `json:"stimmart" db:"stimmart"`
	Gueltige   int64  `json:"gueltige" db:"gueltige"`
	Ungueltige int64  `json:"ungueltige" db:"ungueltige"`
}
