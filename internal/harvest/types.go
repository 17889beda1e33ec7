package harvest

import (
	"strconv"
	"strings"
)

// Event is one row of the completed-events listing. It is an enumeration
// record only: events themselves are not persisted, their contests are.
type Event struct {
	ID string
	// Date is ISO-8601 when the listing date parsed, otherwise the verbatim
	// listing text. Consumers must treat it as "ISO-8601 or opaque".
	Date string
	URL  string
}

// Contest is a single bout row on an event page.
type Contest struct {
	ID        string
	EventID   string
	EventDate string
	Category  string
	// Method keeps only the short outcome label; the longer human-readable
	// detail stacked beneath it on the page is discarded.
	Method string
	Round  string
	URL    string
}

// Row renders the contests.csv columns.
func (c Contest) Row() []string {
	return []string{c.ID, c.EventDate, c.Category, c.Method, c.Round}
}

// ContestResult holds one fighter's totals for one bout. A bout yields
// exactly two of these, in the order the fighters appear on the detail page,
// or none at all.
type ContestResult struct {
	ContestID          string
	ParticipantID      string
	Outcome            string
	StrikeLanded       int
	StrikeAttempted    int
	GrappleLanded      int
	GrappleAttempted   int
	SubmissionAttempts int
	ControlSeconds     int
}

// Row renders the contest_stats.csv columns.
func (r ContestResult) Row() []string {
	return []string{
		r.ContestID,
		r.ParticipantID,
		r.Outcome,
		strconv.Itoa(r.StrikeLanded),
		strconv.Itoa(r.StrikeAttempted),
		strconv.Itoa(r.GrappleLanded),
		strconv.Itoa(r.GrappleAttempted),
		strconv.Itoa(r.SubmissionAttempts),
		strconv.Itoa(r.ControlSeconds),
	}
}

// Fighter is a profile record. Every numeric field beyond the win/loss/tie
// record is optional: a "--" or missing source value stays nil and renders
// as an empty CSV cell, never as zero.
type Fighter struct {
	ID       string
	Name     string
	Nickname string
	Wins     int
	Losses   int
	Ties     int
	HeightIn *int
	WeightLb *int
	ReachIn  *int
	Stance   string
	Age      *int
	// Career averages: significant strikes landed/absorbed per minute,
	// accuracy and defense rates, takedown average/accuracy/defense, and
	// submission attempts per 15 minutes.
	StrikesLandedPerMin   *float64
	StrikeAccuracy        *float64
	StrikesAbsorbedPerMin *float64
	StrikeDefense         *float64
	GrappleAvg            *float64
	GrappleAccuracy       *float64
	GrappleDefense        *float64
	SubmissionAvg         *float64
}

// Row renders the fighters.csv columns.
func (f Fighter) Row() []string {
	return []string{
		f.ID,
		f.Name,
		f.Nickname,
		strconv.Itoa(f.Wins),
		strconv.Itoa(f.Losses),
		strconv.Itoa(f.Ties),
		intCell(f.HeightIn),
		intCell(f.WeightLb),
		intCell(f.ReachIn),
		f.Stance,
		intCell(f.Age),
		floatCell(f.StrikesLandedPerMin),
		floatCell(f.StrikeAccuracy),
		floatCell(f.StrikesAbsorbedPerMin),
		floatCell(f.StrikeDefense),
		floatCell(f.GrappleAvg),
		floatCell(f.GrappleAccuracy),
		floatCell(f.GrappleDefense),
		floatCell(f.SubmissionAvg),
	}
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// IDFromURL derives a record's primary id from its canonical source URL:
// the final path segment after trimming trailing slashes. The derivation is
// deterministic across runs, which is what makes resume-by-id work.
func IDFromURL(rawURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
