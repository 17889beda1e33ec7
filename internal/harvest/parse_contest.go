package harvest

import (
	"github.com/PuerkitoBio/goquery"
)

// Cell positions within the totals row on a bout detail page.
const (
	contestCellStrikes     = 2
	contestCellTakedowns   = 5
	contestCellSubAttempts = 7
	contestCellControl     = 9
	contestCellMin         = 10
)

// ParseContestResults extracts the two fighters' totals from a bout detail
// page, in the order the fighters appear on the page so stats stay aligned
// with outcomes. Any participant count other than two means the page
// structure is ambiguous and yields an empty slice, as does a missing or
// short totals table.
func ParseContestResults(doc *goquery.Document, contestID string) []ContestResult {
	type participant struct {
		id      string
		outcome string
	}
	var participants []participant
	doc.Find("div.b-fight-details__person").Each(func(_ int, person *goquery.Selection) {
		link := person.Find("a.b-fight-details__person-link").First()
		if link.Length() == 0 {
			link = person.Find("a.b-link").First()
		}
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		participants = append(participants, participant{
			id:      IDFromURL(href),
			outcome: nodeText(person.Find("i.b-fight-details__person-status").First()),
		})
	})
	if len(participants) != 2 {
		return nil
	}

	// Totals live in the first table on the page, one row, with each cell
	// stacking one value per fighter.
	row := doc.Find("table").First().Find("tbody tr").First()
	if row.Length() == 0 {
		return nil
	}
	cells := row.Find("td")
	if cells.Length() < contestCellMin {
		return nil
	}

	results := make([]ContestResult, 0, 2)
	for idx, p := range participants {
		strikeLanded, strikeAttempted := ParseOfPair(cellText(cells.Eq(contestCellStrikes), idx))
		grappleLanded, grappleAttempted := ParseOfPair(cellText(cells.Eq(contestCellTakedowns), idx))
		subAttempts, _ := ParseOfPair(cellText(cells.Eq(contestCellSubAttempts), idx))

		results = append(results, ContestResult{
			ContestID:          contestID,
			ParticipantID:      p.id,
			Outcome:            p.outcome,
			StrikeLanded:       strikeLanded,
			StrikeAttempted:    strikeAttempted,
			GrappleLanded:      grappleLanded,
			GrappleAttempted:   grappleAttempted,
			SubmissionAttempts: subAttempts,
			ControlSeconds:     ParseControlTime(cellText(cells.Eq(contestCellControl), idx)),
		})
	}
	return results
}
