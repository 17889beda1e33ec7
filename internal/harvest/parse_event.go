package harvest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Cell positions within a bout row on an event page.
const (
	eventCellCategory = 6
	eventCellMethod   = 7
	eventCellRound    = 8
	eventCellMin      = 10
)

// ParseEventContests extracts the bout rows from an event detail page.
// Rows without a data-link attribute are section headers, not bouts, and
// are skipped, as are rows with fewer than the expected ten cells. A page
// without the bout table yields an empty slice, not an error.
func ParseEventContests(doc *goquery.Document, event Event) []Contest {
	var contests []Contest
	doc.Find("table.b-fight-details__table tbody tr").Each(func(_ int, row *goquery.Selection) {
		link := strings.TrimSpace(row.AttrOr("data-link", ""))
		if link == "" {
			return
		}
		cells := row.Find("td")
		if cells.Length() < eventCellMin {
			return
		}

		// The method cell stacks two paragraphs: the short label and a
		// longer human-readable detail. Only the label is kept.
		method := cellText(cells.Eq(eventCellMethod), 0)
		if method == "" {
			method = nodeText(cells.Eq(eventCellMethod))
		}

		contests = append(contests, Contest{
			ID:        IDFromURL(link),
			EventID:   event.ID,
			EventDate: event.Date,
			Category:  nodeText(cells.Eq(eventCellCategory)),
			Method:    method,
			Round:     nodeText(cells.Eq(eventCellRound)),
			URL:       link,
		})
	})
	return contests
}
