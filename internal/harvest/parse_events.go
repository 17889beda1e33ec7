package harvest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nodeText returns the selection's text with runs of whitespace collapsed.
func nodeText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// cellTexts returns the trimmed text of each <p> inside a table cell. The
// source site stacks multiple values in one cell as sibling paragraphs.
func cellTexts(cell *goquery.Selection) []string {
	var texts []string
	cell.Find("p").Each(func(_ int, p *goquery.Selection) {
		texts = append(texts, nodeText(p))
	})
	return texts
}

// cellText returns the idx-th stacked value inside a cell, or "" when the
// cell has fewer values than expected.
func cellText(cell *goquery.Selection, idx int) string {
	texts := cellTexts(cell)
	if idx < len(texts) {
		return texts[idx]
	}
	return ""
}

// ParseEventList extracts completed events from the statistics listing
// page, newest first. Rows without both a detail link and a date are
// skipped; a page without the events table yields an empty slice.
func ParseEventList(doc *goquery.Document) []Event {
	var events []Event
	doc.Find("table.b-statistics__table-events tr.b-statistics__table-row").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a.b-link").First()
		dateSpan := row.Find("span.b-statistics__date").First()
		if link.Length() == 0 || dateSpan.Length() == 0 {
			return
		}
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		events = append(events, Event{
			ID:   IDFromURL(href),
			Date: NormalizeDate(nodeText(dateSpan)),
			URL:  href,
		})
	})
	return events
}
