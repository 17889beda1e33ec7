package harvest

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ParseFighterIDs extracts the fighter ids from one alphabetic listing
// page. A page without the listing table yields an empty slice.
func ParseFighterIDs(doc *goquery.Document) []string {
	var ids []string
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a[href]").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		if id := IDFromURL(href); id != "" {
			ids = append(ids, id)
		}
	})
	return ids
}

// ParseFighterDetail extracts a fighter profile from a detail page. The
// second return value is false when the page lacks the expected name
// anchor (a structural miss, not an error). Missing or "--" numeric
// fields stay nil.
func ParseFighterDetail(doc *goquery.Document, fighterID string, today time.Time) (Fighter, bool) {
	name := nodeText(doc.Find("span.b-content__title-highlight").First())
	if name == "" {
		return Fighter{}, false
	}
	record := nodeText(doc.Find("span.b-content__title-record").First())
	nickname := nodeText(doc.Find("p.b-content__Nickname").First())

	// Every profile attribute shares one list-item pattern:
	// <li><i>Label:</i> value</li>.
	attrs := make(map[string]string)
	doc.Find("li.b-list__box-list-item").Each(func(_ int, item *goquery.Selection) {
		label := item.Find("i").First()
		if label.Length() == 0 {
			return
		}
		labelText := nodeText(label)
		key := strings.TrimSpace(strings.ReplaceAll(labelText, ":", ""))
		if key == "" {
			return
		}
		value := strings.TrimSpace(strings.Replace(nodeText(item), labelText, "", 1))
		attrs[key] = value
	})

	wins, losses, ties := ParseRecord(record)
	fighter := Fighter{
		ID:                    fighterID,
		Name:                  name,
		Nickname:              nickname,
		Wins:                  wins,
		Losses:                losses,
		Ties:                  ties,
		HeightIn:              ParseHeight(attrs["Height"]),
		WeightLb:              ParseWeight(attrs["Weight"]),
		ReachIn:               ParseReach(attrs["Reach"]),
		Stance:                attrs["STANCE"],
		Age:                   AgeAt(attrs["DOB"], today),
		StrikesLandedPerMin:   ParseDecimal(attrs["SLpM"]),
		StrikeAccuracy:        ParsePercent(attrs["Str. Acc."]),
		StrikesAbsorbedPerMin: ParseDecimal(attrs["SApM"]),
		StrikeDefense:         ParsePercent(attrs["Str. Def"]),
		GrappleAvg:            ParseDecimal(attrs["TD Avg."]),
		GrappleAccuracy:       ParsePercent(attrs["TD Acc."]),
		GrappleDefense:        ParsePercent(attrs["TD Def."]),
		SubmissionAvg:         ParseDecimal(attrs["Sub. Avg."]),
	}
	return fighter, true
}
