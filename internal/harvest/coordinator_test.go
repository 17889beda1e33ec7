package harvest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fightlytics/cageharvest/internal/dataset"
)

const fakeEventListTmpl = `<html><body>
<table class="b-statistics__table-events"><tbody>
<tr class="b-statistics__table-row"><td>
  <a class="b-link" href="%[1]s/event-details/evt100">Grand Prix 241</a>
  <span class="b-statistics__date">February 21, 2026</span>
</td></tr>
<tr class="b-statistics__table-row"><td>
  <a class="b-link" href="%[1]s/event-details/evt200">Fight Night</a>
  <span class="b-statistics__date">March 1, 2026</span>
</td></tr>
</tbody></table>
</body></html>`

const fakeEventDetailTmpl = `<html><body>
<table class="b-fight-details__table"><tbody>
<tr data-link="%[1]s/fight-details/%[2]s">
  <td><p>win</p></td><td><p>A</p><p>B</p></td><td><p>0</p></td><td><p>1</p></td>
  <td><p>0</p></td><td><p>0</p></td>
  <td><p>%[3]s</p></td>
  <td><p>%[4]s</p><p>Details</p></td>
  <td><p>%[5]s</p></td><td><p>5:00</p></td>
</tr>
</tbody></table>
</body></html>`

const fakeContestDetail = `<html><body>
<div class="b-fight-details__person">
  <i class="b-fight-details__person-status">W</i>
  <a class="b-fight-details__person-link" href="%[1]s/fighter-details/f100">Alex Stone</a>
</div>
<div class="b-fight-details__person">
  <i class="b-fight-details__person-status">L</i>
  <a class="b-fight-details__person-link" href="%[1]s/fighter-details/f200">Marco Silva</a>
</div>
<table><tbody><tr>
  <td><p>Alex Stone</p><p>Marco Silva</p></td>
  <td><p>1</p><p>0</p></td>
  <td><p>12 of 34</p><p>5</p></td>
  <td><p>35%%</p><p>--</p></td>
  <td><p>20 of 45</p><p>9 of 22</p></td>
  <td><p>2 of 5</p><p>0 of 1</p></td>
  <td><p>40%%</p><p>0%%</p></td>
  <td><p>1</p><p>0</p></td>
  <td><p>0</p><p>0</p></td>
  <td><p>4:32</p><p>--</p></td>
</tr></tbody></table>
</body></html>`

const fakeContestDetailSingle = `<html><body>
<div class="b-fight-details__person">
  <i class="b-fight-details__person-status">W</i>
  <a class="b-fight-details__person-link" href="%[1]s/fighter-details/f100">Alex Stone</a>
</div>
</body></html>`

const fakeFighterListA = `<html><body>
<table><tbody>
<tr><td><a href="%[1]s/fighter-details/f100">Alex</a></td></tr>
<tr><td><a href="%[1]s/fighter-details/f200">Marco</a></td></tr>
</tbody></table>
</body></html>`

const fakeFighterDetail = `<html><body>
<span class="b-content__title-highlight">Alex Stone</span>
<span class="b-content__title-record">Record: 12-3-1</span>
<p class="b-content__Nickname">The Hammer</p>
<ul>
<li class="b-list__box-list-item"><i>Height:</i> 5' 7"</li>
<li class="b-list__box-list-item"><i>Weight:</i> 155 lbs.</li>
<li class="b-list__box-list-item"><i>Reach:</i> 72"</li>
<li class="b-list__box-list-item"><i>STANCE:</i> Orthodox</li>
<li class="b-list__box-list-item"><i>DOB:</i> Aug 20, 1987</li>
<li class="b-list__box-list-item"><i>SLpM:</i> 4.53</li>
<li class="b-list__box-list-item"><i>Str. Acc.:</i> 50%</li>
</ul>
</body></html>`

// fakeSite serves a two-event, two-bout, two-fighter statistics site. One
// bout detail page and one fighter profile are structurally broken on
// purpose to exercise per-task isolation.
func fakeSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/statistics/events/completed", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, fakeEventListTmpl, srv.URL)
	})
	mux.HandleFunc("/event-details/evt100", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, fakeEventDetailTmpl, srv.URL, "c100", "Lightweight", "KO/TKO", "2")
	})
	mux.HandleFunc("/event-details/evt200", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, fakeEventDetailTmpl, srv.URL, "c200", "Welterweight", "U-DEC", "3")
	})
	mux.HandleFunc("/fight-details/c100", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, fakeContestDetail, srv.URL)
	})
	mux.HandleFunc("/fight-details/c200", func(w http.ResponseWriter, _ *http.Request) {
		// Only one participant block: ambiguous structure, no stat rows.
		fmt.Fprintf(w, fakeContestDetailSingle, srv.URL)
	})
	mux.HandleFunc("/statistics/fighters", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("char") == "a" {
			fmt.Fprintf(w, fakeFighterListA, srv.URL)
			return
		}
		fmt.Fprint(w, "<html><body></body></html>")
	})
	mux.HandleFunc("/fighter-details/f100", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, fakeFighterDetail)
	})
	mux.HandleFunc("/fighter-details/f200", func(w http.ResponseWriter, _ *http.Request) {
		// Profile page without the name anchor: a structural miss.
		fmt.Fprint(w, "<html><body><p>unavailable</p></body></html>")
	})

	return srv
}

func newTestHarvester(t *testing.T, baseURL, outputDir string) *Harvester {
	t.Helper()
	cfg := Config{
		BaseURL:         baseURL,
		OutputDir:       outputDir,
		PartitionDate:   "2026-03-02",
		Concurrency:     4,
		ListConcurrency: 4,
		MaxRetries:      3,
		BaseBackoff:     time.Millisecond,
		RequestTimeout:  5 * time.Second,
		UserAgent:       "cageharvest-test/1.0",
	}
	require.NoError(t, cfg.Validate())

	fetcher, err := NewSiteFetcher(cfg, zap.NewNop())
	require.NoError(t, err)

	h := New(cfg, fetcher, zap.NewNop())
	h.now = func() time.Time {
		return time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	}
	return h
}

func TestHarvestFights(t *testing.T) {
	t.Parallel()
	srv := fakeSite(t)
	dir := t.TempDir()
	h := newTestHarvester(t, srv.URL, dir)

	require.NoError(t, h.HarvestFights(context.Background()))

	contestsPath := filepath.Join(dir, "2026-03-02", "contests.csv")
	statsPath := filepath.Join(dir, "2026-03-02", "contest_stats.csv")

	contestIDs, err := dataset.LoadIDs(contestsPath, "contest_id")
	require.NoError(t, err)
	assert.True(t, contestIDs.Has("c100"))
	// The bout whose detail page is broken is still retained here: the two
	// phases fail independently.
	assert.True(t, contestIDs.Has("c200"))
	assert.Len(t, contestIDs, 2)

	statIDs, err := dataset.LoadIDs(statsPath, "contest_id")
	require.NoError(t, err)
	assert.True(t, statIDs.Has("c100"))
	assert.False(t, statIDs.Has("c200"))
	assert.Len(t, statIDs, 1)

	participantIDs, err := dataset.LoadIDs(statsPath, "participant_id")
	require.NoError(t, err)
	assert.True(t, participantIDs.Has("f100"))
	assert.True(t, participantIDs.Has("f200"))
}

func TestHarvestFightsIsIdempotent(t *testing.T) {
	t.Parallel()
	srv := fakeSite(t)
	dir := t.TempDir()
	h := newTestHarvester(t, srv.URL, dir)

	require.NoError(t, h.HarvestFights(context.Background()))

	contestsPath := filepath.Join(dir, "2026-03-02", "contests.csv")
	statsPath := filepath.Join(dir, "2026-03-02", "contest_stats.csv")
	contestsBefore, err := os.ReadFile(contestsPath)
	require.NoError(t, err)
	statsBefore, err := os.ReadFile(statsPath)
	require.NoError(t, err)

	// The rerun re-fetches only the still-missing bout detail (c200, which
	// keeps yielding nothing) and appends no rows anywhere.
	require.NoError(t, h.HarvestFights(context.Background()))

	contestsAfter, err := os.ReadFile(contestsPath)
	require.NoError(t, err)
	statsAfter, err := os.ReadFile(statsPath)
	require.NoError(t, err)
	assert.Equal(t, contestsBefore, contestsAfter)
	assert.Equal(t, statsBefore, statsAfter)
}

func TestHarvestFighters(t *testing.T) {
	t.Parallel()
	srv := fakeSite(t)
	dir := t.TempDir()
	h := newTestHarvester(t, srv.URL, dir)

	require.NoError(t, h.HarvestFighters(context.Background()))

	path := filepath.Join(dir, "2026-03-02", "fighters.csv")
	ids, err := dataset.LoadIDs(path, "fighter_id")
	require.NoError(t, err)
	// f200's profile is a structural miss, so only f100 lands.
	assert.True(t, ids.Has("f100"))
	assert.False(t, ids.Has("f200"))
	assert.Len(t, ids, 1)

	names, err := dataset.LoadIDs(path, "name")
	require.NoError(t, err)
	assert.True(t, names.Has("Alex Stone"))
}

func TestHarvestFightersIsIdempotent(t *testing.T) {
	t.Parallel()
	srv := fakeSite(t)
	dir := t.TempDir()
	h := newTestHarvester(t, srv.URL, dir)

	require.NoError(t, h.HarvestFighters(context.Background()))
	path := filepath.Join(dir, "2026-03-02", "fighters.csv")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, h.HarvestFighters(context.Background()))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestHarvestFightsEmptyListing(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/statistics/events/completed", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body><p>nothing yet</p></body></html>")
	})

	dir := t.TempDir()
	h := newTestHarvester(t, srv.URL, dir)

	// Zero enumerated candidates is not an error; the datasets stay valid
	// header-only files.
	require.NoError(t, h.HarvestFights(context.Background()))

	ids, err := dataset.LoadIDs(filepath.Join(dir, "2026-03-02", "contests.csv"), "contest_id")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
