package harvest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/fightlytics/cageharvest/internal/dataset"
	"github.com/fightlytics/cageharvest/internal/metrics"
	"github.com/fightlytics/cageharvest/internal/progress"
)

// Dataset file names within the partition directory.
const (
	contestsDataset     = "contests.csv"
	contestStatsDataset = "contest_stats.csv"
	fightersDataset     = "fighters.csv"
)

var (
	contestColumns = []string{
		"contest_id", "event_date", "category", "outcome_method", "outcome_round",
	}
	contestStatColumns = []string{
		"contest_id", "participant_id", "outcome",
		"strike_landed", "strike_attempted",
		"grapple_landed", "grapple_attempted",
		"submission_attempts", "control_seconds",
	}
	fighterColumns = []string{
		"fighter_id", "name", "nickname",
		"record_wins", "record_losses", "record_ties",
		"height_in", "weight_lb", "reach_in", "stance", "age",
		"strikes_landed_per_min", "strike_accuracy",
		"strikes_absorbed_per_min", "strike_defense",
		"grapple_avg", "grapple_accuracy", "grapple_defense",
		"submission_avg",
	}
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Harvester coordinates the harvest pipelines. Each dataset runs the same
// phase sequence: enumerate the candidate set, dispatch fetch+parse tasks
// over a bounded pool, collect results in completion order, filter out ids
// the dataset already holds, and persist the survivors.
type Harvester struct {
	cfg     Config
	fetcher Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

// New constructs a Harvester. The fetcher is shared by all workers so they
// reuse one connection pool.
func New(cfg Config, fetcher Fetcher, logger *zap.Logger) *Harvester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harvester{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// HarvestFights runs the two fight phases: event pages into contests.csv,
// then bout detail pages into contest_stats.csv. The phases fail
// independently: a contest whose detail page yields nothing is still
// retained in contests.csv and will be reattempted by the next run.
func (h *Harvester) HarvestFights(ctx context.Context) error {
	dir := h.cfg.PartitionDir(h.now())
	contestsPath := filepath.Join(dir, contestsDataset)
	statsPath := filepath.Join(dir, contestStatsDataset)

	doc, err := h.fetcher.Fetch(ctx, h.cfg.EventsURL())
	if err != nil {
		return fmt.Errorf("fetch events listing: %w", err)
	}
	events := ParseEventList(doc)
	h.logger.Info("enumerated completed events", zap.Int("events", len(events)))

	tracker := progress.NewTracker("event-pages", len(events), h.logger)
	perEvent := runPool(ctx, h.cfg.Concurrency, events, func(ctx context.Context, ev Event) []Contest {
		doc, err := h.fetcher.Fetch(ctx, ev.URL)
		if err != nil {
			tracker.Failure(ev.ID, err)
			return nil
		}
		tracker.Success()
		return ParseEventContests(doc, ev)
	})
	tracker.Summary()

	var contests []Contest
	for _, batch := range perEvent {
		contests = append(contests, batch...)
	}

	existing, err := dataset.LoadIDs(contestsPath, "contest_id")
	if err != nil {
		return err
	}
	var contestRows [][]string
	skipped := 0
	for _, c := range contests {
		if existing.Has(c.ID) {
			skipped++
			continue
		}
		existing[c.ID] = struct{}{}
		contestRows = append(contestRows, c.Row())
	}
	if err := dataset.Append(contestsPath, contestColumns, contestRows); err != nil {
		return err
	}
	metrics.RowsWritten.WithLabelValues("contests").Add(float64(len(contestRows)))
	metrics.RowsSkipped.WithLabelValues("contests").Add(float64(skipped))
	h.logger.Info("contests persisted",
		zap.String("path", contestsPath),
		zap.Int("new", len(contestRows)),
		zap.Int("already_present", skipped),
	)

	// The stats phase filters before the expensive detail fetch: only
	// contests absent from the stats dataset are fetched at all.
	statIDs, err := dataset.LoadIDs(statsPath, "contest_id")
	if err != nil {
		return err
	}
	var candidates []Contest
	for _, c := range contests {
		if !statIDs.Has(c.ID) {
			candidates = append(candidates, c)
		}
	}
	h.logger.Info("contest detail candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("already_present", len(contests)-len(candidates)),
	)

	statsTracker := progress.NewTracker("contest-pages", len(candidates), h.logger)
	perContest := runPool(ctx, h.cfg.Concurrency, candidates, func(ctx context.Context, c Contest) []ContestResult {
		doc, err := h.fetcher.Fetch(ctx, c.URL)
		if err != nil {
			statsTracker.Failure(c.ID, err)
			return nil
		}
		statsTracker.Success()
		return ParseContestResults(doc, c.ID)
	})
	statsTracker.Summary()

	var statRows [][]string
	for _, results := range perContest {
		for _, r := range results {
			statRows = append(statRows, r.Row())
		}
	}
	if err := dataset.Append(statsPath, contestStatColumns, statRows); err != nil {
		return err
	}
	metrics.RowsWritten.WithLabelValues("contest_stats").Add(float64(len(statRows)))
	h.logger.Info("contest stats persisted",
		zap.String("path", statsPath),
		zap.Int("new", len(statRows)),
		zap.Int("already_present", len(contests)-len(candidates)),
	)
	return nil
}

// HarvestFighters enumerates fighter ids across the alphabetic listing
// partition, drops ids already persisted, and fetches the remaining
// profile pages into fighters.csv.
func (h *Harvester) HarvestFighters(ctx context.Context) error {
	dir := h.cfg.PartitionDir(h.now())
	path := filepath.Join(dir, fightersDataset)

	tracker := progress.NewTracker("fighter-listing", len(alphabet), h.logger)
	perLetter := runPool(ctx, h.cfg.ListConcurrency, []rune(alphabet), func(ctx context.Context, letter rune) []string {
		doc, err := h.fetcher.Fetch(ctx, h.cfg.FighterListURL(letter))
		if err != nil {
			tracker.Failure(string(letter), err)
			return nil
		}
		tracker.Success()
		return ParseFighterIDs(doc)
	})
	tracker.Summary()

	// Fighters appear under multiple letters only by markup accident;
	// collapse to a set, then sort for reproducible dispatch order.
	seen := map[string]struct{}{}
	for _, ids := range perLetter {
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}
	existing, err := dataset.LoadIDs(path, "fighter_id")
	if err != nil {
		return err
	}
	var candidates []string
	for id := range seen {
		if !existing.Has(id) {
			candidates = append(candidates, id)
		}
	}
	sort.Strings(candidates)
	h.logger.Info("enumerated fighters",
		zap.Int("fighters", len(seen)),
		zap.Int("candidates", len(candidates)),
		zap.Int("already_present", len(seen)-len(candidates)),
	)

	detailTracker := progress.NewTracker("fighter-pages", len(candidates), h.logger)
	fighters := runPool(ctx, h.cfg.Concurrency, candidates, func(ctx context.Context, id string) *Fighter {
		doc, err := h.fetcher.Fetch(ctx, h.cfg.FighterDetailURL(id))
		if err != nil {
			detailTracker.Failure(id, err)
			return nil
		}
		fighter, ok := ParseFighterDetail(doc, id, h.now())
		if !ok {
			detailTracker.Failure(id, errors.New("profile missing name anchor"))
			return nil
		}
		detailTracker.Success()
		return &fighter
	})
	detailTracker.Summary()

	var rows [][]string
	for _, f := range fighters {
		if f != nil {
			rows = append(rows, f.Row())
		}
	}
	if err := dataset.Append(path, fighterColumns, rows); err != nil {
		return err
	}
	metrics.RowsWritten.WithLabelValues("fighters").Add(float64(len(rows)))
	metrics.RowsSkipped.WithLabelValues("fighters").Add(float64(len(seen) - len(candidates)))
	h.logger.Info("fighters persisted",
		zap.String("path", path),
		zap.Int("new", len(rows)),
		zap.Int("already_present", len(seen)-len(candidates)),
	)
	return nil
}
