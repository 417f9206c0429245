package schedule

import (
	"context"
	"log/slog"
	"strings"
)

// Coordinator runs the full pipeline over one document's recognized text:
// extract, normalize (invalid dates dropped with a count), dedupe, sync.
// Each stage consumes its input and produces a new collection; nothing is
// shared between concurrent runs.
type Coordinator struct {
	extractor    *Extractor
	normalizer   *Normalizer
	deduplicator *Deduplicator
	synchronizer *Synchronizer
}

func NewCoordinator(extractor *Extractor, writer EventWriter) *Coordinator {
	return &Coordinator{
		extractor:    extractor,
		normalizer:   NewNormalizer(),
		deduplicator: NewDeduplicator(),
		synchronizer: NewSynchronizer(writer),
	}
}

// Run returns ErrNoEvents when the text yields zero valid events, so the
// caller can short-circuit before any network sync is attempted. All other
// failures are per-item and land in the outcome, never as a run error.
func (c *Coordinator) Run(ctx context.Context, text string, skip map[string]bool) (*SyncOutcome, error) {
	candidates := c.extractor.Run(text)

	validated := make([]Event, 0, len(candidates))
	dropped := 0
	for _, candidate := range candidates {
		date, err := c.normalizer.Run(candidate.RawDate)
		if err != nil {
			slog.Debug("Dropping candidate with unparsable date", "line", candidate.SourceLine, "error", err)
			dropped++
			continue
		}

		title := strings.TrimSpace(candidate.RawTitle)
		if title == "" {
			dropped++
			continue
		}

		validated = append(validated, Event{Title: title, Date: date})
	}

	unique := c.deduplicator.Run(validated)
	if len(unique) == 0 {
		return nil, ErrNoEvents
	}

	outcome := c.synchronizer.Run(ctx, unique, skip)
	outcome.DroppedDates = dropped

	slog.Info("Pipeline completed",
		"candidates", len(candidates),
		"dropped", dropped,
		"unique", len(unique),
		"created", len(outcome.Created),
		"failed", len(outcome.Failed),
		"skipped", len(outcome.Skipped))

	return &outcome, nil
}
