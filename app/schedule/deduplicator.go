package schedule

// Deduplicator collapses events that denote the same real-world deadline.
// OCR and extraction commonly yield the same deadline twice, reflected
// across a table header and body; writing it twice to the calendar is a
// correctness bug.
type Deduplicator struct{}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Run returns the input with duplicates removed. Order is preserved; the
// first occurrence of each key wins.
func (d *Deduplicator) Run(events []Event) []Event {
	seen := make(map[string]struct{}, len(events))
	unique := make([]Event, 0, len(events))

	for _, event := range events {
		key := event.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, event)
	}

	return unique
}
