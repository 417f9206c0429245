package schedule

import (
	"log/slog"
	"regexp"
	"strings"
)

// Rule recognizes a deadline on a single line of recognized text.
type Rule interface {
	Name() string
	TryMatch(line string) (CandidateEvent, bool)
}

// Built-in patterns, in priority order. The hyphen form is what the
// restructuring pass emits; the "due" form appears on raw scanned
// documents.
var (
	hyphenPattern = regexp.MustCompile(`^(?P<title>.+?)\s+-\s+(?P<date>.+)$`)
	duePattern    = regexp.MustCompile(`(?i)^(?P<title>.+)\s+due\s+(?P<date>\d{1,2}/\d{1,2}/\d{4})\s*$`)
)

type regexRule struct {
	name string
	re   *regexp.Regexp
}

func (r *regexRule) Name() string {
	return r.name
}

func (r *regexRule) TryMatch(line string) (CandidateEvent, bool) {
	match := r.re.FindStringSubmatch(line)
	if match == nil {
		return CandidateEvent{}, false
	}

	title := strings.TrimSpace(match[r.re.SubexpIndex("title")])
	date := strings.TrimSpace(match[r.re.SubexpIndex("date")])
	if title == "" || date == "" {
		return CandidateEvent{}, false
	}

	return CandidateEvent{RawTitle: title, RawDate: date, SourceLine: line}, true
}

// Extractor scans recognized text for deadline-like lines. It does no date
// validation; captured substrings go to the normalizer verbatim.
type Extractor struct {
	rules []Rule
}

// NewExtractor creates an extractor with the built-in rules followed by any
// additional rules, tried in that order.
func NewExtractor(extra ...Rule) *Extractor {
	rules := []Rule{
		&regexRule{name: "hyphen", re: hyphenPattern},
		&regexRule{name: "due", re: duePattern},
	}
	rules = append(rules, extra...)

	return &Extractor{rules: rules}
}

// Run yields one candidate per matching line. The first matching rule wins;
// non-matching lines are skipped silently, OCR noise is expected.
func (e *Extractor) Run(text string) []CandidateEvent {
	var candidates []CandidateEvent

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, rule := range e.rules {
			candidate, ok := rule.TryMatch(line)
			if !ok {
				continue
			}

			slog.Debug("Line matched", "rule", rule.Name(), "title", candidate.RawTitle, "date", candidate.RawDate)
			candidates = append(candidates, candidate)
			break
		}
	}

	return candidates
}
