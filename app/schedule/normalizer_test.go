package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizerISO(t *testing.T) {
	normalizer := NewNormalizer()

	date, err := normalizer.Run("2025-03-05")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expected := Date{Year: 2025, Month: time.March, Day: 5}
	if date != expected {
		t.Errorf("Expected %v, got %v", expected, date)
	}
}

func TestNormalizerUSSlash(t *testing.T) {
	normalizer := NewNormalizer()

	date, err := normalizer.Run("03/10/2025")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expected := Date{Year: 2025, Month: time.March, Day: 10}
	if date != expected {
		t.Errorf("Expected %v, got %v", expected, date)
	}
}

func TestNormalizerFreeForm(t *testing.T) {
	normalizer := NewNormalizer()

	date, err := normalizer.Run("March 5, 2025")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expected := Date{Year: 2025, Month: time.March, Day: 5}
	if date != expected {
		t.Errorf("Expected %v, got %v", expected, date)
	}
}

func TestNormalizerTrimsWhitespace(t *testing.T) {
	normalizer := NewNormalizer()

	date, err := normalizer.Run("  2025-03-05  ")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if date.Day != 5 {
		t.Errorf("Expected day 5, got %d", date.Day)
	}
}

func TestNormalizerRejectsInvalid(t *testing.T) {
	normalizer := NewNormalizer()

	inputs := []string{
		"",
		"not a date",
		"2025-13-01", // month 13
		"2025-02-30", // non-existent day
		"13/05/2025", // month 13, must not be reread as day-first
		"03/32/2025", // day 32
	}

	for _, input := range inputs {
		_, err := normalizer.Run(input)
		if err == nil {
			t.Errorf("Expected error for input '%s'", input)
			continue
		}

		var invalidDate *InvalidDateError
		if !errors.As(err, &invalidDate) {
			t.Errorf("Expected InvalidDateError for input '%s', got: %v", input, err)
		}
	}
}

func TestNormalizerDeterministic(t *testing.T) {
	normalizer := NewNormalizer()

	first, err1 := normalizer.Run("March 5, 2025")
	second, err2 := normalizer.Run("March 5, 2025")

	if err1 != nil || err2 != nil {
		t.Fatalf("Expected no errors, got: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("Normalization is not deterministic: %v vs %v", first, second)
	}
}

func TestNormalizerRoundTrip(t *testing.T) {
	normalizer := NewNormalizer()

	dates := []Date{
		{Year: 2025, Month: time.January, Day: 1},
		{Year: 2025, Month: time.December, Day: 31},
		{Year: 2024, Month: time.February, Day: 29}, // leap day
	}

	for _, original := range dates {
		parsed, err := normalizer.Run(original.String())
		if err != nil {
			t.Fatalf("Round trip failed for %s: %v", original.String(), err)
		}
		if parsed != original {
			t.Errorf("Expected %v after round trip, got %v", original, parsed)
		}
	}
}

func TestDateString(t *testing.T) {
	date := Date{Year: 2025, Month: time.March, Day: 5}
	if date.String() != "2025-03-05" {
		t.Errorf("Expected '2025-03-05', got '%s'", date.String())
	}
}
