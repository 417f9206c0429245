package schedule

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

type rulesFile struct {
	Rules []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
	} `yaml:"rules"`
}

// LoadRules reads additional extraction rules from a YAML file. Each
// pattern must be a valid regular expression with named capture groups
// "title" and "date". A missing file is not an error; the built-in rules
// cover the common formats.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for _, raw := range file.Rules {
		if raw.Name == "" {
			return nil, fmt.Errorf("rule without a name in %s", path)
		}

		re, err := regexp.Compile(raw.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for rule %q: %w", raw.Name, err)
		}
		if re.SubexpIndex("title") < 0 || re.SubexpIndex("date") < 0 {
			return nil, fmt.Errorf("rule %q must capture named groups \"title\" and \"date\"", raw.Name)
		}

		rules = append(rules, &regexRule{name: raw.Name, re: re})
	}

	return rules, nil
}
