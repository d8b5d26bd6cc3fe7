package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/gchange/internal/industry"
)

// Rules holds the industry keyword lists used by the filter.
type Rules struct {
	Blocklist []string `yaml:"blocklist"`
	Highlight []string `yaml:"highlight"`
}

// DefaultRules returns the built-in keyword lists.
func DefaultRules() *Rules {
	return &Rules{
		Blocklist: append([]string(nil), industry.DefaultBlocklist...),
		Highlight: append([]string(nil), industry.DefaultHighlight...),
	}
}

// LoadRules reads keyword rules from a YAML file. An empty path returns
// the defaults, and a list missing from the file keeps its default.
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read rules %s", path)
	}

	// The YAML has a top-level "industry" key
	var wrapper struct {
		Industry struct {
			Blocklist *[]string `yaml:"blocklist"`
			Highlight *[]string `yaml:"highlight"`
		} `yaml:"industry"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "config: parse rules")
	}

	if wrapper.Industry.Blocklist != nil {
		rules.Blocklist = *wrapper.Industry.Blocklist
	}
	if wrapper.Industry.Highlight != nil {
		rules.Highlight = *wrapper.Industry.Highlight
	}
	return rules, nil
}

// BlocklistKeywords returns the blocklist as matcher keywords.
func (r *Rules) BlocklistKeywords() industry.Keywords {
	return industry.NewKeywords(r.Blocklist)
}

// HighlightKeywords returns the highlight list as matcher keywords.
func (r *Rules) HighlightKeywords() industry.Keywords {
	return industry.NewKeywords(r.Highlight)
}
