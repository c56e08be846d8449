package metrics

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Rules holds the anomaly-detection thresholds. All comparisons are
// inclusive; ROASDrop applies to drops only.
type Rules struct {
	RevenueWoW        float64 `yaml:"revenue_wow"`
	ReturningSharePP  float64 `yaml:"returning_share_pp"`
	ChannelRevenueWoW float64 `yaml:"channel_revenue_wow"`
	SpendWoW          float64 `yaml:"spend_wow"`
	ROASDrop          float64 `yaml:"roas_drop"`
}

// DefaultRules returns the standard thresholds.
func DefaultRules() Rules {
	return Rules{
		RevenueWoW:        0.10,
		ReturningSharePP:  0.08,
		ChannelRevenueWoW: 0.15,
		SpendWoW:          0.15,
		ROASDrop:          0.20,
	}
}

// LoadRules reads threshold overrides from a YAML file. Fields absent from
// the file keep their defaults.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, eris.Wrapf(err, "metrics: read rules %s", path)
	}

	// The YAML has a top-level "rules" key.
	wrapper := struct {
		Rules Rules `yaml:"rules"`
	}{Rules: DefaultRules()}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Rules{}, eris.Wrap(err, "metrics: parse rules")
	}
	return wrapper.Rules, nil
}
