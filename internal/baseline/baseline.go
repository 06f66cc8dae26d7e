// Package baseline implements the black-box regression database from
// §7/§8: a per-stream failure-count baseline that may only decrease, never
// increase, across runs. Grounded on holocm-holo-build's use of
// github.com/BurntSushi/toml for small typed config files — the spec's
// repos.yaml is carried as a TOML document here since that is the
// teacher-pack's wired serialization choice (see SPEC_FULL.md).
package baseline

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Baseline maps a stream's repo-relative path to the number of times it
// failed to parse in the last known-good regression run.
type Baseline struct {
	Streams map[string]int `toml:"streams"`
}

// Load reads a baseline file, returning an empty Baseline if it does not
// exist yet.
func Load(path string) (*Baseline, error) {
	var b Baseline
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Baseline{Streams: map[string]int{}}, nil
	}
	if _, err := toml.DecodeFile(path, &b); err != nil {
		return nil, err
	}
	if b.Streams == nil {
		b.Streams = map[string]int{}
	}
	return &b, nil
}

// Save writes the baseline back to path in TOML form.
func (b *Baseline) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(b)
}

// Regression is returned by Check when a stream's failure count increased
// relative to the stored baseline (§8's "failures may decrease but never
// increase").
type Regression struct {
	Stream   string
	Baseline int
	Observed int
}

func (r *Regression) Error() string {
	return fmt.Sprintf("regression: %s failed %d times (baseline %d)", r.Stream, r.Observed, r.Baseline)
}

// Check compares observed per-stream failure counts against the stored
// baseline, returning one Regression per stream whose count increased.
// Streams with no prior baseline entry are not flagged; Update should be
// called afterward to persist the (possibly improved) counts.
func (b *Baseline) Check(observed map[string]int) []*Regression {
	var regressions []*Regression
	for stream, count := range observed {
		if prev, ok := b.Streams[stream]; ok && count > prev {
			regressions = append(regressions, &Regression{Stream: stream, Baseline: prev, Observed: count})
		}
	}
	return regressions
}

// Update lowers or initializes each stream's stored count to min(stored,
// observed), implementing the "failures may decrease but never increase"
// baseline-tightening rule from §8.
func (b *Baseline) Update(observed map[string]int) {
	for stream, count := range observed {
		if prev, ok := b.Streams[stream]; !ok || count < prev {
			b.Streams[stream] = count
		}
	}
}
