// Package decode runs the full decoding pipeline: brightness samples to ON/OFF
// runs, runs to duration classes, classes to Morse code and Morse code to text.
package decode

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/ColonelBlimp/cwclip/internal/cluster"
	"github.com/ColonelBlimp/cwclip/internal/config"
	"github.com/ColonelBlimp/cwclip/internal/cw"
	"github.com/ColonelBlimp/cwclip/internal/signal"
)

const (
	// DefaultOnClasses is dot and dash
	DefaultOnClasses = 2
	// DefaultOffClasses is intra-symbol, letter and word gap
	DefaultOffClasses = 3
)

// Result holds every intermediate product of one decode.
type Result struct {
	// Frames is the number of samples decoded
	Frames int
	// Runs is the grouped ON/OFF signal
	Runs []signal.Run
	// Elements holds the role of each run, same order as Runs
	Elements []cw.ElementKind
	// OnCenters are the ON class centers in ascending order (frames)
	OnCenters []float64
	// OffCenters are the OFF class centers in ascending order (frames)
	OffCenters []float64
	// GapRoles holds the role of each entry of OffCenters
	GapRoles []cw.ElementKind
	// Fallback is true when gap roles were fitted to the dot length instead of
	// taken by rank, because the gaps did not separate into their classes
	Fallback bool
	// Tokens are the Morse tokens, "/" marking word gaps
	Tokens []string
	// Morse is Tokens joined by spaces
	Morse string
	// Text is the decoded message
	Text string
}

// Decoder decodes recordings. It holds configuration only, so a single
// Decoder may be used from several goroutines.
type Decoder struct {
	classifier *signal.Classifier
	table      cw.Table
	threshold  int
	onClasses  int
	offClasses int
	cluster    cluster.Config
	strict     bool
	log        *zap.SugaredLogger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.log = l
		}
	}
}

// WithTable replaces the Morse lookup table.
func WithTable(t cw.Table) Option {
	return func(d *Decoder) {
		if t != nil {
			d.table = t
		}
	}
}

// NewDecoder creates a decoder from application settings. Zero class counts
// fall back to the defaults.
func NewDecoder(s config.Settings, opts ...Option) (*Decoder, error) {
	classifier, err := signal.NewClassifier(signal.ClassifierConfig{
		Threshold:  s.Threshold,
		Hysteresis: s.Hysteresis,
	})
	if err != nil {
		return nil, err
	}

	table, err := cw.NewTable(s.SymbolMap())
	if err != nil {
		return nil, fmt.Errorf("custom symbols: %w", err)
	}

	d := &Decoder{
		classifier: classifier,
		table:      table,
		threshold:  s.Threshold,
		onClasses:  s.OnClasses,
		offClasses: s.OffClasses,
		cluster:    cluster.Config{MaxIterations: s.MaxIterations},
		strict:     s.StrictGapClasses,
		log:        zap.NewNop().Sugar(),
	}
	if d.onClasses == 0 {
		d.onClasses = DefaultOnClasses
	}
	if d.offClasses == 0 {
		d.offClasses = DefaultOffClasses
	}
	if d.onClasses < 2 {
		return nil, fmt.Errorf("on classes must be at least 2, got %d", d.onClasses)
	}
	if d.offClasses < 3 {
		return nil, fmt.Errorf("off classes must be at least 3, got %d", d.offClasses)
	}

	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Decode classifies brightness samples and decodes the resulting signal.
func (d *Decoder) Decode(samples []signal.Sample) (*Result, error) {
	return d.DecodeSignal(d.classifier.Classify(samples))
}

// DecodeSignal decodes an ON/OFF signal, one value per frame.
// An empty signal decodes to an empty result. A non-empty signal without any
// ON frame is a ConfigurationError.
func (d *Decoder) DecodeSignal(sig []bool) (*Result, error) {
	res := &Result{
		Frames:     len(sig),
		Runs:       signal.Group(sig),
		Elements:   []cw.ElementKind{},
		OnCenters:  []float64{},
		OffCenters: []float64{},
		GapRoles:   []cw.ElementKind{},
		Tokens:     []string{},
	}
	if len(sig) == 0 {
		return res, nil
	}

	onLengths, offLengths := signal.Lengths(res.Runs)

	on, err := cluster.Fit(onLengths, d.onClasses, d.cluster)
	if err != nil {
		return nil, fmt.Errorf("cluster on runs: %w", err)
	}
	if len(on.Centers) == 0 {
		return nil, &ConfigurationError{Threshold: d.threshold, Frames: len(sig)}
	}
	onRoles := markRoles(on.Centers)
	res.OnCenters = cluster.Sorted(on.Centers)

	off, err := cluster.Fit(offLengths, d.offClasses, d.cluster)
	if err != nil {
		return nil, fmt.Errorf("cluster off runs: %w", err)
	}
	offRoles, fallback, err := d.gapRoles(off.Centers, res.OnCenters, len(offLengths))
	if err != nil {
		return nil, err
	}
	res.Fallback = fallback
	res.OffCenters = cluster.Sorted(off.Centers)
	for _, idx := range cluster.Rank(off.Centers) {
		res.GapRoles = append(res.GapRoles, offRoles[idx])
	}

	d.log.Debugw("duration classes",
		"frames", res.Frames,
		"onRuns", len(onLengths),
		"offRuns", len(offLengths),
		"onCenters", res.OnCenters,
		"offCenters", res.OffCenters,
		"gapRoles", res.GapRoles,
		"fallback", res.Fallback,
	)

	onIdx, offIdx := 0, 0
	for _, r := range res.Runs {
		if r.On {
			res.Elements = append(res.Elements, onRoles[on.Labels[onIdx]])
			onIdx++
		} else {
			res.Elements = append(res.Elements, offRoles[off.Labels[offIdx]])
			offIdx++
		}
	}

	res.Tokens = cw.Assemble(res.Elements)
	res.Morse = cw.Render(res.Tokens)
	res.Text = cw.Decode(res.Morse, d.table)
	return res, nil
}

// gapRoles assigns a role to each OFF cluster index. The second return value
// reports whether the roles were fitted to the dot length instead of taken by
// rank.
//
// Jitter can split one gap length over two classes, so with a full set of
// classes the rank mapping is only kept when it agrees with the role nearest
// to each center. The check needs a dot length, which a single ON class does
// not give.
func (d *Decoder) gapRoles(centers, onCenters []float64, runs int) ([]cw.ElementKind, bool, error) {
	if len(centers) == 0 {
		return []cw.ElementKind{}, false, nil
	}
	dot := onCenters[0]

	if len(centers) >= d.offClasses {
		ranked := rankedGapRoles(centers)
		if len(onCenters) < 2 {
			return ranked, false, nil
		}
		nearest := nearestGapRoles(centers, dot)
		if slices.Equal(ranked, nearest) {
			return ranked, false, nil
		}
		if d.strict {
			return nil, false, &DegenerateClassError{
				Polarity: "off",
				Runs:     runs,
				Distinct: distinctRoles(nearest),
				Classes:  d.offClasses,
			}
		}
		d.log.Debugw("gap classes disagree with dot length, fitting roles",
			"offRuns", runs, "centers", cluster.Sorted(centers), "dot", dot)
		return nearest, true, nil
	}

	if d.strict {
		return nil, false, &DegenerateClassError{
			Polarity: "off",
			Runs:     runs,
			Distinct: len(centers),
			Classes:  d.offClasses,
		}
	}
	if len(centers) >= len(gapOrder) {
		return rankedGapRoles(centers), true, nil
	}

	d.log.Debugw("too few distinct gaps, fitting roles to dot length",
		"offRuns", runs, "classes", len(centers), "dot", dot)
	return fittedGapRoles(centers, dot), true, nil
}
