// Package report renders decode results as text, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ColonelBlimp/cwclip/internal/cli/decode"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat indicates an output format other than text, json or yaml
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts text, json or yaml in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Report is the outcome of decoding one frame record.
type Report struct {
	ID          string    `json:"id" yaml:"id"`
	Source      string    `json:"source" yaml:"source"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Threshold   int       `json:"threshold" yaml:"threshold"`
	Frames      int       `json:"frames" yaml:"frames"`
	OnRuns      int       `json:"on_runs" yaml:"on_runs"`
	OffRuns     int       `json:"off_runs" yaml:"off_runs"`
	OnCenters   []float64 `json:"on_centers" yaml:"on_centers"`
	OffCenters  []float64 `json:"off_centers" yaml:"off_centers"`
	GapRoles    []string  `json:"gap_roles" yaml:"gap_roles"`
	Fallback    bool      `json:"fallback" yaml:"fallback"`
	Morse       string    `json:"morse" yaml:"morse"`
	Text        string    `json:"text" yaml:"text"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// New builds a report for res. res may be nil when decoding failed, in which
// case err is recorded instead.
func New(source string, threshold int, res *decode.Result, err error) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Threshold:   threshold,
		OnCenters:   []float64{},
		OffCenters:  []float64{},
		GapRoles:    []string{},
	}
	if err != nil {
		r.Error = err.Error()
	}
	if res == nil {
		return r
	}

	r.Frames = res.Frames
	for _, run := range res.Runs {
		if run.On {
			r.OnRuns++
		} else {
			r.OffRuns++
		}
	}
	r.OnCenters = append(r.OnCenters, res.OnCenters...)
	r.OffCenters = append(r.OffCenters, res.OffCenters...)
	for _, role := range res.GapRoles {
		r.GapRoles = append(r.GapRoles, role.String())
	}
	r.Fallback = res.Fallback
	r.Morse = res.Morse
	r.Text = res.Text
	return r
}

// Write renders a single report.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return writeText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		return writeYAML(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// WriteAll renders several reports: a JSON array, a YAML document stream, or
// text blocks headed by their source.
func WriteAll(w io.Writer, f Format, reports []*Report) error {
	switch f {
	case FormatText:
		for _, r := range reports {
			if _, err := fmt.Fprintf(w, "== %s ==\n", r.Source); err != nil {
				return err
			}
			if err := writeText(w, r); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if reports == nil {
			reports = []*Report{}
		}
		return enc.Encode(reports)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, r := range reports {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

func writeYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeText(w io.Writer, r *Report) error {
	if r.Error != "" {
		_, err := fmt.Fprintf(w, "\nError:\n%s\n", r.Error)
		return err
	}
	_, err := fmt.Fprintf(w, "\nMorse Code:\n%s\n\nDecoded Text:\n%s\n", r.Morse, r.Text)
	return err
}
