package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ColonelBlimp/cwclip/internal/cli/decode"
	"github.com/ColonelBlimp/cwclip/internal/config"
	"github.com/ColonelBlimp/cwclip/internal/signal"
)

// decodeRuns decodes ". -" followed by a word gap and "-": E T
func decodeRuns(t *testing.T) *decode.Result {
	t.Helper()
	d, err := decode.NewDecoder(config.Defaults())
	if err != nil {
		t.Fatalf("NewDecoder() error = %v", err)
	}
	res, err := d.DecodeSignal(signal.Expand([]signal.Run{
		{On: true, Length: 2}, {On: false, Length: 2},
		{On: true, Length: 6}, {On: false, Length: 6},
		{On: true, Length: 2}, {On: false, Length: 14},
		{On: true, Length: 6},
	}))
	if err != nil {
		t.Fatalf("DecodeSignal() error = %v", err)
	}
	return res
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat() error = %v, want ErrUnknownFormat", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	res := decodeRuns(t)
	r := New("frames.txt", 245, res, nil)

	if _, err := uuid.Parse(r.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", r.ID, err)
	}
	if r.GeneratedAt.IsZero() {
		t.Error("GeneratedAt is zero")
	}
	if r.Morse != ".- . / -" || r.Text != "AE T" {
		t.Errorf("Morse/Text = %q / %q", r.Morse, r.Text)
	}
	if r.OnRuns != 4 || r.OffRuns != 3 {
		t.Errorf("OnRuns/OffRuns = %d/%d, want 4/3", r.OnRuns, r.OffRuns)
	}
	if r.Frames != res.Frames {
		t.Errorf("Frames = %d, want %d", r.Frames, res.Frames)
	}
	want := []string{"intra", "letter", "word"}
	if strings.Join(r.GapRoles, ",") != strings.Join(want, ",") {
		t.Errorf("GapRoles = %v, want %v", r.GapRoles, want)
	}

	other := New("frames.txt", 245, res, nil)
	if other.ID == r.ID {
		t.Error("two reports share an ID")
	}
}

func TestNew_Error(t *testing.T) {
	r := New("dark.txt", 250, nil, errors.New("no ON signal"))
	if r.Error != "no ON signal" {
		t.Errorf("Error = %q", r.Error)
	}
	if r.OnCenters == nil || r.GapRoles == nil {
		t.Error("slices should be empty, not nil")
	}

	var buf bytes.Buffer
	if err := r.Write(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no ON signal") {
		t.Errorf("text output %q should contain the error", buf.String())
	}
}

func TestWrite_Text(t *testing.T) {
	r := New("frames.txt", 245, decodeRuns(t), nil)

	var buf bytes.Buffer
	if err := r.Write(&buf, FormatText); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "\nMorse Code:\n.- . / -\n\nDecoded Text:\nAE T\n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}

func TestWrite_JSON(t *testing.T) {
	r := New("frames.txt", 245, decodeRuns(t), nil)

	var buf bytes.Buffer
	if err := r.Write(&buf, FormatJSON); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got["text"] != "AE T" || got["source"] != "frames.txt" || got["id"] != r.ID {
		t.Errorf("unexpected json: %s", buf.String())
	}
	if _, ok := got["error"]; ok {
		t.Error("error key should be omitted on success")
	}
}

func TestWrite_YAML(t *testing.T) {
	r := New("frames.txt", 245, decodeRuns(t), nil)

	var buf bytes.Buffer
	if err := r.Write(&buf, FormatYAML); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got Report
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, buf.String())
	}
	if got.Morse != r.Morse || got.Threshold != 245 || len(got.OffCenters) != 3 {
		t.Errorf("decoded yaml = %+v", got)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	r := New("x", 245, nil, nil)
	if err := r.Write(io.Discard, Format("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Write() error = %v, want ErrUnknownFormat", err)
	}
}

func TestWriteAll(t *testing.T) {
	res := decodeRuns(t)
	reports := []*Report{
		New("a.txt", 245, res, nil),
		New("b.txt", 245, nil, errors.New("boom")),
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteAll(&buf, FormatJSON, reports); err != nil {
			t.Fatal(err)
		}
		var got []Report
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if len(got) != 2 || got[0].Source != "a.txt" || got[1].Error != "boom" {
			t.Errorf("decoded = %+v", got)
		}
	})

	t.Run("json empty", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteAll(&buf, FormatJSON, nil); err != nil {
			t.Fatal(err)
		}
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("WriteAll(nil) = %q, want []", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteAll(&buf, FormatYAML, reports); err != nil {
			t.Fatal(err)
		}
		dec := yaml.NewDecoder(&buf)
		var sources []string
		for {
			var r Report
			err := dec.Decode(&r)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			sources = append(sources, r.Source)
		}
		if strings.Join(sources, ",") != "a.txt,b.txt" {
			t.Errorf("sources = %v", sources)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteAll(&buf, FormatText, reports); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if !strings.Contains(out, "== a.txt ==") || !strings.Contains(out, "== b.txt ==") {
			t.Errorf("missing headers:\n%s", out)
		}
		if !strings.Contains(out, "AE T") || !strings.Contains(out, "boom") {
			t.Errorf("missing bodies:\n%s", out)
		}
	})
}
