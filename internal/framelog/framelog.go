// Package framelog reads and writes frame records: one line per video frame
// holding the average colour of the pixels that changed against the first
// frame, followed by the number of changed pixels.
//
//	0: 251 249 247 (1532)
//	1: 0 0 0 (0)
package framelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/spf13/afero"

	"github.com/ColonelBlimp/cwclip/internal/signal"
)

// linePattern matches the index and colour of a line. The pixel count is optional.
var linePattern = regexp.MustCompile(`(\d+): (\d+) (\d+) (\d+)`)

// Record is one frame of a frame record.
type Record struct {
	// Index is the frame number as written in the record
	Index int
	signal.Sample
	// Count is the number of changed pixels averaged into Sample
	Count int
}

// Format renders r as a single record line without the trailing newline.
func (r Record) Format() string {
	return fmt.Sprintf("%d: %d %d %d (%d)", r.Index, r.R, r.G, r.B, r.Count)
}

// Read parses frame lines from r. Lines that do not look like a frame are skipped.
func Read(r io.Reader) ([]Record, error) {
	records := make([]Record, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rec, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read frame record: %w", err)
	}
	return records, nil
}

func parseLine(line string) (Record, bool) {
	loc := linePattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return Record{}, false
	}
	var vals [4]int
	for i := range vals {
		v, err := strconv.Atoi(line[loc[2*i+2]:loc[2*i+3]])
		if err != nil {
			return Record{}, false
		}
		vals[i] = v
	}
	rec := Record{
		Index:  vals[0],
		Sample: signal.Sample{R: vals[1], G: vals[2], B: vals[3]},
	}

	// the count is informational, a missing or malformed one is left at zero
	var count int
	if _, err := fmt.Sscanf(line[loc[1]:], " (%d)", &count); err == nil {
		rec.Count = count
	}
	return rec, true
}

// Load reads the frame record at path.
func Load(fs afero.Fs, path string) ([]Record, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame record: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Samples returns the colour of every record, in order.
func Samples(records []Record) []signal.Sample {
	samples := make([]signal.Sample, len(records))
	for i, r := range records {
		samples[i] = r.Sample
	}
	return samples
}

// Writer appends records to a frame record, numbering them from zero.
type Writer struct {
	w    *bufio.Writer
	c    io.Closer
	next int
}

// NewWriter writes records to w. Close flushes but does not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Create truncates or creates the frame record at path, making parent
// directories as needed.
func Create(fs afero.Fs, path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create frame record dir: %w", err)
		}
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("create frame record: %w", err)
	}
	fw := NewWriter(f)
	fw.c = f
	return fw, nil
}

// Write appends one frame and returns its index.
func (w *Writer) Write(s signal.Sample, count int) (int, error) {
	rec := Record{Index: w.next, Sample: s, Count: count}
	if _, err := w.w.WriteString(rec.Format() + "\n"); err != nil {
		return 0, fmt.Errorf("write frame %d: %w", rec.Index, err)
	}
	w.next++
	return rec.Index, nil
}

// Frames returns the number of records written so far.
func (w *Writer) Frames() int { return w.next }

// Close flushes buffered records and closes the file opened by Create.
func (w *Writer) Close() error {
	err := w.w.Flush()
	if w.c != nil {
		if cerr := w.c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
