// Package ledger loads records from the line-oriented transactions file.
//
// Each line has the form "description,amount". Lines that do not split into
// exactly two fields are skipped. Amounts that fail to parse are skipped too
// unless Options.Strict is set, in which case loading stops with a ParseError.
package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/taxtracker/taxtracker/internal/model"
	"github.com/taxtracker/taxtracker/internal/store"
)

// DefaultFile is the working-directory-relative transactions file.
const DefaultFile = "transactions.txt"

const (
	numFields = 2
	colDesc   = 0
	colAmount = 1
	separator = ","
)

// ErrFileUnavailable is reported when the transactions file cannot be opened.
// LoadFile absorbs it and starts with an empty store.
var ErrFileUnavailable = errors.New("transactions file unavailable")

// ParseError describes a line whose amount could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Options controls how malformed lines are treated.
type Options struct {
	// Strict stops loading at the first line with an unparseable amount.
	Strict bool
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Result summarizes a load.
type Result struct {
	Loaded  int
	Skipped int
}

// Records lazily parses r into records. Skipped lines are not yielded. In
// strict mode a bad amount yields a *ParseError and ends the sequence; a read
// error is always yielded and ends it.
func Records(r io.Reader, opts Options) iter.Seq2[model.Record, error] {
	return records(r, opts, func() {})
}

func records(r io.Reader, opts Options, skipped func()) iter.Seq2[model.Record, error] {
	return func(yield func(model.Record, error) bool) {
		log := opts.logger()
		br := bufio.NewReader(r)
		lineNo := 0
		for {
			line, readErr := br.ReadString('\n')
			if readErr != nil && !errors.Is(readErr, io.EOF) {
				yield(model.Record{}, fmt.Errorf("reading transactions: %w", readErr))
				return
			}
			if errors.Is(readErr, io.EOF) && line == "" {
				return
			}
			lineNo++
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

			rec, err := UnmarshalRecord(line)
			switch {
			case errors.Is(err, errFieldCount), errors.Is(err, errEmptyDescription):
				log.Debug("Skipping malformed line", "line", lineNo, "reason", err)
				skipped()
			case err != nil:
				if opts.Strict {
					yield(model.Record{}, &ParseError{Line: lineNo, Text: line, Err: err})
					return
				}
				log.Warn("Skipping line with invalid amount", "line", lineNo, "error", err)
				skipped()
			default:
				if !yield(rec, nil) {
					return
				}
			}

			if errors.Is(readErr, io.EOF) {
				return
			}
		}
	}
}

var (
	errFieldCount       = errors.New("expected exactly 2 fields")
	errEmptyDescription = errors.New("empty description")
)

// UnmarshalRecord converts one "description,amount" line to a Record.
func UnmarshalRecord(line string) (model.Record, error) {
	parts := strings.Split(line, separator)
	if len(parts) != numFields {
		return model.Record{}, fmt.Errorf("%w, got %d", errFieldCount, len(parts))
	}

	desc := strings.TrimSpace(parts[colDesc])
	if desc == "" {
		return model.Record{}, errEmptyDescription
	}

	amount, err := model.ParseAmount(parts[colAmount])
	if err != nil {
		return model.Record{}, err
	}
	return model.NewRecord(desc, amount), nil
}

// Load appends every record from r to s.
func Load(r io.Reader, s *store.Store, opts Options) (Result, error) {
	var res Result
	for rec, err := range records(r, opts, func() { res.Skipped++ }) {
		if err != nil {
			return res, err
		}
		s.Append(rec)
		res.Loaded++
	}
	return res, nil
}

// LoadFile opens path and appends its records to s. A file that cannot be
// opened is not an error: the store is left empty and a zero Result is
// returned.
func LoadFile(path string, s *store.Store, opts Options) (Result, error) {
	log := opts.logger()

	f, err := open(path)
	if err != nil {
		log.Debug("Transactions file not loaded", "path", path, "error", err)
		return Result{}, nil
	}
	defer f.Close()

	res, err := Load(f, s, opts)
	if err != nil {
		return res, fmt.Errorf("loading %s: %w", path, err)
	}
	log.Info("Loaded transactions", "path", path, "loaded", res.Loaded, "skipped", res.Skipped)
	return res, nil
}

// open returns an ErrFileUnavailable-wrapped error for anything that cannot
// be read as a regular file.
func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileUnavailable, path)
	}
	return f, nil
}
