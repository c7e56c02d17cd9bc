package ledger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxtracker/taxtracker/internal/model"
	"github.com/taxtracker/taxtracker/internal/store"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func quietOpts(strict bool) Options {
	var buf bytes.Buffer
	return Options{Strict: strict, Logger: slog.New(slog.NewTextHandler(&buf, nil))}
}

func writeFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestLoadFile_SkipsMalformedLine(t *testing.T) {
	path := writeFile(t, "Rent,-900", "malformed-line-no-comma", "Bonus,500")
	s := store.New()

	res, err := LoadFile(path, s, quietOpts(false))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Loaded)
	assert.Equal(t, 1, res.Skipped)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Rent", all[0].Description)
	assert.True(t, all[0].Amount.Equal(dec("-900")))
	assert.Equal(t, "Bonus", all[1].Description)
	assert.True(t, all[1].Amount.Equal(dec("500")))
}

func TestLoadFile_Missing(t *testing.T) {
	s := store.New()
	res, err := LoadFile(filepath.Join(t.TempDir(), "nonexistent.txt"), s, quietOpts(false))
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Equal(t, 0, s.Len())
}

func TestLoadFile_Directory(t *testing.T) {
	s := store.New()
	res, err := LoadFile(t.TempDir(), s, quietOpts(false))
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Equal(t, 0, s.Len())
}

func TestOpen_WrapsUnavailable(t *testing.T) {
	_, err := open(filepath.Join(t.TempDir(), "nonexistent.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_TrimsFields(t *testing.T) {
	s := store.New()
	res, err := Load(strings.NewReader("  Coffee  ,  -4.50  \r\nSalary,2000.00\n"), s, quietOpts(false))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Loaded)

	all := s.All()
	assert.Equal(t, "Coffee", all[0].Description)
	assert.True(t, all[0].Amount.Equal(dec("-4.5")))
}

func TestLoad_SkipsWrongFieldCounts(t *testing.T) {
	input := strings.Join([]string{
		"",
		"no comma",
		"a,b,c",
		"Rent,-900,",
		",12",
		"Lunch,-12",
	}, "\n")
	s := store.New()
	res, err := Load(strings.NewReader(input), s, quietOpts(false))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Loaded)
	assert.Equal(t, 5, res.Skipped)
	assert.Equal(t, "Lunch", s.All()[0].Description)
}

func TestLoad_InvalidAmountSkipped(t *testing.T) {
	s := store.New()
	res, err := Load(strings.NewReader("Rent,-900\nGift,abc\nBonus,500\n"), s, quietOpts(false))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Loaded)
	assert.Equal(t, 1, res.Skipped)
}

func TestLoad_InvalidAmountStrict(t *testing.T) {
	s := store.New()
	_, err := Load(strings.NewReader("Rent,-900\nGift,abc\nBonus,500\n"), s, quietOpts(true))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, "Gift,abc", perr.Text)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	// Records before the bad line are kept; nothing after it is read.
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "Rent", s.All()[0].Description)
}

func TestLoadFile_StrictWrapsPath(t *testing.T) {
	path := writeFile(t, "Gift,abc")
	_, err := LoadFile(path, store.New(), quietOpts(true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
}

func TestRecords_StopsEarly(t *testing.T) {
	var got []string
	for rec, err := range Records(strings.NewReader("a,1\nb,2\nc,3\n"), quietOpts(false)) {
		require.NoError(t, err)
		got = append(got, rec.Description)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestLoad_LongLines(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	input := "Rent,-900\n" + long + ",5\n" + ",5" + long + "\nBonus,500\n"

	s := store.New()
	res, err := Load(strings.NewReader(input), s, quietOpts(false))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Loaded)
	assert.Equal(t, 1, res.Skipped)

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Rent", all[0].Description)
	assert.Equal(t, long, all[1].Description)
	assert.Equal(t, "Bonus", all[2].Description)
}

func TestLoad_NoTrailingNewline(t *testing.T) {
	s := store.New()
	res, err := Load(strings.NewReader("Rent,-900\nBonus,500"), s, quietOpts(false))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Loaded)
	assert.Equal(t, "Bonus", s.All()[1].Description)
}

func TestLoad_ExponentAmountSkipped(t *testing.T) {
	s := store.New()
	res, err := Load(strings.NewReader("Huge,1e30000000\nBonus,500\n"), s, quietOpts(false))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Loaded)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, "Bonus", s.All()[0].Description)
}

func TestUnmarshalRecord(t *testing.T) {
	got, err := UnmarshalRecord(" Books , -30.00 ")
	require.NoError(t, err)
	assert.Equal(t, "Books", got.Description)
	assert.True(t, got.Amount.Equal(dec("-30")))
}
