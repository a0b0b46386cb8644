package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sadopc/wristtrack/internal/catalog"
	"github.com/sadopc/wristtrack/internal/store"
)

type harness struct {
	env Env
	out *bytes.Buffer
	err *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	cat, err := catalog.New([]catalog.Item{
		{ID: "mido", Name: "Mido Baroncelli", Short: "Baroncelli"},
		{ID: "seiko", Name: "Seiko SSB479", Short: "SSB479"},
	})
	require.NoError(t, err)

	h := &harness{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	h.env = Env{
		Store:   s,
		Catalog: cat,
		Out:     h.out,
		Err:     h.err,
		Now: func() time.Time {
			return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)
		},
	}
	return h
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.err.Reset()
	return Run(args, h.env)
}

func TestHelp(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, exitOK, h.run("help"))
	require.Contains(t, h.out.String(), "set DATE ITEM")
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, exitUsage, h.run("bogus"))
	require.Contains(t, h.err.String(), `unknown command "bogus"`)
}

func TestItems(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, exitOK, h.run("items"))
	require.Contains(t, h.out.String(), "mido")
	require.Contains(t, h.out.String(), "SSB479")
}

func TestSetAndClear(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, exitOK, h.run("set", "2024-03-01", "mido"))
	require.Equal(t, "mido", h.env.Store.LoadRecords()["2024-03-01"])

	// Short label, any case.
	require.Equal(t, exitOK, h.run("set", "2024-03-01", "ssb479"))
	require.Equal(t, "seiko", h.env.Store.LoadRecords()["2024-03-01"])

	require.Equal(t, exitOK, h.run("clear", "2024-03-01"))
	_, ok := h.env.Store.LoadRecords()["2024-03-01"]
	require.False(t, ok)

	require.Equal(t, exitOK, h.run("clear", "2024-03-01"))
	require.Contains(t, h.out.String(), "no record")
}

func TestSetRelativeDates(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, exitOK, h.run("set", "today", "mido"))
	require.Equal(t, exitOK, h.run("set", "yesterday", "seiko"))

	r := h.env.Store.LoadRecords()
	require.Equal(t, "mido", r["2024-03-10"])
	require.Equal(t, "seiko", r["2024-03-09"])
}

func TestSetBadDate(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, exitUsage, h.run("set", "2024-3-1", "mido"))
	require.Contains(t, h.err.String(), "usage: wristtrack set DATE ITEM")
}

func TestSetUnknownItemSuggests(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, exitError, h.run("set", "2024-03-01", "seikoo"))
	require.Contains(t, h.err.String(), `did you mean "seiko"`)
	require.Empty(t, h.env.Store.LoadRecords())
}

func TestSetWrongArgCount(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, exitUsage, h.run("set", "2024-03-01"))
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.env.Store.SaveRecords(store.Records{
		"2024-03-01": "mido",
		"2024-03-02": "ghost",
		"2024-04-01": "seiko",
	}))

	require.Equal(t, exitOK, h.run("show"))
	out := h.out.String()
	require.Contains(t, out, "March 2024: 2 day(s) recorded")
	require.Contains(t, out, "Mido Baroncelli")
	require.Contains(t, out, "(no record)")
	require.NotContains(t, out, "Seiko")

	require.Equal(t, exitOK, h.run("show", "-month", "2024-04"))
	require.Contains(t, h.out.String(), "Seiko SSB479")

	require.Equal(t, exitUsage, h.run("show", "-month", "april"))
}

func TestStats(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.env.Store.SaveRecords(store.Records{
		"2024-03-01": "mido",
		"2024-03-02": "seiko",
		"2024-03-03": "mido",
		"2024-01-01": "ghost",
	}))

	require.Equal(t, exitOK, h.run("stats"))
	out := h.out.String()
	require.Contains(t, out, "March 2024: 3 day(s) recorded")
	require.Contains(t, out, "66.7")
	require.Contains(t, out, "33.3")
	require.Contains(t, out, "2024: 3 day(s) recorded")

	require.Equal(t, exitUsage, h.run("stats", "-month", "13"))
	require.Equal(t, exitUsage, h.run("stats", "-nope"))
}

func TestExportAndImport(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.env.Store.SaveRecords(store.Records{"2024-03-01": "mido"}))

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out.csv")
	require.Equal(t, exitOK, h.run("export", "csv", csvPath))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "Date,Item ID,Item,Short"))

	require.Equal(t, exitOK, h.run("export", "json", filepath.Join(dir, "out.json")))
	require.Equal(t, exitUsage, h.run("export", "xml", filepath.Join(dir, "out.xml")))

	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"2024-03-01":"seiko","2024-03-05":"ghost"}`), 0o644))
	require.Equal(t, exitOK, h.run("import", in))
	require.Contains(t, h.out.String(), "imported 2 record(s), 1 with an item not in the catalog")

	r := h.env.Store.LoadRecords()
	require.Equal(t, "seiko", r["2024-03-01"])
	require.Equal(t, "ghost", r["2024-03-05"])
}

func TestImportBadFile(t *testing.T) {
	h := newHarness(t)
	in := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(in, []byte(`[1,2]`), 0o644))
	require.Equal(t, exitError, h.run("import", in))
}

func TestPrune(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, exitOK, h.run("prune"))
	require.Contains(t, h.out.String(), "nothing to prune")

	require.NoError(t, h.env.Store.SaveRecords(store.Records{
		"2024-03-01": "mido",
		"2024-03-02": "ghost",
	}))
	require.Equal(t, exitOK, h.run("prune"))
	require.Contains(t, h.out.String(), "removed 1 record(s)")
	require.Len(t, h.env.Store.LoadRecords(), 1)
}

func TestResolveItem(t *testing.T) {
	cat, err := catalog.New([]catalog.Item{
		{ID: "tagheuer-monaco-gulf", Name: "TAG Heuer Monaco Gulf", Short: "Monaco"},
		{ID: "militado-ml10", Name: "Militado ML10", Short: "ML10"},
	})
	require.NoError(t, err)

	it, err := resolveItem(cat, "monaco")
	require.NoError(t, err)
	require.Equal(t, "tagheuer-monaco-gulf", it.ID)

	it, err = resolveItem(cat, "Militado ML10")
	require.NoError(t, err)
	require.Equal(t, "militado-ml10", it.ID)

	_, err = resolveItem(cat, "ml11")
	require.ErrorContains(t, err, `did you mean "militado-ml10"`)
}
