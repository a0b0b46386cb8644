// Package cli implements the non-interactive subcommands. They share the
// store, catalog and aggregation code with the TUI.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sadopc/wristtrack/internal/catalog"
	"github.com/sadopc/wristtrack/internal/export"
	"github.com/sadopc/wristtrack/internal/log"
	"github.com/sadopc/wristtrack/internal/stats"
	"github.com/sadopc/wristtrack/internal/store"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Env carries the dependencies a command runs against.
type Env struct {
	Store   *store.Store
	Catalog *catalog.Catalog
	Log     *log.Logger
	Out     io.Writer
	Err     io.Writer
	Now     func() time.Time
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

type command struct {
	usage string
	run   func(env Env, args []string) error
}

var commands = map[string]command{
	"items":  {"items", runItems},
	"show":   {"show [-month YYYY-MM]", runShow},
	"set":    {"set DATE ITEM", runSet},
	"clear":  {"clear DATE", runClear},
	"stats":  {"stats [-year YYYY] [-month M]", runStats},
	"export": {"export csv|json PATH", runExport},
	"import": {"import PATH", runImport},
	"prune":  {"prune", runPrune},
}

// Run executes args[0] with the remaining arguments and returns an exit code.
func Run(args []string, env Env) int {
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.Log == nil {
		env.Log = log.Discard()
	}
	env.Log = env.Log.WithComponent("cli")

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(env.Out)
		return exitOK
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(env.Err, "unknown command %q\n\n", args[0])
		printUsage(env.Err)
		return exitUsage
	}

	err := cmd.run(env, args[1:])
	var ue usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ue):
		fmt.Fprintf(env.Err, "error: %v\nusage: wristtrack %s\n", err, cmd.usage)
		return exitUsage
	case errors.Is(err, flag.ErrHelp):
		return exitUsage
	default:
		env.Log.Error("command failed", "command", args[0], "error", err)
		fmt.Fprintf(env.Err, "error: %v\n", err)
		return exitError
	}
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: wristtrack [command]")
	fmt.Fprintln(w, "\nWith no command the interactive calendar starts.")
	fmt.Fprintln(w, "\ncommands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(w, "\nDATE is YYYY-MM-DD, today or yesterday.")
}

func newFlagSet(name string, env Env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Err)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return usagef("%v", err)
}

// ============================================================
// Commands
// ============================================================

func runItems(env Env, args []string) error {
	if len(args) != 0 {
		return usagef("items takes no arguments")
	}
	t := newTable("ID", "Short", "Name")
	for _, it := range env.Catalog.Items() {
		t.Row(it.ID, it.Short, it.Name)
	}
	fmt.Fprintln(env.Out, t.Render())
	return nil
}

func runShow(env Env, args []string) error {
	fs := newFlagSet("show", env)
	month := fs.String("month", "", "month to list as YYYY-MM (default: current month)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	now := env.Now()
	year, mon := now.Year(), now.Month()
	if *month != "" {
		t, err := time.Parse("2006-01", *month)
		if err != nil {
			return usagef("invalid -month %q: want YYYY-MM", *month)
		}
		year, mon = t.Year(), t.Month()
	}

	records := env.Store.LoadRecords()
	t := newTable("Date", "Item")
	n := 0
	for _, d := range records.Keys() {
		dt, ok := d.Time()
		if !ok || dt.Year() != year || dt.Month() != mon {
			continue
		}
		label := "(no record)"
		if it, ok := env.Catalog.Lookup(records[d]); ok {
			label = it.Name
		}
		t.Row(d.String(), label)
		n++
	}
	fmt.Fprintf(env.Out, "%s %d: %d day(s) recorded\n", mon, year, n)
	if n > 0 {
		fmt.Fprintln(env.Out, t.Render())
	}
	return nil
}

func runSet(env Env, args []string) error {
	if len(args) != 2 {
		return usagef("set needs a date and an item")
	}
	d, err := resolveDate(args[0], env.Now())
	if err != nil {
		return usagef("%v", err)
	}
	it, err := resolveItem(env.Catalog, args[1])
	if err != nil {
		return err
	}
	records := store.Set(d, it.ID, env.Store.LoadRecords())
	if err := env.Store.SaveRecords(records); err != nil {
		return err
	}
	env.Log.Info("record set", "date", d, "item", it.ID)
	fmt.Fprintf(env.Out, "%s: %s\n", d, it.Name)
	return nil
}

func runClear(env Env, args []string) error {
	if len(args) != 1 {
		return usagef("clear needs a date")
	}
	d, err := resolveDate(args[0], env.Now())
	if err != nil {
		return usagef("%v", err)
	}
	records := env.Store.LoadRecords()
	if _, ok := records.Get(d); !ok {
		fmt.Fprintf(env.Out, "%s: no record\n", d)
		return nil
	}
	if err := env.Store.SaveRecords(store.Delete(d, records)); err != nil {
		return err
	}
	env.Log.Info("record cleared", "date", d)
	fmt.Fprintf(env.Out, "%s: cleared\n", d)
	return nil
}

func runStats(env Env, args []string) error {
	now := env.Now()
	fs := newFlagSet("stats", env)
	year := fs.Int("year", now.Year(), "year")
	month := fs.Int("month", int(now.Month()), "month 1-12")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *month < 1 || *month > 12 {
		return usagef("invalid -month %d: want 1-12", *month)
	}

	records := env.Store.LoadRecords()
	monthly := stats.Monthly(records, env.Catalog, *year, time.Month(*month))
	yearly := stats.Yearly(records, env.Catalog, *year)

	writeStats(env.Out, monthly, env.Catalog)
	fmt.Fprintln(env.Out)
	writeStats(env.Out, yearly, env.Catalog)
	return nil
}

func writeStats(w io.Writer, ps stats.PeriodStats, cat *catalog.Catalog) {
	fmt.Fprintf(w, "%s: %d day(s) recorded\n", ps.Period, ps.Total)
	t := newTable("Item", "Count", "Ratio(%)")
	for _, row := range ps.Rows(cat) {
		t.Row(row.Item.Name, strconv.Itoa(row.Count), fmt.Sprintf("%.1f", row.Ratio))
	}
	fmt.Fprintln(w, t.Render())
}

func runExport(env Env, args []string) error {
	if len(args) != 2 {
		return usagef("export needs a format and a path")
	}
	path, err := filepath.Abs(args[1])
	if err != nil {
		return err
	}
	records := env.Store.LoadRecords()
	switch strings.ToLower(args[0]) {
	case "csv":
		err = export.ToCSV(records, env.Catalog, path)
	case "json":
		err = export.ToJSON(records, env.Catalog, path)
	default:
		return usagef("unknown export format %q", args[0])
	}
	if err != nil {
		return err
	}
	env.Log.Info("exported", "path", path, "count", len(records))
	fmt.Fprintf(env.Out, "exported %d record(s) to %s\n", len(records), path)
	return nil
}

func runImport(env Env, args []string) error {
	if len(args) != 1 {
		return usagef("import needs a path")
	}
	incoming, err := export.ReadRecords(args[0])
	if err != nil {
		return err
	}
	unknown := 0
	for _, id := range incoming {
		if !env.Catalog.Contains(id) {
			unknown++
		}
	}
	merged := store.Merge(env.Store.LoadRecords(), incoming)
	if err := env.Store.SaveRecords(merged); err != nil {
		return err
	}
	env.Log.Info("imported", "path", args[0], "count", len(incoming), "unknown", unknown)
	fmt.Fprintf(env.Out, "imported %d record(s)", len(incoming))
	if unknown > 0 {
		fmt.Fprintf(env.Out, ", %d with an item not in the catalog", unknown)
	}
	fmt.Fprintln(env.Out)
	return nil
}

func runPrune(env Env, args []string) error {
	if len(args) != 0 {
		return usagef("prune takes no arguments")
	}
	pruned, removed := store.Prune(env.Store.LoadRecords(), env.Catalog)
	if removed == 0 {
		fmt.Fprintln(env.Out, "nothing to prune")
		return nil
	}
	if err := env.Store.SaveRecords(pruned); err != nil {
		return err
	}
	env.Log.Info("pruned orphaned records", "removed", removed)
	fmt.Fprintf(env.Out, "removed %d record(s) with an unknown item\n", removed)
	return nil
}

// ============================================================
// Argument resolution
// ============================================================

func resolveDate(s string, now time.Time) (store.DateKey, error) {
	switch strings.ToLower(s) {
	case "today":
		return store.DateKeyOf(now), nil
	case "yesterday":
		return store.DateKeyOf(now.AddDate(0, 0, -1)), nil
	}
	return store.ParseDateKey(s)
}

// resolveItem matches q against ids, short labels and names, ignoring case.
// On a miss the error names the closest candidate.
func resolveItem(cat *catalog.Catalog, q string) (catalog.Item, error) {
	if it, ok := cat.Lookup(q); ok {
		return it, nil
	}
	needle := strings.ToLower(strings.TrimSpace(q))
	for _, it := range cat.Items() {
		if needle == strings.ToLower(it.ID) ||
			needle == strings.ToLower(it.Short) ||
			needle == strings.ToLower(it.Name) {
			return it, nil
		}
	}

	best, bestDist := catalog.Item{}, -1
	for _, it := range cat.Items() {
		for _, cand := range []string{it.ID, it.Short, it.Name} {
			d := levenshtein.ComputeDistance(needle, strings.ToLower(cand))
			if bestDist < 0 || d < bestDist {
				best, bestDist = it, d
			}
		}
	}
	return catalog.Item{}, fmt.Errorf("unknown item %q (did you mean %q?)", q, best.ID)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}
