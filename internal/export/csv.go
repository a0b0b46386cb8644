package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/sadopc/wristtrack/internal/catalog"
	"github.com/sadopc/wristtrack/internal/store"
)

var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// ToCSV writes one row per record, oldest date first.
func ToCSV(records store.Records, cat *catalog.Catalog, path string) (err error) {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv file: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)

	// Header
	if err := w.Write([]string{"Date", "Item ID", "Item", "Short"}); err != nil {
		return err
	}

	for _, d := range records.Keys() {
		id := records[d]
		name, short := itemLabels(cat, id)
		if err := w.Write([]string{d.String(), id, name, short}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func itemLabels(cat *catalog.Catalog, id string) (name, short string) {
	if cat != nil {
		if it, ok := cat.Lookup(id); ok {
			return it.Name, it.Short
		}
	}
	return "Unknown", ""
}
