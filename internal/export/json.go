package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/wristtrack/internal/catalog"
	"github.com/sadopc/wristtrack/internal/store"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Records    []jsonRecord `json:"records"`
}

type jsonRecord struct {
	Date   string `json:"date"`
	ItemID string `json:"item_id"`
	Item   string `json:"item"`
	Short  string `json:"short,omitempty"`
}

func ToJSON(records store.Records, cat *catalog.Catalog, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
		Records:    []jsonRecord{},
	}

	for _, d := range records.Keys() {
		id := records[d]
		name, short := itemLabels(cat, id)
		export.Records = append(export.Records, jsonRecord{
			Date:   d.String(),
			ItemID: id,
			Item:   name,
			Short:  short,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// ReadRecords reads a bare JSON object of date -> item id, the payload shape
// stored under the records key.
func ReadRecords(path string) (store.Records, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return store.DecodeRecords(data)
}
