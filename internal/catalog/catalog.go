// Package catalog holds the fixed list of items a day can be assigned to.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Item is one selectable entry. ID is persisted and must never change.
type Item struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	Short string `mapstructure:"short"`
}

// Catalog is an ordered, immutable set of items.
type Catalog struct {
	items []Item
	index map[string]int
}

var defaultItems = []Item{
	{ID: "mido-baroncelli-heritage", Name: "Mido Baroncelli Heritage", Short: "Baroncelli"},
	{ID: "gshock-gw-m5610u-1", Name: "G-Shock GW-M5610U-1", Short: "5610"},
	{ID: "hamilton-khaki-navy-scuba", Name: "Hamilton Khaki Navy Scuba", Short: "Scuba"},
	{ID: "militado-ml10", Name: "Militado ML10", Short: "ML10"},
	{ID: "hamilton-khaki-field-expedition", Name: "Hamilton Khaki Field Expedition", Short: "Expedition"},
	{ID: "seiko-ssb479", Name: "Seiko SSB479", Short: "SSB479"},
	{ID: "tagheuer-monaco-gulf", Name: "TAG Heuer Monaco Gulf", Short: "Monaco"},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultItems)
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a catalog from items, keeping their order. IDs must be
// non-empty and unique.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, errors.New("catalog is empty")
	}
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		if it.ID == "" {
			return nil, fmt.Errorf("catalog item %d: id is required", i)
		}
		if _, dup := c.index[it.ID]; dup {
			return nil, fmt.Errorf("catalog item %d: duplicate id %q", i, it.ID)
		}
		if it.Name == "" {
			it.Name = it.ID
		}
		if it.Short == "" {
			it.Short = it.Name
		}
		c.index[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Len() int { return len(c.items) }

// At returns the item at position i in catalog order.
func (c *Catalog) At(i int) Item { return c.items[i] }

// Lookup returns the item with the given id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Contains reports whether id belongs to the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// IndexOf returns the position of id, or -1.
func (c *Catalog) IndexOf(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}
