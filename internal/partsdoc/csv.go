package partsdoc

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"agrofleet/pkg/logger"
)

// Columns is the CSV header.
var Columns = []string{"archivo", "numero", "nombre", "descripcion", "codigo", "cantidad", "precio", "notas"}

// DefaultPattern matches the parts list documents.
const DefaultPattern = "ST*.md"

// Row renders it in Columns order.
func (it Item) Row() []string {
	num := ""
	if it.Number > 0 {
		num = strconv.Itoa(it.Number)
	}
	price := ""
	if it.Price.Valid {
		price = it.Price.Decimal.StringFixed(2)
	}
	return []string{
		it.File,
		num,
		it.Name,
		it.Description,
		it.Code,
		it.Quantity,
		price,
		strings.Join(it.Notes, "; "),
	}
}

// WriteCSV writes the header and one row per item.
func WriteCSV(w io.Writer, items []Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, it := range items {
		if err := cw.Write(it.Row()); err != nil {
			return fmt.Errorf("write %s item %q: %w", it.File, it.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseDir parses every file in dir matching pattern, in name order.
func ParseDir(ctx context.Context, dir, pattern string) ([]Item, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(paths)

	var all []Item
	for _, path := range paths {
		items, err := parseFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug(ctx, "parts document parsed", "file", filepath.Base(path), "items", len(items))
		all = append(all, items...)
	}
	return all, nil
}

func parseFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, filepath.Base(path))
}
