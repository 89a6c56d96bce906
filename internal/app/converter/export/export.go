// Package export turns local backup files into a workbook for manual import.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tealeg/xlsx"

	"transcript-sheets/internal/app/persistence"
)

// LoadBackups reads every backup JSON file in dir, oldest first.
// Files that do not parse are returned as skipped names.
func LoadBackups(dir string) ([]persistence.Backup, []string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var backups []persistence.Backup
	var skipped []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			skipped = append(skipped, filepath.Base(path))
			continue
		}
		var b persistence.Backup
		if err := json.Unmarshal(data, &b); err != nil || b.Kind == "" {
			skipped = append(skipped, filepath.Base(path))
			continue
		}
		backups = append(backups, b)
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].Timestamp.Before(backups[j].Timestamp)
	})
	return backups, skipped, nil
}

// ToExcel writes one worksheet per backup kind, each starting with the
// header of its first backup. It returns the number of rows written per kind.
func ToExcel(backups []persistence.Backup, outputFilePath string) (map[string]int, error) {
	file := xlsx.NewFile()
	sheets := make(map[string]*xlsx.Sheet)
	counts := make(map[string]int)

	for _, b := range backups {
		sheet, ok := sheets[b.Kind]
		if !ok {
			var err error
			sheet, err = file.AddSheet(sheetName(b.Kind))
			if err != nil {
				return nil, fmt.Errorf("failed to add sheet for %s: %w", b.Kind, err)
			}
			sheets[b.Kind] = sheet

			headerRow := sheet.AddRow()
			for _, h := range b.Header {
				headerRow.AddCell().Value = h
			}
		}

		row := sheet.AddRow()
		for _, v := range b.Row {
			row.AddCell().Value = fmt.Sprint(v)
		}
		counts[b.Kind]++
	}

	if len(sheets) == 0 {
		if _, err := file.AddSheet("Empty"); err != nil {
			return nil, err
		}
	}

	if err := file.Save(outputFilePath); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}
	return counts, nil
}

// sheet names are limited to 31 characters
func sheetName(kind string) string {
	if kind == "" {
		return "Unknown"
	}
	name := strings.ToUpper(kind[:1]) + kind[1:]
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
