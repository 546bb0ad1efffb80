// Package export renders a run's results as an .xlsx workbook: one
// comprehensive sheet plus one sheet per rule.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/prip-bio/prip/internal/engine"
	"github.com/prip-bio/prip/internal/model"
)

const comprehensiveSheet = "Comprehensive"

// maxSheetName is the sheet name length Excel allows.
const maxSheetName = 31

var baseHeader = []string{"Residue 1", "Residue 1 id", "Residue 2", "Residue 2 id", "Distance"}

// WriteWorkbook writes the result set to an .xlsx file. The comprehensive
// sheet lists every match with one marker column per rule; each rule then
// gets its own sheet with the matches attributed to it.
func WriteWorkbook(path string, rs *engine.ResultSet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", comprehensiveSheet); err != nil {
		return fmt.Errorf("failed to create comprehensive sheet: %w", err)
	}
	if err := writeComprehensive(f, rs); err != nil {
		return err
	}

	names := sheetNames(rs.Snapshot.Rules)
	for pos, rule := range rs.Snapshot.Rules {
		if _, err := f.NewSheet(names[pos]); err != nil {
			return fmt.Errorf("failed to create sheet for rule %q: %w", rule.Name, err)
		}
		if err := writeMatches(f, names[pos], rs.RuleMatches(pos)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeComprehensive(f *excelize.File, rs *engine.ResultSet) error {
	header := append([]string{}, baseHeader...)
	for _, rule := range rs.Snapshot.Rules {
		header = append(header, rule.Name)
	}
	if err := writeRow(f, comprehensiveSheet, 1, toCells(header)); err != nil {
		return err
	}

	for i, match := range rs.All {
		cells := matchCells(match)
		for pos := range rs.Snapshot.Rules {
			if match.SatisfiesRule(pos) {
				cells = append(cells, "X")
			} else {
				cells = append(cells, nil)
			}
		}
		if err := writeRow(f, comprehensiveSheet, i+2, cells); err != nil {
			return err
		}
	}

	return freezeHeader(f, comprehensiveSheet)
}

func writeMatches(f *excelize.File, sheet string, matches []model.Match) error {
	if err := writeRow(f, sheet, 1, toCells(baseHeader)); err != nil {
		return err
	}
	for i, match := range matches {
		if err := writeRow(f, sheet, i+2, matchCells(match)); err != nil {
			return err
		}
	}
	return freezeHeader(f, sheet)
}

func matchCells(match model.Match) []any {
	return []any{
		match.ResidueA.Type,
		match.ResidueA.SeqNum,
		match.ResidueB.Type,
		match.ResidueB.SeqNum,
		match.Distance,
	}
}

func toCells(header []string) []any {
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	return cells
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("bad cell coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func freezeHeader(f *excelize.File, sheet string) error {
	err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return fmt.Errorf("failed to freeze header of %s: %w", sheet, err)
	}
	return nil
}

// sheetNames maps each rule position to a legal, unique sheet name: rule
// names truncated to Excel's limit, stripped of forbidden characters, and
// suffixed on collision (including with the comprehensive sheet).
func sheetNames(ruleSet []model.Rule) []string {
	used := map[string]bool{strings.ToLower(comprehensiveSheet): true}
	names := make([]string, len(ruleSet))

	for pos, rule := range ruleSet {
		base := sanitizeSheetName(rule.Name)
		if base == "" {
			base = fmt.Sprintf("Rule %d", pos+1)
		}

		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			name = truncate(base, maxSheetName-len(suffix)) + suffix
		}

		used[strings.ToLower(name)] = true
		names[pos] = name
	}
	return names
}

func sanitizeSheetName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, name)
	return truncate(strings.TrimSpace(cleaned), maxSheetName)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}
