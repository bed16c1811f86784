// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/mvtecad/pkg/mvtecad"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

// newPlainTable with the alignment of each column. Columns without alignment are aligned left.
func newPlainTable(withHeader bool, alignments ...lipgloss.Position) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == lgtable.HeaderRow {
				s = headerRowStyle
				return
			}
			switch {
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			if col < len(alignments) {
				s = s.Align(alignments[col])
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

// Summary prints the number of samples per category, and per category and label.
func Summary(indices []*mvtecad.CategoryIndex) {
	fmt.Println(titleStyle.Render("Categories"))
	table := newPlainTable(true, lipgloss.Left, lipgloss.Left, lipgloss.Right, lipgloss.Right, lipgloss.Right)
	table.Headers("Category", "Split", "# labels", "# good", "# defects")
	var totalGood, totalDefects int
	for _, idx := range indices {
		counts := idx.Counts()
		numGood := counts[0].Count
		numDefects := idx.Len() - numGood
		totalGood += numGood
		totalDefects += numDefects
		table.Row(idx.Category(), idx.Split().String(),
			humanize.Comma(int64(len(counts))),
			humanize.Comma(int64(numGood)),
			humanize.Comma(int64(numDefects)))
	}
	if len(indices) > 1 {
		table.Row("total", "", "", humanize.Comma(int64(totalGood)), humanize.Comma(int64(totalDefects)))
	}
	fmt.Println(table.Render())

	fmt.Println(titleStyle.Render("Labels"))
	table = newPlainTable(true, lipgloss.Left, lipgloss.Right, lipgloss.Left, lipgloss.Right)
	table.Headers("Category", "Index", "Label", "# samples")
	for _, idx := range indices {
		for _, count := range idx.Counts() {
			table.Row(idx.Category(), fmt.Sprintf("%d", count.Index), count.Label, humanize.Comma(int64(count.Count)))
		}
	}
	fmt.Println(table.Render())
}

// problemsTable prints the problems found by Verify.
func problemsTable(category string, problems []mvtecad.Problem) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Problems in %q", category)))
	table := newPlainTable(true, lipgloss.Right, lipgloss.Left, lipgloss.Left)
	table.Headers("#", "Image", "Error")
	for _, p := range problems {
		table.Row(fmt.Sprintf("%d", p.Index), p.Sample.ImagePath, p.Err.Error())
	}
	fmt.Println(table.Render())
}
