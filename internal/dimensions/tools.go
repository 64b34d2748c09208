// Package dimensions builds the deduplicated dimension tables of the star
// schema from raw source events. Builders are pure over their input:
// identical events produce identical rows apart from CreatedAt.
package dimensions

import (
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"starmart/internal/schema"
	"starmart/internal/source"
)

// toolMetadata carries the dashboard attributes curated for known tools.
type toolMetadata struct {
	icon string
	sort int
	desc string
}

var knownTools = map[string]toolMetadata{
	"merge":        {icon: "merge", sort: 1, desc: "Combine multiple PDF files into one"},
	"nup":          {icon: "grid", sort: 2, desc: "Multiple pages per sheet layout"},
	"compressor":   {icon: "compress", sort: 3, desc: "Reduce PDF file size"},
	"split":        {icon: "split", sort: 4, desc: "Split PDF into separate pages"},
	"homepage":     {icon: "home", sort: 99, desc: "Main website landing page"},
	"pdf_bw":       {icon: "palette", sort: 5, desc: "Convert PDF to black and white"},
	"page_remover": {icon: "delete", sort: 6, desc: "Remove specific pages from PDF"},
}

var titleCaser = cases.Title(language.English)

// BuildTools produces one dim_tools row per distinct tool name seen in the
// events; the first category observed for a name wins. Tools without curated
// metadata get generic defaults so an unmapped tool still renders on the
// dashboard.
func BuildTools(events []source.RawEvent, logger *slog.Logger) []schema.DimTool {
	now := time.Now().UTC()
	seen := make(map[string]bool)
	var rows []schema.DimTool

	for _, event := range events {
		if event.ToolName == nil {
			continue
		}
		name := *event.ToolName
		if seen[name] {
			continue
		}
		seen[name] = true

		category := ""
		if event.ToolCategory != nil {
			category = *event.ToolCategory
		}

		meta, ok := knownTools[name]
		if !ok {
			meta = toolMetadata{icon: "tool", sort: 50, desc: name + " tool"}
		}

		rows = append(rows, schema.DimTool{
			ToolKey:         schema.ToolKey{Name: name}.String(),
			ToolName:        name,
			ToolCategory:    category,
			ToolDisplayName: titleCaser.String(strings.ReplaceAll(name, "_", " ")),
			ToolDescription: meta.desc,
			IsActive:        true,
			IconName:        meta.icon,
			SortOrder:       meta.sort,
			CreatedAt:       now,
		})
	}

	logger.Info("Built tools dimension", slog.Int("rows", len(rows)))
	return rows
}
