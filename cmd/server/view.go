package main

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/quietgrid/floorscan/internal/inventory"
	"github.com/quietgrid/floorscan/internal/web/views"
)

func reportPage(path string, report *inventory.Report) templ.Component {
	view := views.ReportView{
		Path:      path,
		TotalLine: report.FormatCounts(report.Total),
	}
	for _, name := range report.RoomNames() {
		view.Rooms = append(view.Rooms, views.RoomRow{
			Name:   name,
			Counts: report.FormatCounts(report.Rooms[name]),
		})
	}
	for _, issue := range report.Issues {
		text := fmt.Sprintf("%s: region at rows %d-%d, cols %d-%d",
			issue.Code, issue.Bounds.MinRow, issue.Bounds.MaxRow, issue.Bounds.MinCol, issue.Bounds.MaxCol)
		if len(issue.Labels) > 0 {
			text = fmt.Sprintf("%s, labels %v", text, issue.Labels)
		}
		view.Issues = append(view.Issues, text)
	}
	return views.ReportPage(view)
}
