package documents

import (
	"strconv"

	"github.com/yigit/schooldesk/internal/app/grading"
	"github.com/yigit/schooldesk/internal/app/models"
)

const defaultSchoolName = "School Name"

func formatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatPercentage prints two decimals, or a bare 0 when nothing can be scored
func formatPercentage(s grading.Summary) string {
	if s.TotalMax == 0 {
		return "0"
	}
	return strconv.FormatFloat(s.Percentage, 'f', 2, 64)
}

// Marksheet renders an exam result with its totals, percentage and grade
func (r *Renderer) Marksheet(res models.Result) Document {
	summary := grading.Summarize(res.Subjects)

	doc := page(models.KindMarksheet, "Result Marksheet", MarksheetFileName(res))
	doc.Padding = MarksheetPad
	doc.Border = MarksheetBorder

	rows := make([][]string, 0, len(res.Subjects))
	for _, s := range res.Subjects {
		rows = append(rows, []string{s.SubjectName, formatMarks(s.MarksObtained), formatMarks(s.MaxMarks)})
	}

	title := heading(4, "Result Marksheet")
	title.MarginEnd = 24

	// the form's school name sits under the shared header
	school := heading(2, orDefault(res.SchoolName, defaultSchoolName))
	school.MarginEnd = 10

	doc.Blocks = append(r.header(), school)
	doc.Blocks = append(doc.Blocks,
		title,
		paragraph(bold("Name:"), plain(" "+res.Name)),
		paragraph(bold("Class:"), plain(" "+res.ClassName)),
		paragraph(bold("Roll No:"), plain(" "+res.RollNo)),
		Block{Kind: BlockTable, MarginTop: 16, MarginEnd: 16, Table: &Table{
			Header: []string{"Subject", "Marks Obtained", "Max Marks"},
			Rows:   rows,
			Total:  []string{"Total", formatMarks(summary.TotalObtained), formatMarks(summary.TotalMax)},
		}},
		paragraph(bold("Percentage:"), plain(" "+formatPercentage(summary)+"%")),
		paragraph(bold("Grade:"), plain(" "+summary.Grade)),
	)
	return doc
}
