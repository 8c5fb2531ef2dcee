package diffmatchpatch

import (
	"html"
	"strings"
)

// DiffPrettyHtml converts a []Diff into an HTML fragment. Inserted text is
// wrapped in <ins>, deleted text in <del> and copied text is emitted as is.
// All text is escaped.
func (dmp *DiffMatchPatch) DiffPrettyHtml(diffs []Diff) string {
	var buff strings.Builder
	for _, diff := range diffs {
		text := html.EscapeString(diff.Text)
		switch diff.Type {
		case DiffInsert:
			_, _ = buff.WriteString("<ins>")
			_, _ = buff.WriteString(text)
			_, _ = buff.WriteString("</ins>")
		case DiffDelete:
			_, _ = buff.WriteString("<del>")
			_, _ = buff.WriteString(text)
			_, _ = buff.WriteString("</del>")
		case DiffCopy:
			_, _ = buff.WriteString(text)
		}
	}
	return buff.String()
}

// DiffPrettyText converts a []Diff into a colored text report.
func (dmp *DiffMatchPatch) DiffPrettyText(diffs []Diff) string {
	var buff strings.Builder
	for _, diff := range diffs {
		switch diff.Type {
		case DiffInsert:
			_, _ = buff.WriteString("\x1b[32m")
			_, _ = buff.WriteString(diff.Text)
			_, _ = buff.WriteString("\x1b[0m")
		case DiffDelete:
			_, _ = buff.WriteString("\x1b[31m")
			_, _ = buff.WriteString(diff.Text)
			_, _ = buff.WriteString("\x1b[0m")
		case DiffCopy:
			_, _ = buff.WriteString(diff.Text)
		}
	}

	return buff.String()
}
