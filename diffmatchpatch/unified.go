package diffmatchpatch

import (
	"fmt"
	"strings"
)

// DefaultContextLines is the number of unchanged lines of surrounding
// context displayed by Unified.
const DefaultContextLines = 3

// Unified computes the line differences between text1 and text2 and formats
// them in the "unified diff" format. An empty string means no changes.
func (dmp *DiffMatchPatch) Unified(text1, text2 string, opts ...UnifiedOption) string {
	return dmp.DiffUnified(dmp.DiffLines(text1, text2), opts...)
}

// DiffUnified formats diffs in the "unified diff" format. The diffs may be of
// any granularity; they are realigned on line boundaries first.
func (dmp *DiffMatchPatch) DiffUnified(diffs []Diff, opts ...UnifiedOption) string {
	options := unifiedOptions{
		contextLines: DefaultContextLines,
		label1:       "text1",
		label2:       "text2",
	}
	for _, o := range opts {
		o(&options)
	}

	hunks := collectHunks(splitLinewise(diffs), options.contextLines)
	if len(hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n", options.label1)
	fmt.Fprintf(&b, "+++ %s\n", options.label2)
	for _, h := range hunks {
		h.writeTo(&b)
	}
	return b.String()
}

// UnifiedOption is an option for Unified and DiffUnified.
type UnifiedOption func(*unifiedOptions)

type unifiedOptions struct {
	contextLines   int
	label1, label2 string
}

// UnifiedContextLines sets the number of unchanged lines of surrounding context
// printed. Defaults to DefaultContextLines.
func UnifiedContextLines(lines int) UnifiedOption {
	if lines <= 0 {
		lines = DefaultContextLines
	}
	return func(o *unifiedOptions) {
		o.contextLines = lines
	}
}

// UnifiedLabels sets the labels for the old and new files. Defaults to "text1" and "text2".
func UnifiedLabels(oldLabel, newLabel string) UnifiedOption {
	return func(o *unifiedOptions) {
		o.label1 = oldLabel
		o.label2 = newLabel
	}
}

// hunk is a list of nearby changes, separated by at most 2*contextLines lines.
type hunk struct {
	fromLine, toLine int
	// Each Diff is one deleted, inserted or copied line.
	lines []Diff
}

func (h *hunk) writeTo(b *strings.Builder) {
	n1, n2 := 0, 0
	for _, line := range h.lines {
		if line.Type != DiffInsert {
			n1++
		}
		if line.Type != DiffDelete {
			n2++
		}
	}

	b.WriteString("@@")
	writeRange(b, "-", h.fromLine, n1)
	writeRange(b, "+", h.toLine, n2)
	b.WriteString(" @@\n")

	for _, line := range h.lines {
		switch line.Type {
		case DiffDelete:
			b.WriteString("-")
		case DiffInsert:
			b.WriteString("+")
		default:
			b.WriteString(" ")
		}
		b.WriteString(line.Text)
		if !strings.HasSuffix(line.Text, "\n") {
			b.WriteString("\n\\ No newline at end of file\n")
		}
	}
}

func writeRange(b *strings.Builder, sign string, start, n int) {
	switch {
	case n > 1:
		fmt.Fprintf(b, " %s%d,%d", sign, start, n)
	case start == 1 && n == 0:
		// Mimic GNU diff -u behavior when adding to an empty file.
		fmt.Fprintf(b, " %s0,0", sign)
	default:
		fmt.Fprintf(b, " %s%d", sign, start)
	}
}

// collectHunks groups line diffs into hunks with up to context copied lines
// on either side. Changes separated by at most 2*context lines share a hunk.
func collectHunks(lines []Diff, context int) []hunk {
	var (
		hunks   []hunk
		cur     *hunk
		pending []Diff // copied lines since the last change
		line1   int
		line2   int
	)

	for _, line := range lines {
		if line.Type != DiffInsert {
			line1++
		}
		if line.Type != DiffDelete {
			line2++
		}
		if line.Type == DiffCopy {
			pending = append(pending, line)
			continue
		}

		if cur != nil && len(pending) > 2*context {
			cur.lines = append(cur.lines, pending[:min(len(pending), context)]...)
			hunks = append(hunks, *cur)
			cur = nil
		}

		if cur == nil {
			lead := min(len(pending), context)
			from, to := line1-lead, line2-lead
			// Only one of the counters has been advanced for this line.
			if line.Type == DiffDelete {
				to++
			} else {
				from++
			}
			cur = &hunk{fromLine: from, toLine: to}
			pending = pending[len(pending)-lead:]
		}

		cur.lines = append(cur.lines, pending...)
		cur.lines = append(cur.lines, line)
		pending = nil
	}

	if cur != nil {
		cur.lines = append(cur.lines, pending[:min(len(pending), context)]...)
		hunks = append(hunks, *cur)
	}
	return hunks
}

// splitLinewise turns diffs into one Diff per line, the final newline
// included. A line touched by any edit becomes a deleted line and an inserted
// line; deletions are ordered before insertions within each change.
func splitLinewise(diffs []Diff) []Diff {
	var (
		out          []Diff
		line1, line2 strings.Builder
	)

	flush := func(final bool) {
		l1, l2 := line1.String(), line2.String()
		done1 := l1 != "" && (final || strings.HasSuffix(l1, "\n"))
		done2 := l2 != "" && (final || strings.HasSuffix(l2, "\n"))
		if done1 && done2 && l1 == l2 {
			out = append(out, Diff{Type: DiffCopy, Text: l1})
			line1.Reset()
			line2.Reset()
			return
		}
		if done1 {
			out = append(out, Diff{Type: DiffDelete, Text: l1})
			line1.Reset()
		}
		if done2 {
			out = append(out, Diff{Type: DiffInsert, Text: l2})
			line2.Reset()
		}
	}

	for _, diff := range alignNewlines(diffs) {
		for _, segment := range strings.SplitAfter(diff.Text, "\n") {
			if diff.Type != DiffInsert {
				line1.WriteString(segment)
			}
			if diff.Type != DiffDelete {
				line2.WriteString(segment)
			}
			flush(false)
		}
	}
	// The texts may end without a newline.
	flush(true)

	return deletionsFirst(out)
}

// alignNewlines looks for single edits surrounded on both sides by copies
// which can be shifted sideways to align on newlines:
// ["=<equal>", "±<common\n><change>", "=<common\n><equal>"] becomes
// ["=<equal><common\n>", "±<change><common\n>", "=<equal>"].
func alignNewlines(diffs []Diff) []Diff {
	var out []Diff

	for i := 0; i < len(diffs); i++ {
		if i < len(diffs)-2 && diffs[i].Type == DiffCopy && diffs[i+1].Type != DiffCopy && diffs[i+2].Type == DiffCopy {
			if common := prefixThroughNewline(diffs[i+1].Text, diffs[i+2].Text); common != "" {
				out = append(out,
					Diff{Type: DiffCopy, Text: diffs[i].Text + common},
					Diff{Type: diffs[i+1].Type, Text: strings.TrimPrefix(diffs[i+1].Text, common) + common},
					Diff{Type: DiffCopy, Text: strings.TrimPrefix(diffs[i+2].Text, common)},
				)
				i += 2
				continue
			}
		}
		out = append(out, diffs[i])
	}
	return out
}

// prefixThroughNewline returns the longest common prefix of text1 and text2
// that ends in a newline, or "" if there is none.
func prefixThroughNewline(text1, text2 string) string {
	n := 0
	for n < len(text1) && n < len(text2) && text1[n] == text2[n] {
		n++
	}
	if i := strings.LastIndex(text1[:n], "\n"); i != -1 {
		return text1[:i+1]
	}
	return ""
}

// deletionsFirst reorders changes so that deletions come before insertions,
// without crossing a copy.
func deletionsFirst(lines []Diff) []Diff {
	var out, deletions, insertions []Diff
	for _, line := range lines {
		switch line.Type {
		case DiffDelete:
			deletions = append(deletions, line)
		case DiffInsert:
			insertions = append(insertions, line)
		default:
			out = append(out, deletions...)
			out = append(out, insertions...)
			out = append(out, line)
			deletions, insertions = nil, nil
		}
	}
	out = append(out, deletions...)
	return append(out, insertions...)
}
