package diffmatchpatch

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// clauses returns n numbered lines starting at start, one clause per line.
func clauses(n, start int) string {
	var b strings.Builder
	for i := start; i < start+n; i++ {
		fmt.Fprintf(&b, "§%d clause\n", i)
	}
	return b.String()
}

func TestUnified(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		text1 string
		text2 string
		want  string
	}{
		{
			name:  "Unchanged revision",
			text1: "Grüße aus Köln\n",
			text2: "Grüße aus Köln\n",
			want:  "",
		},
		{
			name:  "Reworded multi-byte line",
			text1: "Grüße aus Köln\n☕ Kaffee\n🍰 Kuchen\n",
			text2: "Grüße aus Köln\n☕ Tee\n🍰 Kuchen\n",
			want:  "--- text1\n+++ text2\n@@ -1,3 +1,3 @@\n Grüße aus Köln\n-☕ Kaffee\n+☕ Tee\n 🍰 Kuchen\n",
		},
		{
			name:  "Emoji line appended",
			text1: "📌 Agenda\n",
			text2: "📌 Agenda\n✅ Done\n",
			want:  "--- text1\n+++ text2\n@@ -1 +1,2 @@\n 📌 Agenda\n+✅ Done\n",
		},
		{
			name:  "Leading line removed",
			text1: "Draft\nFinal text\n",
			text2: "Final text\n",
			want:  "--- text1\n+++ text2\n@@ -1,2 +1 @@\n-Draft\n Final text\n",
		},
		{
			name:  "Paragraph removed",
			text1: "Heading\nobsolete paragraph\nFooter\n",
			text2: "Heading\nFooter\n",
			want:  "--- text1\n+++ text2\n@@ -1,3 +1,2 @@\n Heading\n-obsolete paragraph\n Footer\n",
		},
		{
			name:  "Word edits on consecutive lines",
			text1: "Roses are red,\nviolets are blue.\n",
			text2: "Roses are red;\nsugar is sweet.\n",
			want: `--- text1
+++ text2
@@ -1,2 +1,2 @@
-Roses are red,
-violets are blue.
+Roses are red;
+sugar is sweet.
`,
		},
		{
			name:  "Block replaced",
			text1: clauses(5, 0) + "old A\nold B\nold C\n" + clauses(5, 5),
			text2: clauses(5, 0) + "new A\nnew B\nnew C\n" + clauses(5, 5),
			want: `--- text1
+++ text2
@@ -3,9 +3,9 @@
 §2 clause
 §3 clause
 §4 clause
-old A
-old B
-old C
+new A
+new B
+new C
 §5 clause
 §6 clause
 §7 clause
`,
		},
		{
			name:  "Distant insertions",
			text1: clauses(20, 0),
			text2: clauses(5, 0) + "Added A\n" + clauses(10, 5) + "Added B\n" + clauses(5, 15),
			want: `--- text1
+++ text2
@@ -3,6 +3,7 @@
 §2 clause
 §3 clause
 §4 clause
+Added A
 §5 clause
 §6 clause
 §7 clause
@@ -13,6 +14,7 @@
 §12 clause
 §13 clause
 §14 clause
+Added B
 §15 clause
 §16 clause
 §17 clause
`,
		},
		{
			name:  "Nearby insertions share a hunk",
			text1: clauses(15, 0),
			text2: clauses(5, 0) + "Added A\n" + clauses(5, 5) + "Added B\n" + clauses(5, 10),
			want: `--- text1
+++ text2
@@ -3,11 +3,13 @@
 §2 clause
 §3 clause
 §4 clause
+Added A
 §5 clause
 §6 clause
 §7 clause
 §8 clause
 §9 clause
+Added B
 §10 clause
 §11 clause
 §12 clause
`,
		},
		{
			name:  "Line added after text without newline",
			text1: "Title",
			text2: "Title\nSubtitle",
			want: `--- text1
+++ text2
@@ -1 +1,2 @@
-Title
\ No newline at end of file
+Title
+Subtitle
\ No newline at end of file
`,
		},
		{
			name:  "Last line removed without newline",
			text1: "Title\nSubtitle",
			text2: "Title",
			want: `--- text1
+++ text2
@@ -1,2 +1 @@
-Title
-Subtitle
\ No newline at end of file
+Title
\ No newline at end of file
`,
		},
		{
			name:  "Unchanged last line without newline",
			text1: "Intro\nold wording\nSignature",
			text2: "Intro\nnew wording\nSignature",
			want: `--- text1
+++ text2
@@ -1,3 +1,3 @@
 Intro
-old wording
+new wording
 Signature
\ No newline at end of file
`,
		},
		{
			name:  "First revision",
			text1: "",
			text2: "Neue Zeile ✨\n",
			want:  "--- text1\n+++ text2\n@@ -0,0 +1 @@\n+Neue Zeile ✨\n",
		},
		{
			name:  "Text cleared",
			text1: "Alte Zeile ✨\n",
			text2: "",
			want:  "--- text1\n+++ text2\n@@ -1 +0,0 @@\n-Alte Zeile ✨\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dmp := New()

			got := dmp.Unified(tc.text1, tc.text2)
			if got != tc.want {
				t.Errorf("Unified() output differs (-want/+got):\n%s", cmp.Diff(tc.want, got))
			}

			// Character and word scripts render the same hunks once realigned
			// on line boundaries.
			for granularity, diffs := range map[string][]Diff{
				"chars": dmp.GetDiff(tc.text1, tc.text2),
				"words": dmp.DiffWords(tc.text1, tc.text2),
			} {
				got := dmp.DiffUnified(diffs)
				if got != tc.want {
					t.Errorf("DiffUnified(%s) output differs (-want/+got):\n%s", granularity, cmp.Diff(tc.want, got))
				}
			}
		})
	}
}

func TestDiffUnifiedRealignsEdits(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		diffs []Diff
		want  string
	}{
		{
			name: "Insertion shifted onto a line start",
			diffs: []Diff{
				{Type: DiffCopy, Text: "start\n"},
				{Type: DiffInsert, Text: "same\nnew\n"},
				{Type: DiffCopy, Text: "same\nend\n"},
			},
			want: "--- text1\n+++ text2\n@@ -1,3 +1,5 @@\n start\n same\n+new\n+same\n end\n",
		},
		{
			name: "Insertion inside a line",
			diffs: []Diff{
				{Type: DiffCopy, Text: "The cat"},
				{Type: DiffInsert, Text: " sat\nThe cat"},
				{Type: DiffCopy, Text: " ran\n"},
			},
			want: "--- text1\n+++ text2\n@@ -1 +1,2 @@\n+The cat sat\n The cat ran\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := New().DiffUnified(tc.diffs)
			if got != tc.want {
				t.Errorf("DiffUnified() output differs (-want/+got):\n%s", cmp.Diff(tc.want, got))
			}
		})
	}
}

func TestUnifiedOptions(t *testing.T) {
	t.Parallel()

	dmp := New()
	text1 := clauses(10, 0)
	text2 := clauses(5, 0) + "Added\n" + clauses(5, 5)

	got := dmp.Unified(text1, text2, UnifiedLabels("contract@3", "contract@4"), UnifiedContextLines(1))
	want := `--- contract@3
+++ contract@4
@@ -5,2 +5,3 @@
 §4 clause
+Added
 §5 clause
`
	if got != want {
		t.Errorf("Unified() output differs (-want/+got):\n%s", cmp.Diff(want, got))
	}

	// Non-positive context falls back to the default.
	got = dmp.Unified(text1, text2, UnifiedContextLines(0))
	want = dmp.Unified(text1, text2, UnifiedContextLines(DefaultContextLines))
	if got != want {
		t.Errorf("Unified() output differs (-want/+got):\n%s", cmp.Diff(want, got))
	}
}

func TestAlignNewlines(t *testing.T) {
	type TestCase struct {
		Name  string
		Diffs []Diff

		Expected []Diff
	}

	for i, tc := range []TestCase{
		{
			Name: "Shared line moves in front of the edit",
			Diffs: []Diff{
				{Type: DiffCopy, Text: "start\n"},
				{Type: DiffInsert, Text: "same\nnew\n"},
				{Type: DiffCopy, Text: "same\nend\n"},
			},
			Expected: []Diff{
				{Type: DiffCopy, Text: "start\nsame\n"},
				{Type: DiffInsert, Text: "new\nsame\n"},
				{Type: DiffCopy, Text: "end\n"},
			},
		},
		{
			Name: "Only complete lines move",
			Diffs: []Diff{
				{Type: DiffCopy, Text: "p\n"},
				{Type: DiffDelete, Text: "q\nr\nz"},
				{Type: DiffCopy, Text: "q\nr\nw\n"},
			},
			Expected: []Diff{
				{Type: DiffCopy, Text: "p\nq\nr\n"},
				{Type: DiffDelete, Text: "zq\nr\n"},
				{Type: DiffCopy, Text: "w\n"},
			},
		},
		{
			Name: "No shared line",
			Diffs: []Diff{
				{Type: DiffCopy, Text: "a"},
				{Type: DiffDelete, Text: "b\nc"},
				{Type: DiffCopy, Text: "d\n"},
			},
			Expected: []Diff{
				{Type: DiffCopy, Text: "a"},
				{Type: DiffDelete, Text: "b\nc"},
				{Type: DiffCopy, Text: "d\n"},
			},
		},
		{
			Name: "Edit not followed by a copy",
			Diffs: []Diff{
				{Type: DiffCopy, Text: "x\n"},
				{Type: DiffDelete, Text: "x\n"},
			},
			Expected: []Diff{
				{Type: DiffCopy, Text: "x\n"},
				{Type: DiffDelete, Text: "x\n"},
			},
		},
	} {
		actual := alignNewlines(tc.Diffs)
		assert.Equal(t, tc.Expected, actual, fmt.Sprintf("Test case #%d, %s", i, tc.Name))
	}
}

func TestSplitLinewise(t *testing.T) {
	actual := splitLinewise([]Diff{
		{Type: DiffCopy, Text: "Grüße\n☕ "},
		{Type: DiffDelete, Text: "Kaffee"},
		{Type: DiffInsert, Text: "Tee"},
		{Type: DiffCopy, Text: "\nEnde"},
	})

	assert.Equal(t, []Diff{
		{Type: DiffCopy, Text: "Grüße\n"},
		{Type: DiffDelete, Text: "☕ Kaffee\n"},
		{Type: DiffInsert, Text: "☕ Tee\n"},
		{Type: DiffCopy, Text: "Ende"},
	}, actual)
}

func TestDeletionsFirst(t *testing.T) {
	actual := deletionsFirst([]Diff{
		{Type: DiffInsert, Text: "a\n"},
		{Type: DiffDelete, Text: "b\n"},
		{Type: DiffCopy, Text: "c\n"},
		{Type: DiffDelete, Text: "d\n"},
		{Type: DiffInsert, Text: "e\n"},
		{Type: DiffDelete, Text: "f\n"},
	})

	assert.Equal(t, []Diff{
		{Type: DiffDelete, Text: "b\n"},
		{Type: DiffInsert, Text: "a\n"},
		{Type: DiffCopy, Text: "c\n"},
		{Type: DiffDelete, Text: "d\n"},
		{Type: DiffDelete, Text: "f\n"},
		{Type: DiffInsert, Text: "e\n"},
	}, actual)
}

func TestWriteRange(t *testing.T) {
	for _, tc := range []struct {
		start, n int
		want     string
	}{
		{1, 0, " -0,0"},
		{4, 1, " -4"},
		{4, 3, " -4,3"},
	} {
		var b strings.Builder
		writeRange(&b, "-", tc.start, tc.n)
		assert.Equal(t, tc.want, b.String(), "start %d, n %d", tc.start, tc.n)
	}
}
