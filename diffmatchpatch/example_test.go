package diffmatchpatch_test

import (
	"fmt"

	"github.com/movlib/go-diff/diffmatchpatch"
)

func ExampleDiffMatchPatch_DiffUnified() {
	older := "Title: Release notes\nFixed the login page.\nImproved caching.\n"
	newer := "Title: Release notes\nFixed the signup page.\nImproved caching.\n"

	dmp := diffmatchpatch.New()

	// Word-level diffs are realigned on line boundaries.
	diffs := dmp.DiffWords(older, newer)

	fmt.Print(dmp.DiffUnified(diffs,
		diffmatchpatch.UnifiedLabels("notes@1", "notes@2"),
		diffmatchpatch.UnifiedContextLines(1)))
	// Output:
	// --- notes@1
	// +++ notes@2
	// @@ -1,3 +1,3 @@
	//  Title: Release notes
	// -Fixed the login page.
	// +Fixed the signup page.
	//  Improved caching.
}

func ExampleDiffMatchPatch_DiffPrettyHtml() {
	dmp := diffmatchpatch.New()

	diffs := dmp.DiffWords("Hello <b>world</b>.", "Hello brave <b>world</b>.")

	fmt.Println(dmp.DiffPrettyHtml(diffs))
	// Output:
	// Hello <ins>brave </ins>&lt;b&gt;world&lt;/b&gt;.
}
