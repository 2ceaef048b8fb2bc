package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateBreaksBeforeLaterWeeks(t *testing.T) {
	in := "<h1>Week 1</h1><p>a</p><h2>Week 2 - Values</h2><p>b</p><h3>week 3: Rights</h3><p>c</p>"

	out, err := Paginate(in)

	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, PageBreakMarker))
	assert.Contains(t, out, PageBreakMarker+"<h2>Week 2 - Values</h2>")
	assert.Contains(t, out, PageBreakMarker+"<h3>week 3: Rights</h3>")
	assert.True(t, strings.HasPrefix(out, "<h1>Week 1</h1>"))
}

func TestPaginateIgnoresOtherHeadings(t *testing.T) {
	in := "<h1>Week 1</h1><h4>Week 2</h4><p>Week 3</p><h2>Weekly review</h2><h2>Week twelve</h2>"

	out, err := Paginate(in)

	require.NoError(t, err)
	assert.NotContains(t, out, "page-break")
}

func TestPaginateSingleWeekUnchanged(t *testing.T) {
	in := "<h1>Week 1 — Intro</h1><p>text &amp; more</p>"

	out, err := Paginate(in)

	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestIsWeekHeading(t *testing.T) {
	tests := map[string]bool{
		"Week 1":                true,
		"  WEEK 10 - Elections": true,
		"Week 2 – Values":       true,
		"Week 3 — Rights":       true,
		"Week 4: Duties":        true,
		"Week 5 Revision":       true,
		"Week 0":                true,
		"Week12":                false,
		"Week 12abc":            false,
		"Weekly plan":           false,
		"The Week 1 plan":       false,
	}
	for text, want := range tests {
		assert.Equal(t, want, IsWeekHeading(text), text)
	}
}
