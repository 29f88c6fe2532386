package listing

import (
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://www.example.com"

func showRules() RuleSet {
	return RuleSet{
		Name: "shows",
		Root: "#shows",
		Item: "ul > li",
		Rules: []Rule{
			{Field: "url", Selector: "h3.title a", Attr: "href", Transforms: []Transform{ResolveURL(base)}, Required: true},
			{Field: "title", Selector: "h3.title a", Transforms: []Transform{TrimSpace}, Required: true},
			{Field: "thumb", Selector: "img", Attr: "src", Transforms: []Transform{Replace("_small", "_large"), ResolveURL(base)}},
			{Field: "series", Selector: ".series", Transforms: []Transform{FirstNumber}},
		},
		Build: func(f Fields) Item {
			return Item{
				Name:         f["title"],
				ID:           "episodes_" + f["url"],
				Kind:         KindFolder,
				ImageURL:     f["thumb"],
				SeasonNumber: f.Int("series"),
			}
		},
	}
}

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExtract_SkipsItemsMissingRequiredFields(t *testing.T) {
	ex, err := Extract(openFixture(t, "shows.html"), showRules())
	require.NoError(t, err)
	assert.Equal(t, 3, ex.Len())

	items, skipped := ex.Items(nil)
	assert.Equal(t, 1, skipped)
	require.Len(t, items, 2)

	assert.Equal(t, Item{
		Name:         "Coronation Street",
		ID:           "episodes_https://www.example.com/hub/coronation-street",
		Kind:         KindFolder,
		ImageURL:     "https://images.example.com/corrie_large.jpg",
		SeasonNumber: 61,
	}, items[0])
	assert.Equal(t, "Emmerdale", items[1].Name)
	assert.Equal(t, "episodes_https://www.example.com/hub/emmerdale", items[1].ID)
	assert.Empty(t, items[1].ImageURL)
	assert.Equal(t, 52, items[1].SeasonNumber)
}

func TestExtract_CollectsEveryRootMatch(t *testing.T) {
	rs := showRules()
	rs.Root = "#shows .grp"
	rs.Item = "li"

	ex, err := Extract(openFixture(t, "grouped.html"), rs)
	require.NoError(t, err)
	assert.Equal(t, 3, ex.Len())

	items, skipped := ex.Items(nil)
	assert.Zero(t, skipped)
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestExtract_NestedRootsDoNotDuplicate(t *testing.T) {
	rs := showRules()
	rs.Root = "#shows, #shows .grp"
	rs.Item = "li"

	ex, err := Extract(openFixture(t, "grouped.html"), rs)
	require.NoError(t, err)
	assert.Equal(t, 3, ex.Len())
}

func TestExtract_OutcomesReportMissingField(t *testing.T) {
	ex, err := Extract(openFixture(t, "shows.html"), showRules())
	require.NoError(t, err)

	var failed []Outcome
	for o := range ex.Outcomes() {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	require.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].Index)

	var fm *FieldMissingError
	require.ErrorAs(t, failed[0].Err, &fm)
	assert.Equal(t, "url", fm.Field)
	assert.Equal(t, "h3.title a", fm.Selector)
}

func TestExtract_OutcomesAreRestartable(t *testing.T) {
	ex, err := Extract(openFixture(t, "shows.html"), showRules())
	require.NoError(t, err)

	first := slices.Collect(ex.Outcomes())
	second := slices.Collect(ex.Outcomes())
	assert.Equal(t, first, second)
}

func TestExtract_Deterministic(t *testing.T) {
	data, err := os.ReadFile("testdata/shows.html")
	require.NoError(t, err)

	a, err := Extract(strings.NewReader(string(data)), showRules())
	require.NoError(t, err)
	b, err := Extract(strings.NewReader(string(data)), showRules())
	require.NoError(t, err)

	itemsA, _ := a.Items(nil)
	itemsB, _ := b.Items(nil)
	assert.Equal(t, itemsA, itemsB)
}

func TestExtract_EarlyBreak(t *testing.T) {
	ex, err := Extract(openFixture(t, "shows.html"), showRules())
	require.NoError(t, err)

	n := 0
	for range ex.Outcomes() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestExtract_RootMissing(t *testing.T) {
	_, err := Extract(strings.NewReader(`<html><body><p>maintenance</p></body></html>`), showRules())
	require.ErrorIs(t, err, ErrPageStructureChanged)
}

func TestExtract_EmptyRoot(t *testing.T) {
	ex, err := Extract(strings.NewReader(`<div id="shows"><ul></ul></div>`), showRules())
	require.NoError(t, err)
	assert.Zero(t, ex.Len())

	items, skipped := ex.Items(nil)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.Zero(t, skipped)
}

func TestExtract_DefaultBuild(t *testing.T) {
	rs := showRules()
	rs.Build = nil
	ex, err := Extract(openFixture(t, "shows.html"), rs)
	require.NoError(t, err)

	items, _ := ex.Items(nil)
	require.NotEmpty(t, items)
	assert.Equal(t, "Coronation Street", items[0].Name)
	assert.Equal(t, "https://www.example.com/hub/coronation-street", items[0].ID)
}

func TestTransforms(t *testing.T) {
	tests := []struct {
		name string
		fn   Transform
		in   string
		want string
	}{
		{"replace", Replace("thumb", "poster"), "a_thumb_b_thumb", "a_poster_b_poster"},
		{"trim", TrimSpace, "  a \n\t b  ", "a b"},
		{"resolve relative", ResolveURL(base), "/hub/x", "https://www.example.com/hub/x"},
		{"resolve protocol relative", ResolveURL(base), "//cdn.example.com/x.jpg", "https://cdn.example.com/x.jpg"},
		{"resolve absolute", ResolveURL(base), "http://other.example.com/x", "http://other.example.com/x"},
		{"resolve empty", ResolveURL(base), "  ", ""},
		{"first number", FirstNumber, "Series 4 Episode 12", "4"},
		{"first number none", FirstNumber, "Special", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestFields_Int(t *testing.T) {
	f := Fields{"n": "7", "bad": "x"}
	assert.Equal(t, 7, f.Int("n"))
	assert.Zero(t, f.Int("bad"))
	assert.Zero(t, f.Int("missing"))
}

func TestCachePolicy_Stamp(t *testing.T) {
	p := CachePolicy{TTL: 72 * time.Hour, DataVersion: "4"}

	items := []Item{{Name: "a"}, {Name: "b"}}
	res := p.Stamp(items)
	assert.Equal(t, items, res.Items)
	assert.Equal(t, 2, res.TotalRecordCount)
	assert.Equal(t, 72*time.Hour, res.CacheTTL)
	assert.Equal(t, "4", res.DataVersion)

	empty := p.Stamp(nil)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.TotalRecordCount)
	assert.Equal(t, "4", empty.DataVersion)
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.Observe("shows", 2, 1)
	m.Observe("shows", 3, 0)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.extracted.WithLabelValues("shows")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skipped.WithLabelValues("shows")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.Observe("shows", 1, 1) })
}
