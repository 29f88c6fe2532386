package channel

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/catchup/internal/listing"
)

func extractFixture(t *testing.T, name string, rs listing.RuleSet) ([]listing.Item, int) {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	defer f.Close()

	ex, err := listing.Extract(f, rs)
	require.NoError(t, err)
	return ex.Items(nil)
}

func TestProgramRules(t *testing.T) {
	items, skipped := extractFixture(t, "programs.html", ProgramRules(DefaultHomeURL))

	assert.Equal(t, 1, skipped)
	require.Len(t, items, 2)

	assert.Equal(t, listing.Item{
		Name:     "Coronation Street",
		ID:       "episodes_https://www.itv.com/itvplayer/coronation-street",
		Kind:     listing.KindFolder,
		ImageURL: "https://www.itv.com/img/posterframe/coronation-street.jpg",
	}, items[0])

	assert.Equal(t, "Emmerdale", items[1].Name)
	assert.Equal(t, listing.KindFolder, items[1].Kind)
	assert.Empty(t, items[1].ImageURL)

	for _, item := range items {
		id, err := ParseNavID(item.ID)
		require.NoError(t, err)
		assert.Equal(t, KindEpisodes, id.Kind)
	}
}

func TestProgramRules_AllSections(t *testing.T) {
	items, skipped := extractFixture(t, "programs_sections.html", ProgramRules(DefaultHomeURL))

	assert.Zero(t, skipped)
	require.Len(t, items, 3)
	assert.Equal(t, "Broadchurch", items[0].Name)
	assert.Equal(t, "Endeavour", items[1].Name)
	assert.Equal(t, "Vera", items[2].Name)
	assert.Equal(t, "episodes_https://www.itv.com/itvplayer/vera", items[2].ID)
}

func TestEpisodeRules(t *testing.T) {
	items, skipped := extractFixture(t, "episodes.html", EpisodeRules(DefaultHomeURL))

	assert.Equal(t, 1, skipped)
	require.Len(t, items, 2)

	assert.Equal(t, listing.Item{
		Name:          "Coronation Street (Season: 61, Ep: 12)",
		ID:            "https://www.itv.com/itvplayer/coronation-street/series-61/episode-12",
		Kind:          listing.KindMedia,
		ImageURL:      "https://www.itv.com/img/posterframe/corrie-61-12.jpg",
		Overview:      "Roy makes a decision.",
		SeasonNumber:  61,
		EpisodeNumber: 12,
		ContentType:   listing.ContentEpisode,
		MediaType:     listing.MediaVideo,
	}, items[0])

	special := items[1]
	assert.Equal(t, "Coronation Street: Christmas Special", special.Name)
	assert.Equal(t, "https://www.itv.com/itvplayer/coronation-street/special", special.ID)
	assert.Zero(t, special.SeasonNumber)
	assert.Zero(t, special.EpisodeNumber)
}

func TestRulesFor(t *testing.T) {
	rs, err := RulesFor(KindPrograms, DefaultHomeURL)
	require.NoError(t, err)
	assert.Equal(t, "programs", rs.Name)

	rs, err = RulesFor(KindEpisodes, DefaultHomeURL)
	require.NoError(t, err)
	assert.Equal(t, "episodes", rs.Name)

	_, err = RulesFor(Kind("clips"), DefaultHomeURL)
	assert.ErrorIs(t, err, ErrInvalidNavigationID)
}

func TestEpisodeName(t *testing.T) {
	assert.Equal(t, "Vera (Season: 3, Ep: 2)", episodeName("Vera", 3, 2))
	assert.Equal(t, "Vera (Ep: 2)", episodeName("Vera", 0, 2))
	assert.Equal(t, "Vera (Season: 3)", episodeName("Vera", 3, 0))
	assert.Equal(t, "Vera", episodeName("Vera", 0, 0))
}
