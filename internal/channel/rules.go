package channel

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/vmunix/catchup/internal/listing"
)

// Thumbnails on listing pages are tiny; the posterframe rendition shares the same path.
var posterframe = listing.Replace("player_image_thumb_standard", "posterframe")

// ProgramRules reads the category browse page into program folders.
func ProgramRules(home string) listing.RuleSet {
	resolve := listing.ResolveURL(home)
	return listing.RuleSet{
		Name: string(KindPrograms),
		Root: "#categories-content .item-list",
		Item: "ul > li",
		Rules: []listing.Rule{
			{Field: "title", Selector: ".programme-title.cell-title a", Transforms: []listing.Transform{listing.TrimSpace}, Required: true},
			{Field: "url", Selector: ".programme-title.cell-title a", Attr: "href", Transforms: []listing.Transform{resolve}, Required: true},
			{Field: "thumb", Selector: "img", Attr: "src", Transforms: []listing.Transform{posterframe, resolve}},
		},
		Build: func(f listing.Fields) listing.Item {
			return listing.Item{
				Name:     norm.NFC.String(f["title"]),
				ID:       NavID{Kind: KindEpisodes, URL: f["url"]}.String(),
				Kind:     listing.KindFolder,
				ImageURL: f["thumb"],
			}
		},
	}
}

// EpisodeRules reads a programme page into playable episodes.
func EpisodeRules(home string) listing.RuleSet {
	resolve := listing.ResolveURL(home)
	return listing.RuleSet{
		Name: string(KindEpisodes),
		Root: ".view-content",
		Item: ".views-row",
		Rules: []listing.Rule{
			{Field: "url", Selector: ".node-episode a", Attr: "href", Transforms: []listing.Transform{resolve}, Required: true},
			{Field: "title", Selector: "h2.episode-title", Transforms: []listing.Transform{listing.TrimSpace}, Required: true},
			{Field: "season", Selector: ".field-name-field-season-number", Transforms: []listing.Transform{listing.FirstNumber}},
			{Field: "episode", Selector: ".field-name-field-episode-number", Transforms: []listing.Transform{listing.FirstNumber}},
			{Field: "synopsis", Selector: ".field-name-field-short-synopsis", Transforms: []listing.Transform{listing.TrimSpace}},
			{Field: "thumb", Selector: ".field-name-field-image img", Attr: "src", Transforms: []listing.Transform{posterframe, resolve}},
		},
		Build: func(f listing.Fields) listing.Item {
			season, episode := f.Int("season"), f.Int("episode")
			return listing.Item{
				Name:          episodeName(norm.NFC.String(f["title"]), season, episode),
				ID:            f["url"],
				Kind:          listing.KindMedia,
				ImageURL:      f["thumb"],
				Overview:      f["synopsis"],
				SeasonNumber:  season,
				EpisodeNumber: episode,
				ContentType:   listing.ContentEpisode,
				MediaType:     listing.MediaVideo,
			}
		},
	}
}

// RulesFor returns the rule set bound to kind.
func RulesFor(kind Kind, home string) (listing.RuleSet, error) {
	switch kind {
	case KindPrograms:
		return ProgramRules(home), nil
	case KindEpisodes:
		return EpisodeRules(home), nil
	default:
		return listing.RuleSet{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidNavigationID, kind)
	}
}

func episodeName(title string, season, episode int) string {
	switch {
	case season > 0 && episode > 0:
		return fmt.Sprintf("%s (Season: %d, Ep: %d)", title, season, episode)
	case episode > 0:
		return fmt.Sprintf("%s (Ep: %d)", title, episode)
	case season > 0:
		return fmt.Sprintf("%s (Season: %d)", title, season)
	default:
		return title
	}
}
