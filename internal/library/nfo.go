package library

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type nfoMovie struct {
	Title     string        `xml:"title"`
	Year      string        `xml:"year"`
	TMDBID    string        `xml:"tmdbid"`
	IMDBID    string        `xml:"imdbid"`
	ID        string        `xml:"id"`
	UniqueIDs []nfoUniqueID `xml:"uniqueid"`
}

type nfoUniqueID struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// nfoInfo is what a Kodi-style movie.nfo contributes to a Movie.
type nfoInfo struct {
	Title       string
	Year        int
	ProviderIDs map[string]string
}

func readNFO(path string) (nfoInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nfoInfo{}, err
	}
	var m nfoMovie
	if err := xml.Unmarshal(b, &m); err != nil {
		return nfoInfo{}, fmt.Errorf("%w: %s: %v", ErrInvalidNFO, path, err)
	}

	info := nfoInfo{
		Title:       strings.TrimSpace(m.Title),
		ProviderIDs: map[string]string{},
	}
	info.Year, _ = strconv.Atoi(strings.TrimSpace(m.Year))

	for _, u := range m.UniqueIDs {
		setProviderID(info.ProviderIDs, strings.ToLower(strings.TrimSpace(u.Type)), u.Value)
	}
	setProviderID(info.ProviderIDs, ProviderTMDB, m.TMDBID)
	setProviderID(info.ProviderIDs, ProviderIMDB, m.IMDBID)
	if id := strings.TrimSpace(m.ID); strings.HasPrefix(id, "tt") {
		setProviderID(info.ProviderIDs, ProviderIMDB, id)
	}
	return info, nil
}

// setProviderID keeps the first non-empty value seen for a provider.
func setProviderID(ids map[string]string, provider, value string) {
	value = strings.TrimSpace(value)
	if value == "" || (provider != ProviderTMDB && provider != ProviderIMDB) {
		return
	}
	if _, ok := ids[provider]; !ok {
		ids[provider] = value
	}
}
