package channel_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/fetch"
	fetchmocks "github.com/vmunix/catchup/internal/fetch/mocks"
	"github.com/vmunix/catchup/internal/listing"
)

// trackingBody records whether Close was called.
type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func fixtureBody(t *testing.T, name string) *trackingBody {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return &trackingBody{Reader: strings.NewReader(string(data))}
}

func TestNavigator_TopLevelMenu(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := fetchmocks.NewMockFetcher(ctrl)

	nav := channel.NewNavigator(channel.DefaultSettings(), fetcher, nil)
	res, err := nav.Listing(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Equal(t, listing.KindFolder, item.Kind)
	assert.Equal(t, "Most Popular Programmes", item.Name)

	id, err := channel.ParseNavID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, channel.KindPrograms, id.Kind)

	assert.Equal(t, channel.DefaultCacheTTL, res.CacheTTL)
	assert.Equal(t, channel.DefaultDataVersion, res.DataVersion)
}

func TestNavigator_Programs(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := fetchmocks.NewMockFetcher(ctrl)

	body := fixtureBody(t, "programs.html")
	url := "https://www.itv.com/itvplayer/categories/browse/popular/catch-up"
	fetcher.EXPECT().Get(gomock.Any(), url).Return(body, nil)

	reg := prometheus.NewRegistry()
	nav := channel.NewNavigator(channel.DefaultSettings(), fetcher, nil,
		channel.WithListingMetrics(listing.NewMetrics(reg)))

	res, err := nav.Listing(context.Background(), "programs_"+url)
	require.NoError(t, err)
	assert.True(t, body.closed)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "Coronation Street", res.Items[0].Name)
	assert.Equal(t, "Emmerdale", res.Items[1].Name)
	assert.Equal(t, 2, res.TotalRecordCount)
	assert.Equal(t, channel.DefaultDataVersion, res.DataVersion)
}

func TestNavigator_Episodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := fetchmocks.NewMockFetcher(ctrl)

	body := fixtureBody(t, "episodes.html")
	fetcher.EXPECT().Get(gomock.Any(), "https://www.itv.com/itvplayer/coronation-street").Return(body, nil)

	nav := channel.NewNavigator(channel.DefaultSettings(), fetcher, nil)
	res, err := nav.Listing(context.Background(), "episodes_https://www.itv.com/itvplayer/coronation-street")
	require.NoError(t, err)
	assert.True(t, body.closed)

	require.Len(t, res.Items, 2)
	for _, item := range res.Items {
		assert.Equal(t, listing.KindMedia, item.Kind)
		assert.True(t, strings.HasPrefix(item.ID, "https://"))
	}
}

func TestNavigator_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := fetchmocks.NewMockFetcher(ctrl)

	nav := channel.NewNavigator(channel.DefaultSettings(), fetcher, nil)
	_, err := nav.Listing(context.Background(), "movies_https://www.itv.com")
	assert.ErrorIs(t, err, channel.ErrInvalidNavigationID)
}

func TestNavigator_PageStructureChanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := fetchmocks.NewMockFetcher(ctrl)

	body := &trackingBody{Reader: strings.NewReader("<html><body><h1>We'll be back soon</h1></body></html>")}
	fetcher.EXPECT().Get(gomock.Any(), gomock.Any()).Return(body, nil)

	nav := channel.NewNavigator(channel.DefaultSettings(), fetcher, nil)
	_, err := nav.Listing(context.Background(), "programs_https://www.itv.com/browse")
	assert.ErrorIs(t, err, listing.ErrPageStructureChanged)
	assert.True(t, body.closed, "body must be released on the error path")
}

func TestNavigator_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := fetchmocks.NewMockFetcher(ctrl)

	upstream := &fetch.HTTPStatusError{URL: "https://www.itv.com/browse", StatusCode: 503}
	fetcher.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, upstream)

	nav := channel.NewNavigator(channel.DefaultSettings(), fetcher, nil)
	_, err := nav.Listing(context.Background(), "programs_https://www.itv.com/browse")

	var se *fetch.HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 503, se.StatusCode)
}

func TestNavigator_Canceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := fetchmocks.NewMockFetcher(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetcher.EXPECT().Get(ctx, gomock.Any()).Return(nil, context.Canceled)

	nav := channel.NewNavigator(channel.DefaultSettings(), fetcher, nil)
	_, err := nav.Listing(ctx, "episodes_https://www.itv.com/x")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNavigator_CustomMenu(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := fetchmocks.NewMockFetcher(ctrl)

	settings := channel.DefaultSettings()
	settings.Menu = append(settings.Menu, channel.MenuEntry{
		Name: "Drama",
		ID:   channel.NavID{Kind: channel.KindPrograms, URL: "https://www.itv.com/itvplayer/categories/drama"},
	})

	res, err := channel.NewNavigator(settings, fetcher, nil).Listing(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "programs_https://www.itv.com/itvplayer/categories/drama", res.Items[1].ID)
}
