package v1

import (
	"time"

	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/listing"
	"github.com/vmunix/catchup/internal/tasks"
	"github.com/vmunix/catchup/internal/trailers"
)

// channelResponse is the response for GET /channel.
type channelResponse struct {
	Name            string              `json:"name"`
	HomePageURL     string              `json:"home_page_url"`
	DataVersion     string              `json:"data_version"`
	Features        channel.Features    `json:"features"`
	SupportedImages []channel.ImageType `json:"supported_images"`
}

// itemsResponse is the response for GET /channel/items.
type itemsResponse struct {
	Items            []listing.Item `json:"items"`
	TotalRecordCount int            `json:"total_record_count"`
	Start            int            `json:"start"`
	Limit            int            `json:"limit"`
	DataVersion      string         `json:"data_version"`
	CacheTTLSeconds  int64          `json:"cache_ttl_seconds"`
}

// taskResponse is the API representation of a task with its next scheduled run.
type taskResponse struct {
	tasks.State
	NextRun time.Time `json:"next_run,omitzero"`
}

type listTasksResponse struct {
	Tasks []taskResponse `json:"tasks"`
}

type runTaskResponse struct {
	Key   string `json:"key"`
	RunID string `json:"run_id"`
}

type historyResponse struct {
	Entries []trailers.Entry `json:"entries"`
	Limit   int              `json:"limit"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Channel      string `json:"channel"`
	DataVersion  string `json:"data_version"`
	Tasks        int    `json:"tasks"`
	RunningTasks int    `json:"running_tasks"`
}
