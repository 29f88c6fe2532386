package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client wraps HTTP calls to the catchup server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new catchup API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// APIError is an error answered by the server.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error %d (%s): %s", e.Status, e.Code, e.Message)
}

func (c *Client) do(method, path string, okStatus int) (*http.Response, error) {
	req, err := http.NewRequest(method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != okStatus {
		defer func() { _ = resp.Body.Close() }()
		return nil, readAPIError(resp)
	}
	return resp, nil
}

func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Code = ""
		apiErr.Message = string(body)
	}
	return apiErr
}

func (c *Client) call(method, path string, okStatus int, result any) error {
	resp, err := c.do(method, path, okStatus)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(path string, result any) error {
	return c.call(http.MethodGet, path, http.StatusOK, result)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Channel      string `json:"channel"`
	DataVersion  string `json:"data_version"`
	Tasks        int    `json:"tasks"`
	RunningTasks int    `json:"running_tasks"`
}

type FeaturesResponse struct {
	CanSearch               bool     `json:"can_search"`
	MaxPageSize             int      `json:"max_page_size"`
	ContentTypes            []string `json:"content_types"`
	MediaTypes              []string `json:"media_types"`
	SupportsSortOrderToggle bool     `json:"supports_sort_order_toggle"`
	DefaultSortFields       []string `json:"default_sort_fields"`
}

type ChannelResponse struct {
	Name            string           `json:"name"`
	HomePageURL     string           `json:"home_page_url"`
	DataVersion     string           `json:"data_version"`
	Features        FeaturesResponse `json:"features"`
	SupportedImages []string         `json:"supported_images"`
}

type ItemResponse struct {
	Name          string `json:"name"`
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	ImageURL      string `json:"image_url,omitempty"`
	Overview      string `json:"overview,omitempty"`
	SeasonNumber  int    `json:"season_number,omitempty"`
	EpisodeNumber int    `json:"episode_number,omitempty"`
	ContentType   string `json:"content_type,omitempty"`
	MediaType     string `json:"media_type,omitempty"`
}

type ItemsResponse struct {
	Items            []ItemResponse `json:"items"`
	TotalRecordCount int            `json:"total_record_count"`
	Start            int            `json:"start"`
	Limit            int            `json:"limit"`
	DataVersion      string         `json:"data_version"`
	CacheTTLSeconds  int64          `json:"cache_ttl_seconds"`
}

type TaskResponse struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Enabled     bool      `json:"enabled"`
	Hidden      bool      `json:"hidden"`
	Triggers    []string  `json:"triggers"`
	Running     bool      `json:"running"`
	Progress    float64   `json:"progress"`
	RunID       string    `json:"run_id,omitempty"`
	LastStatus  string    `json:"last_status,omitempty"`
	LastStart   time.Time `json:"last_start,omitzero"`
	LastEnd     time.Time `json:"last_end,omitzero"`
	LastError   string    `json:"last_error,omitempty"`
	NextRun     time.Time `json:"next_run,omitzero"`
}

type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

type RunTaskResponse struct {
	Key   string `json:"key"`
	RunID string `json:"run_id"`
}

type HistoryEntryResponse struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Movie     string    `json:"movie"`
	MovieDir  string    `json:"movie_dir"`
	Status    string    `json:"status"`
	SourceURL string    `json:"source_url,omitempty"`
	Path      string    `json:"path,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
	Limit   int                    `json:"limit"`
}

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Channel() (*ChannelResponse, error) {
	var resp ChannelResponse
	if err := c.get("/api/v1/channel", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Items lists one page of a folder. An empty folderID lists the top menu.
func (c *Client) Items(folderID string, start, limit int) (*ItemsResponse, error) {
	q := url.Values{}
	if folderID != "" {
		q.Set("folder_id", folderID)
	}
	if start > 0 {
		q.Set("start", strconv.Itoa(start))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/channel/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ItemsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Image opens a channel image. The caller closes the returned body.
func (c *Client) Image(kind string) (io.ReadCloser, string, error) {
	resp, err := c.do(http.MethodGet, "/api/v1/channel/images/"+url.PathEscape(kind), http.StatusOK)
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) Tasks() (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := c.get("/api/v1/tasks", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Task(key string) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.get("/api/v1/tasks/"+url.PathEscape(key), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RunTask(key string) (*RunTaskResponse, error) {
	var resp RunTaskResponse
	if err := c.call(http.MethodPost, "/api/v1/tasks/"+url.PathEscape(key)+"/run", http.StatusAccepted, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CancelTask(key string) error {
	return c.call(http.MethodPost, "/api/v1/tasks/"+url.PathEscape(key)+"/cancel", http.StatusNoContent, nil)
}

func (c *Client) TrailerHistory(limit int) (*HistoryResponse, error) {
	path := "/api/v1/trailers/history"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp HistoryResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
