package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"

	defaultBaseURL   = "https://www.googleapis.com"
	requestTimeout   = 15 * time.Second
	listPageSize     = 100
	maxImagePageSize = 200
)

// Store is the external hierarchical file store the gallery reads from.
type Store interface {
	ListRootFolders(ctx context.Context) ([]Folder, error)
	ListChildFolders(ctx context.Context, parentID string) ([]Folder, error)

	// GetFolder fetches single-folder metadata. Returns nil, nil when the
	// identifier does not exist or is not a folder.
	GetFolder(ctx context.Context, id string) (*Folder, error)

	// FindFolderByName looks a folder up by its exact name. Returns
	// nil, nil when no folder carries that name.
	FindFolderByName(ctx context.Context, name string) (*Folder, error)

	ListImages(ctx context.Context, folderID string, limit int) ([]Photo, error)

	// Download streams a file's raw bytes. Returns the body, the
	// store-reported content type (possibly empty), and an error.
	Download(ctx context.Context, fileID string) (io.ReadCloser, string, error)
}

// Client is a thin wrapper over the Drive v3 REST surface. No retries;
// store-level errors propagate to the caller.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

func NewClient(ctx context.Context, creds *Credentials, logger *slog.Logger) *Client {
	httpClient := oauth2.NewClient(ctx, creds.Source)
	httpClient.Timeout = requestTimeout

	logger.Info("Google Drive client initialized", "mode", creds.Mode)

	return &Client{
		http:    httpClient,
		baseURL: defaultBaseURL,
		logger:  logger,
	}
}

type fileList struct {
	Files []json.RawMessage `json:"files"`
}

func (c *Client) ListRootFolders(ctx context.Context) ([]Folder, error) {
	return c.listFolders(ctx, "mimeType='"+folderMimeType+"' and trashed=false")
}

func (c *Client) ListChildFolders(ctx context.Context, parentID string) ([]Folder, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", parentID, folderMimeType)
	return c.listFolders(ctx, q)
}

func (c *Client) listFolders(ctx context.Context, query string) ([]Folder, error) {
	body, err := c.list(ctx, query, "files(id, name, createdTime, modifiedTime)", listPageSize)
	if err != nil {
		return nil, err
	}

	folders := make([]Folder, 0, len(body.Files))
	for _, raw := range body.Files {
		var f Folder
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("failed to decode folder entry: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, nil
}

func (c *Client) FindFolderByName(ctx context.Context, name string) (*Folder, error) {
	escaped := strings.ReplaceAll(name, `'`, `\'`)
	q := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escaped, folderMimeType)

	folders, err := c.listFolders(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(folders) == 0 {
		return nil, nil
	}
	return &folders[0], nil
}

func (c *Client) GetFolder(ctx context.Context, id string) (*Folder, error) {
	u := fmt.Sprintf("%s/drive/v3/files/%s?fields=%s", c.baseURL,
		url.PathEscape(id), url.QueryEscape("id, name, mimeType, createdTime, modifiedTime"))

	resp, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpError("fetch folder metadata", resp)
	}

	var meta struct {
		Folder
		MimeType string `json:"mimeType"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode folder metadata: %w", err)
	}

	if meta.MimeType != folderMimeType {
		return nil, nil
	}
	return &meta.Folder, nil
}

func (c *Client) ListImages(ctx context.Context, folderID string, limit int) ([]Photo, error) {
	if limit <= 0 || limit > maxImagePageSize {
		limit = maxImagePageSize
	}

	q := fmt.Sprintf("'%s' in parents and mimeType contains 'image' and trashed=false", folderID)
	body, err := c.list(ctx, q, "files(id, name, mimeType, createdTime, webViewLink, webContentLink)", limit)
	if err != nil {
		return nil, err
	}

	photos := make([]Photo, 0, len(body.Files))
	for _, raw := range body.Files {
		var p Photo
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to decode file entry: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, nil
}

func (c *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	u := fmt.Sprintf("%s/drive/v3/files/%s?alt=media", c.baseURL, url.PathEscape(fileID))

	resp, err := c.do(ctx, u)
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, "", httpError("download file", resp)
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) list(ctx context.Context, query, fields string, pageSize int) (*fileList, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("spaces", "drive")
	params.Set("fields", fields)
	params.Set("pageSize", strconv.Itoa(pageSize))

	u := c.baseURL + "/drive/v3/files?" + params.Encode()

	resp, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpError("list files", resp)
	}

	var body fileList
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode file list: %w", err)
	}
	return &body, nil
}

func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive request failed: %w", err)
	}
	return resp, nil
}

func httpError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("failed to %s: drive returned %d: %s", op, resp.StatusCode, string(snippet))
}
