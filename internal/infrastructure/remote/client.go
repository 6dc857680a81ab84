// Package remote ходит в HTTP API сервера сканов.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

// StatusError ответ сервера с неуспешным статусом. Error() возвращает текст статуса.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return e.Text
}

// Client клиент сервера сканов и областей
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient создаёт клиента для сервера с адресом baseURL
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: base, http: httpClient}, nil
}

// FetchVolume скачивает объём скана целиком
func (c *Client) FetchVolume(ctx context.Context, scanID string) ([]byte, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("get-scan", scanID), nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return io.ReadAll(body)
}

// Metadata возвращает описание скана
func (c *Client) Metadata(ctx context.Context, scanID string) (*entity.ScanMetadata, error) {
	var meta entity.ScanMetadata
	if err := c.getJSON(ctx, c.endpoint("view-scan", scanID), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Worklist возвращает список исследований
func (c *Client) Worklist(ctx context.Context) ([]entity.WorklistItem, error) {
	var items []entity.WorklistItem
	if err := c.getJSON(ctx, c.endpoint(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListROIs(ctx context.Context, scanID string, slice int) ([]entity.ROI, error) {
	var rois []entity.ROI
	if err := c.getJSON(ctx, c.endpoint("get-rois", scanID, strconv.Itoa(slice)), &rois); err != nil {
		return nil, err
	}
	return rois, nil
}

func (c *Client) AddROI(ctx context.Context, req entity.AddROIRequest) (*entity.ROI, error) {
	var roi entity.ROI
	if err := c.postJSON(ctx, "add-roi", req, &roi); err != nil {
		return nil, err
	}
	return &roi, nil
}

func (c *Client) DeleteROI(ctx context.Context, scanID, id string) error {
	return c.postJSON(ctx, "delete-roi", entity.DeleteROIRequest{ScanID: scanID, ID: id}, nil)
}

func (c *Client) Save(ctx context.Context, scanID string) error {
	return c.postJSON(ctx, "save", entity.SaveRequest{ScanID: scanID}, nil)
}

func (c *Client) ListGroups(ctx context.Context, scanID string) ([]entity.ROIGroup, error) {
	var groups []entity.ROIGroup
	if err := c.getJSON(ctx, c.endpoint("get-roi-groups", scanID), &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Suggest просит сервер найти кандидатов на срезе
func (c *Client) Suggest(ctx context.Context, scanID string, slice int) (*entity.Suggestion, error) {
	var s entity.Suggestion
	if err := c.getJSON(ctx, c.endpoint("suggest-rois", scanID, strconv.Itoa(slice)), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.base.String() + strings.Join(escaped, "/")
}

func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	u := c.endpoint(path)
	body, err := c.do(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, body)
		return nil
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, u string, body io.Reader) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Text: http.StatusText(resp.StatusCode)}
	}
	return resp.Body, nil
}

var (
	_ port.VolumeFetcher = (*Client)(nil)
	_ port.ROIClient     = (*Client)(nil)
)
