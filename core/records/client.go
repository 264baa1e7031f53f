package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-events-api/core/constants"
	apperrors "go-events-api/core/errors"
	"go-events-api/core/logger"
)

// Client talks to the records store's REST API. It is constructed once at
// startup and threaded through the repositories; there is no package-level
// singleton.
type Client struct {
	baseURL    string
	apiKey     string
	baseID     string
	httpClient *http.Client
}

type ClientConfig struct {
	BaseURL string
	APIKey  string
	BaseID  string
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" || cfg.BaseID == "" {
		return nil, fmt.Errorf("records: missing API key or base id")
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		baseID:     cfg.BaseID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type recordsPage struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type writeBody struct {
	Records []writeRecord `json:"records"`
}

type writeRecord struct {
	ID     string `json:"id,omitempty"`
	Fields Fields `json:"fields"`
}

// Select returns records matching opts, following the store's page offsets
// until done or MaxRecords is reached.
func (c *Client) Select(ctx context.Context, table string, opts SelectOptions) ([]Record, error) {
	var out []Record
	offset := ""
	for {
		q := url.Values{}
		if opts.Filter != nil {
			q.Set("filterByFormula", opts.Filter.Formula())
		}
		if opts.MaxRecords > 0 {
			q.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
		}
		for _, f := range opts.Fields {
			q.Add("fields[]", f)
		}
		if offset != "" {
			q.Set("offset", offset)
		}

		endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.baseID, url.PathEscape(table), q.Encode())
		var page recordsPage
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, err
		}
		out = append(out, page.Records...)

		if page.Offset == "" {
			break
		}
		if opts.MaxRecords > 0 && len(out) >= opts.MaxRecords {
			out = out[:opts.MaxRecords]
			break
		}
		offset = page.Offset
	}
	return out, nil
}

// Create inserts records, splitting into batches of the store's write limit.
func (c *Client) Create(ctx context.Context, table string, fields []Fields) ([]Record, error) {
	var created []Record
	for start := 0; start < len(fields); start += constants.RecordsWriteBatchLimit {
		end := min(start+constants.RecordsWriteBatchLimit, len(fields))
		body := writeBody{}
		for _, f := range fields[start:end] {
			body.Records = append(body.Records, writeRecord{Fields: f})
		}

		endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))
		var page recordsPage
		if err := c.do(ctx, http.MethodPost, endpoint, body, &page); err != nil {
			return created, err
		}
		created = append(created, page.Records...)
	}
	return created, nil
}

// Update overwrites fields on existing records, batched like Create.
func (c *Client) Update(ctx context.Context, table string, updates []Update) ([]Record, error) {
	var updated []Record
	for start := 0; start < len(updates); start += constants.RecordsWriteBatchLimit {
		end := min(start+constants.RecordsWriteBatchLimit, len(updates))
		body := writeBody{}
		for _, u := range updates[start:end] {
			body.Records = append(body.Records, writeRecord{ID: u.ID, Fields: u.Fields})
		}

		endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table))
		var page recordsPage
		if err := c.do(ctx, http.MethodPatch, endpoint, body, &page); err != nil {
			return updated, err
		}
		updated = append(updated, page.Records...)
	}
	return updated, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, dest any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrRecordsStore, "encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrRecordsStore, "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("RecordsClient:do:RequestError", err, "method", method)
		return apperrors.NewAppError(apperrors.ErrRecordsStore, "records store request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NewAppError(apperrors.ErrNotFound, "records store: not found", nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		logger.Error("RecordsClient:do:APIError", "status", resp.StatusCode, "body", string(raw))
		return apperrors.NewAppError(apperrors.ErrRecordsStore,
			fmt.Sprintf("records store returned status %d", resp.StatusCode), nil)
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return apperrors.NewAppError(apperrors.ErrRecordsStore, "decode response", err)
		}
	}
	return nil
}
