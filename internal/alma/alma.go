// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package alma provides a minimal client for the Ex Libris Alma REST API,
// covering the configuration (sets) and acquisitions (PO lines) endpoints.
package alma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultDomain is the Alma API gateway for the Canadian region.
	DefaultDomain = "api-ca.hosted.exlibrisgroup.com"

	basePath = "/almaws/v1"

	// SetsPath is the path of the sets listing endpoint.
	SetsPath = basePath + "/conf/sets"

	// POLinesPath is the path of the PO lines endpoint.
	POLinesPath = basePath + "/acq/po-lines"

	// maxErrorBody bounds how much of a response body is kept for diagnostics.
	maxErrorBody = 1 << 20
)

// StatusError is returned when the Alma API answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: http status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client sends authenticated requests to a single Alma API domain.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New returns a client for the given domain. The domain is normally a host
// name such as [DefaultDomain], in which case https is used. A domain that
// already carries a scheme (for example "http://127.0.0.1:8080") is used as
// the base URL verbatim. If hc is nil a default http.Client is used.
func New(domain, apiKey string, hc *http.Client) *Client {
	baseURL := strings.TrimRight(domain, "/")
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    hc,
	}
}

// Set is an Alma set as returned by the sets listing.
type Set struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SetPage is one page of the sets listing. Sets is nil when the response
// did not contain a "set" key, which Alma does once the offset is past the
// end of the listing.
type SetPage struct {
	Sets             []Set `json:"set"`
	TotalRecordCount int   `json:"total_record_count"`
}

// Member is a single member of a set.
type Member struct {
	ID string `json:"id"`
}

// MemberPage is one page of a set's members. Members is nil when the
// response did not contain a "member" key.
type MemberPage struct {
	Members          []Member `json:"member"`
	TotalRecordCount int      `json:"total_record_count"`
}

// CheckAccess probes path with a single-item listing request and returns an
// error unless the API answers with a 2xx status.
func (c *Client) CheckAccess(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodGet, path, pageQuery(1, -1), nil)
	return err
}

// ListSets returns one page of the sets listing.
func (c *Client) ListSets(ctx context.Context, limit, offset int) (*SetPage, error) {
	body, err := c.do(ctx, http.MethodGet, SetsPath, pageQuery(limit, offset), nil)
	if err != nil {
		return nil, err
	}
	page := &SetPage{}
	if err := json.Unmarshal(body, page); err != nil {
		return nil, fmt.Errorf("decoding sets page at offset %d: %w", offset, err)
	}
	return page, nil
}

// ListMembers returns one page of the members of the set with the given id.
func (c *Client) ListMembers(ctx context.Context, setID string, limit, offset int) (*MemberPage, error) {
	path := fmt.Sprintf("%s/%s/members", SetsPath, url.PathEscape(setID))
	body, err := c.do(ctx, http.MethodGet, path, pageQuery(limit, offset), nil)
	if err != nil {
		return nil, err
	}
	page := &MemberPage{}
	if err := json.Unmarshal(body, page); err != nil {
		return nil, fmt.Errorf("decoding members page of set %s at offset %d: %w", setID, offset, err)
	}
	return page, nil
}

// GetPOLine returns the full JSON representation of a PO line.
func (c *Client) GetPOLine(ctx context.Context, id string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, poLinePath(id), nil, nil)
}

// PutPOLine replaces a PO line with the given JSON representation.
func (c *Client) PutPOLine(ctx context.Context, id string, doc []byte) error {
	_, err := c.do(ctx, http.MethodPut, poLinePath(id), nil, doc)
	return err
}

func poLinePath(id string) string {
	return POLinesPath + "/" + url.PathEscape(id)
}

// pageQuery builds limit/offset parameters. A negative offset is omitted.
func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if offset >= 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}

// do sends a request and returns the response body. Non-2xx responses are
// reported as a *StatusError holding the (bounded) body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	request, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "apikey "+c.apiKey)
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer response.Body.Close()

	slog.Debug("alma response", "method", method, "url", u, "status", response.StatusCode)
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		contents, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return nil, &StatusError{
			Method:     method,
			URL:        u,
			StatusCode: response.StatusCode,
			Body:       strings.TrimSpace(string(contents)),
		}
	}
	contents, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response: %w", method, u, err)
	}
	return contents, nil
}
