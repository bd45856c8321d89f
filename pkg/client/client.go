// Package client is the Go consumer of the storefront API: typed calls over
// the REST surface, a read cache with bounded staleness, and the cart plus
// checkout flow the shop front end runs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/udvasito/storefront/internal/app/domain/catalog"
)

// cacheTTL bounds how stale a cached read may be served.
const cacheTTL = 5 * time.Minute

type cacheEntry struct {
	data    []byte
	fetched time.Time
}

// Client talks to the storefront API. Reads are cached per resource path for
// cacheTTL and retried once on failure. Mutations never touch the cache;
// call Invalidate when a fresh read matters.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string
	cache map[string]cacheEntry
	now   func() time.Time
}

// New creates a client for the API at baseURL. A nil httpClient gets a
// 10-second-timeout default.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		cache:   make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Books lists the catalog.
func (c *Client) Books(ctx context.Context) ([]catalog.Book, error) {
	var books []catalog.Book
	if err := c.getCached(ctx, "/api/books", &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Portfolio lists the portfolio items.
func (c *Client) Portfolio(ctx context.Context) ([]catalog.PortfolioItem, error) {
	var items []catalog.PortfolioItem
	if err := c.getCached(ctx, "/api/portfolio", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Invalidate drops the cached copy of one resource path.
func (c *Client) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, path)
}

// Login exchanges the admin password for a session token used by subsequent
// mutations.
func (c *Client) Login(ctx context.Context, password string) error {
	var result struct {
		Token string `json:"token"`
	}
	body := map[string]string{"password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", body, &result); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = result.Token
	c.mu.Unlock()
	return nil
}

// CreateBook adds a book to the catalog.
func (c *Client) CreateBook(ctx context.Context, input catalog.BookInput) (catalog.Book, error) {
	var book catalog.Book
	err := c.doJSON(ctx, http.MethodPost, "/api/books", input, &book)
	return book, err
}

// UpdateBook applies a partial update to one book.
func (c *Client) UpdateBook(ctx context.Context, id int, patch catalog.BookPatch) (catalog.Book, error) {
	var book catalog.Book
	err := c.doJSON(ctx, http.MethodPatch, "/api/books/"+strconv.Itoa(id), patch, &book)
	return book, err
}

// DeleteBook removes one book. Absent ids succeed.
func (c *Client) DeleteBook(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/books/"+strconv.Itoa(id), nil, nil)
}

// CreatePortfolio adds a portfolio item.
func (c *Client) CreatePortfolio(ctx context.Context, input catalog.PortfolioInput) (catalog.PortfolioItem, error) {
	var item catalog.PortfolioItem
	err := c.doJSON(ctx, http.MethodPost, "/api/portfolio", input, &item)
	return item, err
}

// DeletePortfolio removes one portfolio item.
func (c *Client) DeletePortfolio(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/portfolio/"+strconv.Itoa(id), nil, nil)
}

// Upload sends one image as a multipart form and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filename),
	}
	header["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", serverError(resp.StatusCode, raw)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return result.URL, nil
}

// getCached serves path from the cache when fresh, otherwise fetches with a
// single retry and caches the raw body.
func (c *Client) getCached(ctx context.Context, path string, dst any) error {
	c.mu.Lock()
	entry, ok := c.cache[path]
	now := c.now()
	c.mu.Unlock()

	if ok && now.Sub(entry.fetched) < cacheTTL {
		return json.Unmarshal(entry.data, dst)
	}

	raw, err := c.get(ctx, path)
	if err != nil {
		raw, err = c.get(ctx, path)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cache[path] = cacheEntry{data: raw, fetched: c.now()}
	c.mu.Unlock()
	return json.Unmarshal(raw, dst)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp.StatusCode, raw)
	}
	return raw, nil
}

// doJSON issues one mutating request and decodes the response into dst when
// dst is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, dst any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return serverError(resp.StatusCode, raw)
	}
	if dst == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func (c *Client) authorize(req *http.Request) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// serverError surfaces the server-provided message, falling back to a
// generic one.
func serverError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("%s (status %d)", payload.Message, status)
	}
	return fmt.Errorf("request failed with status %d", status)
}
