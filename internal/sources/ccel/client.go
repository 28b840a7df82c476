package ccel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/logger"
)

const (
	DefaultBaseURL = "https://ccel.org/ccel/augustine/"

	defaultTimeout = 20 * time.Second
	// maxPageSize bounds the body read from one chapter page.
	maxPageSize = 4 << 20
)

var (
	ErrNotFound = errors.New("ccel: chapter not found")
	ErrEmpty    = errors.New("ccel: no text in page")
)

// Client fetches chapter pages.
type Client struct {
	http    *http.Client
	baseURL string
	log     logger.Logger
}

func New(log logger.Logger) *Client {
	return NewWithBaseURL(DefaultBaseURL, log)
}

// NewWithBaseURL points the client at a mirror of the augustine directory.
func NewWithBaseURL(baseURL string, log logger.Logger) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: baseURL,
		log:     log,
	}
}

// URL returns the page address of c.
func (cl *Client) URL(c Chapter) string {
	return cl.baseURL + c.path()
}

// Fetch downloads the page of c and returns its cleaned text, headings included.
func (cl *Client) Fetch(ctx context.Context, c Chapter) (string, error) {
	url := cl.URL(c)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", "confessio/1.0")

	cl.log.Debug("ccel request", logger.String("url", url))

	resp, err := cl.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("ccel: unexpected status %d", resp.StatusCode)
	}

	text, err := Extract(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", err
	}
	return Clean(text, c), nil
}
