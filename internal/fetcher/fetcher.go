package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"
)

// ErrDisallowed is returned when robots.txt forbids fetching a URL.
var ErrDisallowed = errors.New("fetcher: disallowed by robots.txt")

// FetchResult contains the extracted data from a webpage
type FetchResult struct {
	URL        string
	Title      string
	Text       string // Visible text, whitespace collapsed
	StatusCode int
}

type Fetcher struct {
	client      *http.Client
	userAgent   string
	checkRobots bool
}

func NewFetcher(timeout time.Duration, userAgent string, checkRobots bool) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:   userAgent,
		checkRobots: checkRobots,
	}
}

// Fetch downloads a webpage and extracts its text
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}

	if f.checkRobots {
		allowed, err := f.allowed(ctx, u)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
		}
	}

	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	result := &FetchResult{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	title, text, err := ParseHTML(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}
	result.Title = title
	result.Text = text

	return result, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	return resp, nil
}

// allowed consults the host's robots.txt. A missing robots.txt allows
// everything; a server error disallows everything.
func (f *Fetcher) allowed(ctx context.Context, u *url.URL) (bool, error) {
	robotsURL := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}).String()
	resp, err := f.get(ctx, robotsURL)
	if err != nil {
		return false, fmt.Errorf("robots.txt: %w", err)
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return false, fmt.Errorf("failed to parse robots.txt: %w", err)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return robots.TestAgent(path, f.userAgent), nil
}

// ParseHTML extracts the title and visible text of an HTML document.
func ParseHTML(body io.Reader) (title, text string, err error) {
	tokenizer := html.NewTokenizer(body)
	var textBuilder strings.Builder
	inScript := false
	inStyle := false
	inTitle := false

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return title, cleanText(textBuilder.String()), nil
			}
			return "", "", tokenizer.Err()

		case html.StartTagToken:
			switch tokenizer.Token().Data {
			case "script":
				inScript = true
			case "style":
				inStyle = true
			case "title":
				inTitle = true
			}

		case html.EndTagToken:
			switch tokenizer.Token().Data {
			case "script":
				inScript = false
			case "style":
				inStyle = false
			case "title":
				inTitle = false
			}

		case html.TextToken:
			data := tokenizer.Token().Data
			if inTitle {
				title = strings.TrimSpace(data)
				continue
			}
			if !inScript && !inStyle {
				if t := strings.TrimSpace(data); t != "" {
					textBuilder.WriteString(t + " ")
				}
			}
		}
	}
}

// cleanText removes excessive whitespace
func cleanText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
