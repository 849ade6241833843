package saints

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
)

const (
	// DefaultBaseURL is the site listing the saints of each month.
	DefaultBaseURL = "https://liguesaintamedee.ch/"

	defaultFetchTimeout = 15 * time.Second
	defaultUserAgent    = "saint-du-jour/1.0"
)

// PageFetcher downloads and parses the page listing the saints of a month.
type PageFetcher interface {
	FetchMonth(ctx context.Context, month string) (*goquery.Document, error)
	// BaseURL is the URL relative image sources on fetched pages resolve against.
	BaseURL() *url.URL
}

// FetchError reports a month page that could not be retrieved, either because the
// request itself failed or because the site answered with a non-success status.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("page fetch failed for %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("page fetch failed for %s: HTTP %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetcherOptions configures the HTTP fetcher.
type FetcherOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Fetcher retrieves month pages over HTTP. Certificates are always verified.
type Fetcher struct {
	client *resty.Client
	base   *url.URL
}

var _ PageFetcher = (*Fetcher)(nil)

// NewFetcher validates the options and builds a fetcher.
func NewFetcher(opts FetcherOptions) (*Fetcher, error) {
	rawBase := strings.TrimSpace(opts.BaseURL)
	if rawBase == "" {
		rawBase = DefaultBaseURL
	}
	if !strings.HasSuffix(rawBase, "/") {
		rawBase += "/"
	}

	base, err := url.Parse(rawBase)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid base url: %s", rawBase)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, eris.Errorf("base url must be http or https: %s", rawBase)
	}
	if base.Host == "" {
		return nil, eris.Errorf("base url has no host: %s", rawBase)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(timeout)

	return &Fetcher{client: client, base: base}, nil
}

// BaseURL returns a copy of the site root.
func (f *Fetcher) BaseURL() *url.URL {
	copied := *f.base
	return &copied
}

// MonthURL returns the address of the page listing the saints of month.
func (f *Fetcher) MonthURL(month string) string {
	return f.base.String() + "saints-" + MonthSlug(month) + ".html"
}

// FetchMonth downloads and parses the month page. Transport failures and
// non-2xx answers are both reported as *FetchError.
func (f *Fetcher) FetchMonth(ctx context.Context, month string) (*goquery.Document, error) {
	if strings.TrimSpace(month) == "" {
		return nil, eris.New("month name is required")
	}

	pageURL := f.MonthURL(month)

	resp, err := f.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &FetchError{URL: pageURL, Status: resp.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, eris.Wrapf(err, "parsing month page %s", pageURL)
	}

	return doc, nil
}
