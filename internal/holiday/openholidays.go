package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

// ClientOptions configures an OpenHolidaysClient.
type ClientOptions struct {
	BaseURL  string
	Country  string
	Language string
	Timeout  time.Duration
	// Token, when set, is sent as a bearer token on every request.
	Token string
}

// OpenHolidaysClient fetches public holidays from an openholidaysapi.org
// compatible endpoint.
type OpenHolidaysClient struct {
	httpClient *http.Client
	baseURL    string
	country    string
	language   string
}

// publicHoliday is the subset of the API payload the calendar needs.
type publicHoliday struct {
	StartDate string `json:"startDate"`
}

// NewOpenHolidaysClient creates a client. A bearer token is attached through
// an oauth2 transport; without one a plain http.Client is used.
func NewOpenHolidaysClient(ctx context.Context, opts ClientOptions) *OpenHolidaysClient {
	var hc *http.Client
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
		hc = oauth2.NewClient(ctx, ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = opts.Timeout

	return &OpenHolidaysClient{
		httpClient: hc,
		baseURL:    opts.BaseURL,
		country:    opts.Country,
		language:   opts.Language,
	}
}

// PublicHolidays returns the start date of every public holiday in year.
// Any transport, status or decoding problem is returned as an error; the
// request is never retried.
func (c *OpenHolidaysClient) PublicHolidays(ctx context.Context, year int) ([]time.Time, error) {
	params := url.Values{
		"countryIsoCode":  {c.country},
		"languageIsoCode": {c.language},
		"validFrom":       {fmt.Sprintf("%04d-01-01", year)},
		"validTo":         {fmt.Sprintf("%04d-12-31", year)},
	}
	endpoint := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("holiday API error %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var payload []publicHoliday
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding holiday response: %w", err)
	}

	dates := make([]time.Time, 0, len(payload))
	for _, h := range payload {
		d, err := parseStartDate(h.StartDate)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// parseStartDate accepts an ISO date, optionally followed by a time part.
func parseStartDate(s string) (time.Time, error) {
	if len(s) < len("2006-01-02") {
		return time.Time{}, fmt.Errorf("invalid startDate %q", s)
	}
	d, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid startDate %q: %w", s, err)
	}
	return d, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
