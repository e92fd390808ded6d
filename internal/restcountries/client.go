// Package restcountries fetches the full country collection from the
// REST Countries API (v3.1).
package restcountries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/globalvillage/api/internal/worldatlas"
)

// DefaultBaseURL is the public REST Countries endpoint.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// fields constrains the API projection to what the pipeline consumes.
const fields = "name,region,subregion,flags,capital,population,area,languages,currencies,timezones,independent"

// ErrFetchFailed marks a network error or non-2xx response from the
// country source. Terminal for the current operation; callers surface
// one inline notice and never fall back to partial data.
var ErrFetchFailed = errors.New("country fetch failed")

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	coll       *collate.Collator
}

// NewClient builds a client against baseURL (DefaultBaseURL when
// empty), limited to rps upstream requests per second.
func NewClient(baseURL, userAgent string, rps int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		coll:       collate.New(language.English, collate.IgnoreCase),
	}
}

// All issues one GET for the whole collection with the field projection
// and returns it sorted ascending by common name (locale-aware). A
// non-2xx response or transport error returns ErrFetchFailed; there is
// no retry and never a partial result. Filtering and normalization are
// the caller's concern.
func (c *Client) All(ctx context.Context) ([]worldatlas.RawCountry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := c.baseURL + "/all?fields=" + fields
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	var countries []worldatlas.RawCountry
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrFetchFailed, err)
	}

	slices.SortStableFunc(countries, func(a, b worldatlas.RawCountry) int {
		return c.coll.CompareString(a.Name.Common, b.Name.Common)
	})
	return countries, nil
}
