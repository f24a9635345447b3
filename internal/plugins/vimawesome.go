// Package plugins searches the vimawesome.com plugin catalogue.
package plugins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/cptaffe/gridhl/logger"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public catalogue API.
const DefaultBaseURL = "https://vimawesome.com/api/plugins"

// ErrStatus is returned for non-2xx responses.
var ErrStatus = errors.New("unexpected status")

// DescriptionList is one page of search results.
type DescriptionList struct {
	Plugins []Description `json:"plugins"`
}

// Description is one catalogue entry.  Optional fields are empty when the
// catalogue does not know them.
type Description struct {
	Name        string `json:"name"`
	GithubURL   string `json:"github_url,omitempty"`
	Author      string `json:"author,omitempty"`
	GithubStars int64  `json:"github_stars,omitempty"`
}

// Label returns "name by author", with "unknown" for a missing author.
func (d Description) Label() string {
	author := d.Author
	if author == "" {
		author = "unknown"
	}
	return d.Name + " by " + author
}

// Installable reports whether the entry carries a repository to install from.
func (d Description) Installable() bool {
	return d.GithubURL != ""
}

// Client queries the catalogue.  The zero value uses DefaultBaseURL and
// http.DefaultClient.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// Search fetches the first page of results for query.  An empty query
// lists the catalogue's default page; an empty body is an empty list.
func (c *Client) Search(ctx context.Context, query string) (DescriptionList, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}

	u, err := url.Parse(base)
	if err != nil {
		return DescriptionList{}, fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("page", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return DescriptionList{}, err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return DescriptionList{}, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return DescriptionList{}, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return DescriptionList{}, fmt.Errorf("read body: %w", err)
	}
	var list DescriptionList
	if len(body) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(body, &list); err != nil {
		return DescriptionList{}, fmt.Errorf("decode results: %w", err)
	}
	return list, nil
}

// Call runs Search on a background goroutine and hands the result to cb
// through post, which must run its argument on the caller's UI goroutine.
func (c *Client) Call(ctx context.Context, query string, post func(func()), cb func(DescriptionList, error)) {
	go func() {
		list, err := c.Search(ctx, query)
		if err != nil {
			logger.L(ctx).Debug("plugin search failed", zap.String("query", query), zap.Error(err))
		}
		post(func() { cb(list, err) })
	}()
}
