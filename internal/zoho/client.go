package zoho

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"leadboard_backend/platform/config"
	"leadboard_backend/platform/logger"
)

const (
	perPage = 200

	// fieldProjection keeps page payloads small; only the columns the
	// normalized row model needs.
	fieldProjection = "id,First_Name,Last_Name,Email,Phone,Company,Owner,Lead_Status,Lead_Source,Created_Time,Rating,Description"
)

// TokenSource yields an access token for a page request. force requests a
// fresh token, bypassing any cache; the fetch loop uses it when the CRM
// answers 401 mid-snapshot.
type TokenSource func(ctx context.Context, force bool) (string, error)

// ProgressFunc observes pagination progress: the page just fetched and the
// monotonic total of records accumulated so far.
type ProgressFunc func(page, fetched int)

// Client is the HTTP client for the Zoho CRM API.
type Client struct {
	httpClient *http.Client
	cfg        config.ZohoConfig
	log        *logger.Logger
}

// NewClient creates a new CRM API client.
func NewClient(cfg config.ZohoConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
		log:        log,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ExchangeToken trades the long-lived refresh token for an access token.
// No retry here: a failed exchange fails the whole fetch cycle.
func (c *Client) ExchangeToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.GetZohoClientID())
	form.Set("client_secret", c.cfg.GetZohoClientSecret())
	form.Set("refresh_token", c.cfg.GetZohoRefreshToken())
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GetZohoAccountsURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("token_exchange", 0, err)
		return "", &AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBody(resp.Body)
		authErr := &AuthError{Status: resp.StatusCode, Body: body}
		c.log.UpstreamError("token_exchange", resp.StatusCode, authErr)
		return "", authErr
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", &AuthError{Status: resp.StatusCode, Err: err}
	}
	if token.AccessToken == "" {
		return "", &AuthError{Status: resp.StatusCode, Body: "response missing access_token"}
	}

	return token.AccessToken, nil
}

type leadsPage struct {
	Data []RawLead `json:"data"`
	Info struct {
		MoreRecords bool `json:"more_records"`
	} `json:"info"`
}

// FetchAll pages through the Leads collection until the server signals no
// more records or a page comes back empty. A 401 on any page forces one
// transparent token re-acquisition before the page is retried; a second
// failure aborts. On abort the accumulated partial result travels inside
// the returned *FetchError.
func (c *Client) FetchAll(ctx context.Context, tokens TokenSource, progress ProgressFunc) ([]RawLead, error) {
	var all []RawLead

	token, err := tokens(ctx, false)
	if err != nil {
		return nil, err
	}

	for page := 1; ; page++ {
		leads, more, refreshedToken, err := c.fetchPage(ctx, tokens, token, page)
		if err != nil {
			if fe, ok := err.(*FetchError); ok {
				fe.Partial = all
			}
			return all, err
		}
		if refreshedToken != "" {
			token = refreshedToken
		}

		if len(leads) == 0 {
			break
		}

		all = append(all, leads...)
		c.log.FetchProgress(page, len(all))
		if progress != nil {
			progress(page, len(all))
		}

		if !more {
			break
		}
	}

	return all, nil
}

// fetchPage fetches one page, retrying once with a forced token refresh on
// 401 (the token cache can expire mid-snapshot). It returns the refreshed
// token (if any) so the loop keeps using it for later pages.
func (c *Client) fetchPage(ctx context.Context, tokens TokenSource, token string, page int) ([]RawLead, bool, string, error) {
	leads, more, status, body, err := c.doPage(ctx, token, page)
	if err == nil && status == 0 {
		return leads, more, "", nil
	}
	if err != nil {
		c.log.UpstreamError("fetch_leads", 0, err)
		return nil, false, "", &FetchError{Page: page, Err: err}
	}

	if status == http.StatusUnauthorized {
		fresh, tokenErr := tokens(ctx, true)
		if tokenErr != nil {
			return nil, false, "", &FetchError{Page: page, Status: status, Body: body, Err: tokenErr}
		}

		leads, more, status, body, err = c.doPage(ctx, fresh, page)
		if err == nil && status == 0 {
			return leads, more, fresh, nil
		}
		if err != nil {
			return nil, false, "", &FetchError{Page: page, Err: err}
		}
	}

	fetchErr := &FetchError{Page: page, Status: status, Body: body}
	c.log.UpstreamError("fetch_leads", status, fetchErr)
	return nil, false, "", fetchErr
}

// doPage executes a single page request. A non-2xx response is reported via
// the status/body returns, not as an error.
func (c *Client) doPage(ctx context.Context, token string, page int) ([]RawLead, bool, int, string, error) {
	reqURL := c.cfg.GetZohoAPIBaseURL() + "/Leads"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, 0, "", err
	}

	params := url.Values{}
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	params.Set("fields", fieldProjection)
	req.URL.RawQuery = params.Encode()

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, 0, "", err
	}
	defer resp.Body.Close()

	// 204 means an empty page past the end of the collection.
	if resp.StatusCode == http.StatusNoContent {
		return nil, false, 0, "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, resp.StatusCode, readBody(resp.Body), nil
	}

	var body leadsPage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, 0, "", err
	}

	return body.Data, body.Info.MoreRecords, 0, "", nil
}

func readBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	return string(data)
}
