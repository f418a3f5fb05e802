package core

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"door-backend/lib/restyutil"
	"door-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "http://door.deu.ac.kr"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	// the portal responds 500 Internal to the usual Accept header and
	// only understands form-urlencoded request bodies
	client.SetHeader("Accept", "*/*")
	client.SetHeader("Content-Type", "application/x-www-form-urlencoded")
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/door/http")
	restyutil.DumpClient(client, restyInstrumentOutput)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

// SetSessionId seeds the ASP.NET session cookie produced by an
// external login flow, so subsequent fetches ride that session.
func (c *Client) SetSessionId(sessionId string) {
	c.Http.SetCookie(&http.Cookie{
		Name:   "ASP.NET_SessionId",
		Value:  sessionId,
		Domain: c.BaseUrl.Hostname(),
		Path:   "/",
	})
}
