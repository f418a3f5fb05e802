package view

import (
	"bytes"
	"context"

	"door-backend/lib/scrapers/door/core"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/door/view")

// Client bundles the read-only extractors. each method is pure with
// respect to its inputs except for the document fetch itself: entities
// are built fresh per call and nothing is cached. the login state of
// the underlying session is an implied input for every method.
type Client struct {
	Core *core.Client
}

func NewClient(coreClient *core.Client) Client {
	return Client{Core: coreClient}
}

func (c Client) fetchDocument(ctx context.Context, endpoint string) (*goquery.Document, error) {
	res, err := c.Core.Http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}
