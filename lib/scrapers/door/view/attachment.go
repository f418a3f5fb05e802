package view

import (
	"context"
	"regexp"

	"door-backend/lib/htmlutil"
)

type Attachment struct {
	Title string
	Link  string
}

// attachmentsFromCell enumerates every anchor inside the given cell;
// anchors without a resolvable link are excluded.
func attachmentsFromCell(ctx context.Context, cell htmlutil.Cell) []Attachment {
	if cell.Node == nil {
		return nil
	}
	var attachments []Attachment
	for _, anchor := range htmlutil.GetAnchors(ctx, cell.Node.Find("a")) {
		if anchor.Href == "" {
			continue
		}
		attachments = append(attachments, Attachment{
			Title: anchor.Name,
			Link:  anchor.Href,
		})
	}
	return attachments
}

func cellHtml(cell htmlutil.Cell) string {
	if cell.Node == nil {
		return ""
	}
	contents, err := cell.Node.Html()
	if err != nil {
		return ""
	}
	return contents
}

func matchGroup(pattern *regexp.Regexp, text string) string {
	groups := pattern.FindStringSubmatch(text)
	if len(groups) < 2 {
		return ""
	}
	return groups[1]
}
