package view

import (
	"context"
	"io"
	"net/http"
	"strings"

	"door-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// the upload field is not always rendered when the submission window
// is closed; the portal still accepts this field name
const defaultFileKey = "TFFile"

// SubmissionForm describes the portal's submission form: the target,
// the server-rendered default fields, and which field names carry the
// free-text contents and the file upload. FileKey is always set,
// ContentsKey may be empty when no text field could be located.
type SubmissionForm struct {
	Url     string
	Method  string
	Enctype string
	Fields  map[string]string

	ContentsKey string
	FileKey     string
}

// Submission is the state of the user's submission panel. Submitted is
// derived, never directly observed: the portal renders no explicit
// submitted marker on the detail page.
type Submission struct {
	Contents    string
	Attachments []Attachment
	Submitted   bool
	Form        SubmissionForm
}

func parseSubmission(ctx context.Context, table *goquery.Selection, formSel *goquery.Selection) Submission {
	record := htmlutil.ParseInformaticTable(table)

	// the label is rendered with and without the inner space depending
	// on the board
	contents := record["제출 내용"]
	if contents.Node == nil {
		contents = record["제출내용"]
	}
	fileCell := record["첨부파일"]

	var attachments []Attachment
	if fileCell.Node != nil {
		anchors := htmlutil.GetAnchors(ctx, fileCell.Node.Find(".filelist .fileitembox a[title='다운로드']"))
		for _, anchor := range anchors {
			if anchor.Href == "" {
				continue
			}
			attachments = append(attachments, Attachment{
				Title: anchor.Name,
				Link:  anchor.Href,
			})
		}
	}

	form := htmlutil.ParseForm(formSel)

	contentsKey := ""
	if contents.Node != nil {
		contentsKey = contents.Node.Find("*[name]").First().AttrOr("name", "")
	}
	fileKey := ""
	if fileCell.Node != nil {
		fileKey = fileCell.Node.Find("*[type=file]").First().AttrOr("name", "")
	}
	if fileKey == "" {
		fileKey = defaultFileKey
	}

	return Submission{
		Contents:    contents.Text,
		Attachments: attachments,
		Submitted:   len(contents.Text) > 0 || len(attachments) > 0,
		Form: SubmissionForm{
			Url:         form.Url,
			Method:      form.Method,
			Enctype:     form.Enctype,
			Fields:      form.Fields,
			ContentsKey: contentsKey,
			FileKey:     fileKey,
		},
	}
}

// Submit posts a submission form back to the portal, carrying the
// form's server-rendered default fields plus the given free-text
// contents and optional file. the multipart encoder supplies its own
// content type, overriding the session-wide form-urlencoded default.
func (c Client) Submit(ctx context.Context, form SubmissionForm, contents string, filename string, file io.Reader) error {
	ctx, span := tracer.Start(ctx, "client:Submit")
	defer span.End()

	fields := map[string]string{}
	for key, value := range form.Fields {
		fields[key] = value
	}
	if form.ContentsKey != "" && contents != "" {
		fields[form.ContentsKey] = contents
	}

	req := c.Core.Http.R().
		SetContext(ctx).
		SetMultipartFormData(fields)
	if file != nil {
		req.SetFileReader(form.FileKey, filename, file)
	}

	var err error
	switch strings.ToUpper(form.Method) {
	case http.MethodGet:
		_, err = req.Get(form.Url)
	default:
		_, err = req.Post(form.Url)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit form")
		return err
	}
	return nil
}
