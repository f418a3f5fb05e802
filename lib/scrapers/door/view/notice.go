package view

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"door-backend/lib/htmlutil"
	"door-backend/lib/scrapers/door/core"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Notice is a course notice board post. list rows carry no body or
// attachments, so entities built from them are Partial; fetching the
// detail page yields the complete entity under the same identity.
type Notice struct {
	Id       string
	CourseId string

	Title     string
	Author    string
	CreatedAt time.Time
	Views     int
	// whether the post has been read; the detail fetch marks the post
	// read server-side
	Noted bool

	Contents    string
	Attachments []Attachment

	Partial bool
}

// the notice id is only available as a path segment in the row's link
var noticeIdPattern = regexp.MustCompile(`CourseNotice/(\w+)`)

// skip reasons for rows a listing cannot turn into an entity. dropped
// rows surface as span events rather than failures so one malformed
// row never takes down a whole board.
var (
	errRowNoId        = errors.New("row link carries no recognizable id")
	errRowNoDate      = errors.New("row carries no parseable date")
	errRowPlaceholder = errors.New("row is an empty-board placeholder")
)

func droppedRow(span trace.Span, index int, reason error) {
	span.AddEvent("dropped row", trace.WithAttributes(
		attribute.Int("index", index),
		attribute.String("reason", reason.Error()),
	))
}

func noticeFromRow(courseId string, row htmlutil.Record) (Notice, error) {
	id := matchGroup(noticeIdPattern, row["제목"].Href)
	if id == "" {
		return Notice{}, errRowNoId
	}
	createdAt, ok := core.ParseDate(row["등록일"].Text)
	if !ok {
		return Notice{}, errRowNoDate
	}
	views, _ := strconv.Atoi(row["조회"].Text)

	noted := false
	if cell := row["읽음"]; cell.Node != nil {
		noted = cell.Node.Find("img[alt='확인']").Length() > 0
	}

	return Notice{
		Id:        id,
		CourseId:  courseId,
		Title:     row["제목"].Text,
		Author:    row["작성자"].Text,
		CreatedAt: createdAt,
		Views:     views,
		Noted:     noted,
		Partial:   true,
	}, nil
}

func (c Client) Notices(ctx context.Context, courseId string) ([]Notice, error) {
	ctx, span := tracer.Start(ctx, "client:Notices")
	defer span.End()
	span.SetAttributes(attribute.String("course_id", courseId))

	endpoint := fmt.Sprintf("/BBS/Board/List/CourseNotice?cNo=%s&pageRowSize=200", courseId)
	doc, err := c.fetchDocument(ctx, endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}

	table := doc.Find("#sub_content2 > div.form_table > table")
	if table.Length() == 0 {
		err := &core.UnauthorizedError{Message: "공지사항 목록을 불러올 수 없습니다. 로그인 상태를 확인해주세요."}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var notices []Notice
	for i, row := range htmlutil.ParseTable(table) {
		notice, err := noticeFromRow(courseId, row)
		if err != nil {
			droppedRow(span, i, err)
			continue
		}
		notices = append(notices, notice)
	}

	return notices, nil
}

func (c Client) Notice(ctx context.Context, courseId, id string) (Notice, error) {
	ctx, span := tracer.Start(ctx, "client:Notice")
	defer span.End()
	span.SetAttributes(
		attribute.String("course_id", courseId),
		attribute.String("notice_id", id),
	)

	// requesting /BBS/Board/Read marks the post "read" server-side and
	// then renders the detail view
	endpoint := fmt.Sprintf("/BBS/Board/Read/CourseNotice/%s?cNo=%s", id, courseId)
	doc, err := c.fetchDocument(ctx, endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Notice{}, err
	}

	table := doc.Find("#boardForm > div.form_table > table")
	if table.Length() == 0 {
		err := &core.UnauthorizedError{Message: "공지사항을 불러올 수 없습니다. 로그인 상태를 확인해주세요."}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Notice{}, err
	}

	detail := htmlutil.ParseInformaticTable(table)
	createdAt, _ := core.ParseDate(detail["등록일"].Text)
	views, _ := strconv.Atoi(detail["조회"].Text)

	return Notice{
		Id:          id,
		CourseId:    courseId,
		Title:       detail["제목"].Text,
		Author:      detail["작성자"].Text,
		CreatedAt:   createdAt,
		Views:       views,
		Noted:       true,
		Contents:    cellHtml(detail["내용"]),
		Attachments: attachmentsFromCell(ctx, detail["첨부파일"]),
		Partial:     false,
	}, nil
}
