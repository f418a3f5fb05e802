package view

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"door-backend/lib/htmlutil"
	"door-backend/lib/scrapers/door/core"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TeamProject is a team project post. list rows lack the body,
// attachments and submission panel, so entities built from them are
// Partial.
type TeamProject struct {
	Id       string
	CourseId string

	Title string
	// submission method, e.g. 팀별 제출
	Type      string
	CreatedAt time.Time
	Duration  core.DateRange

	Contents    string
	Attachments []Attachment

	Submitted  bool
	Submission *Submission

	Partial bool
}

// the project id only appears in the ProjectNo query parameter of the
// row's link; this pattern is part of the portal's url contract
var projectIdPattern = regexp.MustCompile(`ProjectNo=(\d+)`)

var numericPattern = regexp.MustCompile(`\d+`)

// TeamProjects unions the dedicated team project board with the
// activity log board, which incidentally hosts team project rows as
// well. both listings are fetched concurrently since neither depends
// on the other. project board rows come first; a project listed on
// both boards appears twice.
func (c Client) TeamProjects(ctx context.Context, courseId string) ([]TeamProject, error) {
	ctx, span := tracer.Start(ctx, "client:TeamProjects")
	defer span.End()
	span.SetAttributes(attribute.String("course_id", courseId))

	var wg sync.WaitGroup
	var projectsDoc, activitiesDoc *goquery.Document
	var projectsErr, activitiesErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		projectsDoc, projectsErr = c.fetchDocument(
			ctx, "/LMS/LectureRoom/CourseTeamProjectStudentList/"+courseId)
	}()
	go func() {
		defer wg.Done()
		activitiesDoc, activitiesErr = c.fetchDocument(
			ctx, "/LMS/LectureRoom/CourseOutputs/"+courseId)
	}()
	wg.Wait()

	if projectsErr != nil {
		span.RecordError(projectsErr)
		span.SetStatus(codes.Error, "failed to fetch project board")
		return nil, projectsErr
	}
	if activitiesErr != nil {
		span.RecordError(activitiesErr)
		span.SetStatus(codes.Error, "failed to fetch activity board")
		return nil, activitiesErr
	}

	projectTable := projectsDoc.Find("#sub_content2 > div:nth-child(4) > table")
	activityTable := activitiesDoc.Find("#sub_content2 > div > table")
	if projectTable.Length() == 0 || activityTable.Length() == 0 {
		err := &core.UnauthorizedError{Message: "팀 프로젝트 목록을 불러올 수 없습니다. 로그인 상태를 확인해주세요."}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var projects []TeamProject
	for i, row := range htmlutil.ParseTable(projectTable) {
		project, err := teamProjectFromRow(courseId, row, "팀프로젝트 제목")
		if err != nil {
			droppedRow(span, i, err)
			continue
		}
		project.Submitted = row["제출 여부"].Text == "제출"
		projects = append(projects, project)
	}
	for i, row := range htmlutil.ParseTable(activityTable) {
		project, err := teamProjectFromRow(courseId, row, "주제")
		if err != nil {
			droppedRow(span, i, err)
			continue
		}
		projects = append(projects, project)
	}

	return projects, nil
}

func teamProjectFromRow(courseId string, row htmlutil.Record, titleLabel string) (TeamProject, error) {
	// boards with no posts render a text placeholder in the No column
	if !numericPattern.MatchString(row["No"].Text) {
		return TeamProject{}, errRowPlaceholder
	}
	id := matchGroup(projectIdPattern, row[titleLabel].Href)
	if id == "" {
		return TeamProject{}, errRowNoId
	}
	duration, ok := core.ParseDateRange(row["제출기간"].Text)
	if !ok {
		return TeamProject{}, errRowNoDate
	}

	return TeamProject{
		Id:        id,
		CourseId:  courseId,
		Title:     row[titleLabel].Text,
		Type:      row["제출방식"].Text,
		CreatedAt: duration.From,
		Duration:  duration,
		Partial:   true,
	}, nil
}

func (c Client) TeamProject(ctx context.Context, courseId, id string) (TeamProject, error) {
	ctx, span := tracer.Start(ctx, "client:TeamProject")
	defer span.End()
	span.SetAttributes(
		attribute.String("course_id", courseId),
		attribute.String("project_id", id),
	)

	endpoint := fmt.Sprintf(
		"/LMS/LectureRoom/CourseTeamProjectStudentDetail?CourseNo=%s&ProjectNo=%s",
		courseId, id)
	doc, err := c.fetchDocument(ctx, endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return TeamProject{}, err
	}

	descriptionTable := doc.Find("#sub_content2 > div.form_table_b > table")
	submissionTable := doc.Find("#CourseLeture > div.form_table_s > table")
	form := doc.Find("#CourseLeture")
	if descriptionTable.Length() == 0 || submissionTable.Length() == 0 || form.Length() == 0 {
		err := &core.UnauthorizedError{Message: "팀 프로젝트 정보를 불러올 수 없습니다. 로그인 상태를 확인해주세요."}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return TeamProject{}, err
	}

	description := htmlutil.ParseInformaticTable(descriptionTable)
	duration, _ := core.ParseDateRange(description["제출기간"].Text)
	submission := parseSubmission(ctx, submissionTable, form)

	title := description["제목"].Text
	if title == "" {
		title = description["주제"].Text
	}
	if title == "" {
		title = "제목이 없습니다"
	}
	contents := cellHtml(description["내용"])
	if contents == "" {
		contents = cellHtml(description["수업내용"])
	}

	return TeamProject{
		Id:          id,
		CourseId:    courseId,
		Title:       title,
		Type:        description["제출방식"].Text,
		CreatedAt:   duration.From,
		Duration:    duration,
		Contents:    contents,
		Attachments: attachmentsFromCell(ctx, description["첨부파일"]),
		Submitted:   submission.Submitted,
		Submission:  &submission,
		Partial:     false,
	}, nil
}
