package view

import (
	"context"
	"embed"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"door-backend/lib/scrapers/door/core"
	"door-backend/lib/telemetry"
	"door-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.html
var fixtures embed.FS

func serveFixture(t testing.TB, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contents, err := fixtures.ReadFile("testdata/" + name)
		if err != nil {
			t.Fatal(err)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(contents)
	}
}

func newTestClient(t testing.TB, mux *http.ServeMux) Client {
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	coreClient, err := core.NewClient(context.Background(), core.ClientOptions{
		BaseUrl: server.URL,
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewClient(coreClient)
}

func kst(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, timezone.Location)
}

func TestNotices(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/door/view")
	defer cleanup()

	ctx, span := tracer.Start(context.Background(), "TestNotices")
	defer span.End()

	mux := http.NewServeMux()
	mux.HandleFunc("/BBS/Board/List/CourseNotice", serveFixture(t, "notice_list.html"))
	client := newTestClient(t, mux)

	notices, err := client.Notices(ctx, "12345")
	if err != nil {
		t.Fatal(err)
	}

	// the pinned row has no link and therefore no identity; it must not
	// surface as an entity
	require.Equal(t, []Notice{
		{
			Id:        "101",
			CourseId:  "12345",
			Title:     "중간고사 안내",
			Author:    "홍길동",
			CreatedAt: kst(2021, time.April, 12, 0, 0, 0),
			Views:     15,
			Noted:     true,
			Partial:   true,
		},
		{
			Id:        "100",
			CourseId:  "12345",
			Title:     "강의 계획 공지",
			Author:    "홍길동",
			CreatedAt: kst(2021, time.March, 2, 0, 0, 0),
			Views:     42,
			Noted:     false,
			Partial:   true,
		},
	}, notices)
}

func TestNotice(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/door/view")
	defer cleanup()

	ctx, span := tracer.Start(context.Background(), "TestNotice")
	defer span.End()

	mux := http.NewServeMux()
	mux.HandleFunc("/BBS/Board/Read/CourseNotice/100", serveFixture(t, "notice_detail.html"))
	client := newTestClient(t, mux)

	notice, err := client.Notice(ctx, "12345", "100")
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, Notice{
		Id:        "100",
		CourseId:  "12345",
		Title:     "강의 계획 공지",
		Author:    "홍길동",
		CreatedAt: kst(2021, time.March, 2, 10, 30, 0),
		Views:     42,
		Noted:     true,
		Contents:  "<p>한 학기 동안 잘 부탁드립니다.</p>",
		Attachments: []Attachment{
			{Title: "강의계획서.hwp", Link: "/Common/FileDownload?fileNo=1"},
		},
		Partial: false,
	}, notice)
}

func TestTeamProjects(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/door/view")
	defer cleanup()

	ctx, span := tracer.Start(context.Background(), "TestTeamProjects")
	defer span.End()

	mux := http.NewServeMux()
	mux.HandleFunc("/LMS/LectureRoom/CourseTeamProjectStudentList/12345",
		serveFixture(t, "teamproject_list.html"))
	mux.HandleFunc("/LMS/LectureRoom/CourseOutputs/12345",
		serveFixture(t, "outputs_list.html"))
	client := newTestClient(t, mux)

	projects, err := client.TeamProjects(ctx, "12345")
	if err != nil {
		t.Fatal(err)
	}

	midterm := core.DateRange{
		From: kst(2021, time.April, 1, 0, 0, 0),
		To:   kst(2021, time.April, 14, 23, 59, 0),
	}
	final := core.DateRange{
		From: kst(2021, time.May, 24, 0, 0, 0),
		To:   kst(2021, time.June, 14, 23, 59, 0),
	}
	activity := core.DateRange{
		From: kst(2021, time.March, 2, 0, 0, 0),
		To:   kst(2021, time.March, 9, 23, 59, 0),
	}

	// project board rows precede activity board rows; the empty-board
	// placeholder row must not surface
	require.Equal(t, []TeamProject{
		{
			Id:        "7",
			CourseId:  "12345",
			Title:     "중간 팀프로젝트",
			Type:      "팀별 제출",
			CreatedAt: midterm.From,
			Duration:  midterm,
			Submitted: true,
			Partial:   true,
		},
		{
			Id:        "8",
			CourseId:  "12345",
			Title:     "기말 팀프로젝트",
			Type:      "팀별 제출",
			CreatedAt: final.From,
			Duration:  final,
			Submitted: false,
			Partial:   true,
		},
		{
			Id:        "21",
			CourseId:  "12345",
			Title:     "수업활동일지 1주차",
			Type:      "개인별 제출",
			CreatedAt: activity.From,
			Duration:  activity,
			Submitted: false,
			Partial:   true,
		},
	}, projects)
}

func TestTeamProject(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/door/view")
	defer cleanup()

	ctx, span := tracer.Start(context.Background(), "TestTeamProject")
	defer span.End()

	mux := http.NewServeMux()
	mux.HandleFunc("/LMS/LectureRoom/CourseTeamProjectStudentDetail",
		serveFixture(t, "teamproject_detail.html"))
	client := newTestClient(t, mux)

	project, err := client.TeamProject(ctx, "12345", "7")
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, "7", project.Id)
	require.Equal(t, "12345", project.CourseId)
	// the detail page renders the title under 주제 rather than 제목
	require.Equal(t, "중간 팀프로젝트", project.Title)
	require.Equal(t, "팀별 제출", project.Type)
	require.Equal(t, core.DateRange{
		From: kst(2021, time.April, 1, 0, 0, 0),
		To:   kst(2021, time.April, 14, 23, 59, 0),
	}, project.Duration)
	require.Equal(t, "<p>조별로 주제를 정해 발표합니다.</p>", project.Contents)
	require.Equal(t, []Attachment{
		{Title: "과제안내.pdf", Link: "/Common/FileDownload?fileNo=55"},
	}, project.Attachments)
	require.False(t, project.Partial)

	require.True(t, project.Submitted)
	require.NotNil(t, project.Submission)
	require.Equal(t, Submission{
		Contents: "중간 발표 자료를 제출합니다.",
		Attachments: []Attachment{
			{Title: "발표자료.zip", Link: "/Common/FileDownload?fileNo=90"},
		},
		Submitted: true,
		Form: SubmissionForm{
			Url:     "/LMS/LectureRoom/CourseTeamProjectStudentSubmit",
			Method:  "post",
			Enctype: "multipart/form-data",
			Fields: map[string]string{
				"CourseNo":     "12345",
				"ProjectNo":    "7",
				"TFContents":   "",
				"TFSubmitFile": "",
			},
			ContentsKey: "TFContents",
			FileKey:     "TFSubmitFile",
		},
	}, *project.Submission)
}

func TestSubmit(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/door/view")
	defer cleanup()

	ctx, span := tracer.Start(context.Background(), "TestSubmit")
	defer span.End()

	var received struct {
		contents string
		filename string
		file     string
		courseNo string
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/LMS/LectureRoom/CourseTeamProjectStudentSubmit",
		func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Error(err)
				return
			}
			received.contents = r.FormValue("TFContents")
			received.courseNo = r.FormValue("CourseNo")

			file, header, err := r.FormFile("TFSubmitFile")
			if err != nil {
				t.Error(err)
				return
			}
			defer file.Close()
			body, err := io.ReadAll(file)
			if err != nil {
				t.Error(err)
				return
			}
			received.filename = header.Filename
			received.file = string(body)
		})
	client := newTestClient(t, mux)

	form := SubmissionForm{
		Url:     "/LMS/LectureRoom/CourseTeamProjectStudentSubmit",
		Method:  "post",
		Enctype: "multipart/form-data",
		Fields: map[string]string{
			"CourseNo":  "12345",
			"ProjectNo": "7",
		},
		ContentsKey: "TFContents",
		FileKey:     "TFSubmitFile",
	}
	err := client.Submit(ctx, form, "발표 자료를 제출합니다.", "발표자료.zip", strings.NewReader("zip bytes"))
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, "발표 자료를 제출합니다.", received.contents)
	require.Equal(t, "12345", received.courseNo)
	require.Equal(t, "발표자료.zip", received.filename)
	require.Equal(t, "zip bytes", received.file)
}

func TestProgresses(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/door/view")
	defer cleanup()

	ctx, span := tracer.Start(context.Background(), "TestProgresses")
	defer span.End()

	mux := http.NewServeMux()
	mux.HandleFunc("/LMS/LectureRoom/CourseLectureInfo/12345",
		serveFixture(t, "lecture_info.html"))
	client := newTestClient(t, mux)

	progresses, err := client.Progresses(ctx, "12345")
	if err != nil {
		t.Fatal(err)
	}

	// the 합계 summary row is dropped; the week 15 attendance mark has no
	// progress counterpart and is ignored; week 12 / period 3's mark must
	// not bleed into week 1 / period 23
	require.Equal(t, []LectureProgress{
		{
			CourseId:       "12345",
			Week:           1,
			Period:         1,
			Type:           "대면수업",
			Attendance:     ATTENDANCE_NO_LECTURE,
			Current:        20,
			Length:         30,
			Views:          1,
			StartedAt:      kst(2021, time.March, 2, 9, 0, 0),
			RecentViewedAt: kst(2021, time.March, 2, 9, 20, 0),
		},
		{
			CourseId:   "12345",
			Week:       1,
			Period:     23,
			Type:       "동영상",
			Attendance: ATTENDANCE_NO_LECTURE,
			Current:    0,
			Length:     10,
			Views:      0,
		},
		{
			CourseId:       "12345",
			Week:           3,
			Period:         1,
			Type:           "동영상",
			Attendance:     ATTENDANCE_PRESENT,
			Current:        30,
			Length:         30,
			Views:          2,
			StartedAt:      kst(2021, time.March, 15, 10, 0, 0),
			FinishedAt:     kst(2021, time.March, 15, 10, 30, 0),
			RecentViewedAt: kst(2021, time.March, 16, 21, 0, 0),
		},
		{
			CourseId:   "12345",
			Week:       3,
			Period:     2,
			Type:       "동영상",
			Attendance: ATTENDANCE_ABSENT,
			Current:    0,
			Length:     40,
			Views:      0,
		},
		{
			CourseId:       "12345",
			Week:           12,
			Period:         3,
			Type:           "동영상",
			Attendance:     ATTENDANCE_PRESENT,
			Current:        45,
			Length:         45,
			Views:          1,
			StartedAt:      kst(2021, time.May, 24, 14, 0, 0),
			FinishedAt:     kst(2021, time.May, 24, 14, 45, 0),
			RecentViewedAt: kst(2021, time.May, 24, 14, 45, 0),
		},
	}, progresses)
}

func TestUnauthorized(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/door/view")
	defer cleanup()

	ctx, span := tracer.Start(context.Background(), "TestUnauthorized")
	defer span.End()

	// an expired session renders the login shell with 200 OK on every
	// endpoint; the missing anchor table is the only signal
	mux := http.NewServeMux()
	mux.HandleFunc("/", serveFixture(t, "login_shell.html"))
	client := newTestClient(t, mux)

	checks := map[string]func() error{
		"Notices": func() error {
			_, err := client.Notices(ctx, "12345")
			return err
		},
		"Notice": func() error {
			_, err := client.Notice(ctx, "12345", "100")
			return err
		},
		"TeamProjects": func() error {
			_, err := client.TeamProjects(ctx, "12345")
			return err
		},
		"TeamProject": func() error {
			_, err := client.TeamProject(ctx, "12345", "7")
			return err
		},
		"Progresses": func() error {
			_, err := client.Progresses(ctx, "12345")
			return err
		},
	}
	for name, call := range checks {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			require.True(t, core.IsUnauthorized(err))
			require.NotEmpty(t, err.Error())
		})
	}
}
