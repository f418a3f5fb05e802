package view

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"door-backend/lib/htmlutil"
	"door-backend/lib/scrapers/door/core"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type AttendanceState string

const (
	ATTENDANCE_PRESENT    AttendanceState = "출석"
	ATTENDANCE_ABSENT     AttendanceState = "결석"
	ATTENDANCE_NO_LECTURE AttendanceState = "수업없음"
)

// LectureProgress is one week/period learning unit: how much of the
// lecture has been watched and whether attendance was credited. the
// date fields are zero when the portal renders them empty.
type LectureProgress struct {
	CourseId string

	Week   int
	Period int
	// lecture format, e.g. 동영상 or 출석수업
	Type       string
	Attendance AttendanceState

	// minutes watched out of the lecture's total
	Current int
	Length  int
	Views   int

	StartedAt      time.Time
	FinishedAt     time.Time
	RecentViewedAt time.Time
}

// composite join key. week 1 / period 23 and week 12 / period 3 must
// never collide, hence a struct rather than any stringly-typed key.
type weekPeriod struct {
	week   int
	period int
}

var errRowNoWeekPeriod = errors.New("row carries no numeric week/period")

// Progresses joins the two tables of the lecture info page: the
// progress grid supplies durations and view counts per week/period,
// the attendance grid supplies a per-period mark per week column. an
// attendance mark with no progress counterpart is ignored.
func (c Client) Progresses(ctx context.Context, courseId string) ([]LectureProgress, error) {
	ctx, span := tracer.Start(ctx, "client:Progresses")
	defer span.End()
	span.SetAttributes(attribute.String("course_id", courseId))

	doc, err := c.fetchDocument(ctx, "/LMS/LectureRoom/CourseLectureInfo/"+courseId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}

	progressTable := doc.Find("#gvListTB")
	attendanceTable := doc.Find("#wrap > div.subpageCon > div:nth-child(5) > div:nth-child(4) > table")
	if progressTable.Length() == 0 || attendanceTable.Length() == 0 {
		err := &core.UnauthorizedError{Message: "학습현황 정보를 가져올 수 없습니다. 로그인 상태를 확인해주세요."}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var progresses []LectureProgress
	for i, row := range htmlutil.ParseTable(progressTable) {
		week, weekErr := strconv.Atoi(row["주차"].Text)
		period, periodErr := strconv.Atoi(row["차시"].Text)
		if weekErr != nil || periodErr != nil {
			droppedRow(span, i, errRowNoWeekPeriod)
			continue
		}

		current, length := parseStudyTime(row["학습시간(분)"].Text)
		views, _ := strconv.Atoi(row["강의접속수"].Text)
		startedAt, _ := core.ParseDate(row["최초학습일"].Text)
		finishedAt, _ := core.ParseDate(row["학습완료일"].Text)
		recentViewedAt, _ := core.ParseDate(row["최근학습일"].Text)

		progresses = append(progresses, LectureProgress{
			CourseId:       courseId,
			Week:           week,
			Period:         period,
			Type:           row["수업형태"].Text,
			Attendance:     ATTENDANCE_NO_LECTURE,
			Current:        current,
			Length:         length,
			Views:          views,
			StartedAt:      startedAt,
			FinishedAt:     finishedAt,
			RecentViewedAt: recentViewedAt,
		})
	}

	index := map[weekPeriod]int{}
	for i, progress := range progresses {
		index[weekPeriod{week: progress.Week, period: progress.Period}] = i
	}

	for _, row := range htmlutil.ParseTable(attendanceTable) {
		// in the attendance grid the 주차-labelled cell actually holds
		// the period and the numeric column headers are the weeks
		period, err := strconv.Atoi(row["주차"].Text)
		if err != nil {
			continue
		}
		for label, cell := range row {
			week, err := strconv.Atoi(label)
			if err != nil {
				continue
			}
			i, ok := index[weekPeriod{week: week, period: period}]
			if !ok {
				continue
			}
			progresses[i].Attendance = attendanceFromMark(cell.Text)
		}
	}

	return progresses, nil
}

func attendanceFromMark(mark string) AttendanceState {
	switch mark {
	case "O":
		return ATTENDANCE_PRESENT
	case "/":
		return ATTENDANCE_ABSENT
	default:
		return ATTENDANCE_NO_LECTURE
	}
}

func parseStudyTime(text string) (current, length int) {
	parts := strings.SplitN(text, "/", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	current, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	length, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	return current, length
}
