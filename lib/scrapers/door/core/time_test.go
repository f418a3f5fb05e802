package core

import (
	"testing"
	"time"

	"door-backend/lib/timezone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		text     string
		expected time.Time
		ok       bool
	}{
		{
			text:     "2021-03-02 10:30:00",
			expected: time.Date(2021, time.March, 2, 10, 30, 0, 0, timezone.Location),
			ok:       true,
		},
		{
			text:     "2021-03-02",
			expected: time.Date(2021, time.March, 2, 0, 0, 0, 0, timezone.Location),
			ok:       true,
		},
		{
			text:     "21-04-01 00:00",
			expected: time.Date(2021, time.April, 1, 0, 0, 0, 0, timezone.Location),
			ok:       true,
		},
		{
			text:     "  21-04-14 23:59 ",
			expected: time.Date(2021, time.April, 14, 23, 59, 0, 0, timezone.Location),
			ok:       true,
		},
		{text: "", ok: false},
		{text: "   ", ok: false},
		{text: "미입력", ok: false},
	}

	for _, test := range testCases {
		parsed, ok := ParseDate(test.text)
		require.Equal(t, test.ok, ok, "text=%q", test.text)
		if !ok {
			require.True(t, parsed.IsZero())
			continue
		}
		diff := cmp.Diff(test.expected, parsed)
		require.Empty(t, diff)
	}
}

func TestParseDateRange(t *testing.T) {
	window, ok := ParseDateRange("21-04-01 00:00 ~ 21-04-14 23:59")
	require.True(t, ok)
	require.Equal(t, time.Date(2021, time.April, 1, 0, 0, 0, 0, timezone.Location), window.From)
	require.Equal(t, time.Date(2021, time.April, 14, 23, 59, 0, 0, timezone.Location), window.To)

	_, ok = ParseDateRange("상시 제출")
	require.False(t, ok)

	_, ok = ParseDateRange("21-04-01 00:00 ~ 미정")
	require.False(t, ok)
}

func TestUnauthorizedError(t *testing.T) {
	err := error(&UnauthorizedError{Message: "로그인 상태를 확인해주세요."})
	require.True(t, IsUnauthorized(err))
	require.NotEmpty(t, err.Error())
	require.False(t, IsUnauthorized(nil))
}
