package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProctoring(f *fixture) *proctoringService {
	s := NewProctoringService(f.results, f.focus).(*proctoringService)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestBlurClickBlurCountsTwo(t *testing.T) {
	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)
	svc := newProctoring(f)
	ctx := context.Background()

	var last int
	for _, ev := range []string{"blur", "click", "blur"} {
		n, err := svc.RecordFocusEvent(ctx, identityOf(f.student), dto.FocusEventRequest{
			ResultID:  dto.FlexibleID(result.ID),
			EventType: ev,
		})
		require.NoError(t, err)
		last = n
	}
	assert.Equal(t, 2, last)

	saved, err := f.results.FindByID(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.FocusLossCount)

	logs, err := f.focus.FindByResult(ctx, result.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "click", logs[1].EventType)
	assert.True(t, logs[0].Timestamp.Equal(fixedNow))
}

func TestRecordFocusEventKeepsClientTimestampAndExtra(t *testing.T) {
	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)
	extra := `{"x":1}`

	_, err := newProctoring(f).RecordFocusEvent(context.Background(), identityOf(f.student), dto.FocusEventRequest{
		ResultID:  dto.FlexibleID(result.ID),
		EventType: "visibility_hidden",
		Timestamp: "2025-03-14T10:00:00Z",
		Extra:     &extra,
	})
	require.NoError(t, err)

	logs, err := f.focus.FindByResult(context.Background(), result.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Timestamp.Equal(time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)))
	require.NotNil(t, logs[0].Extra)
	assert.Equal(t, extra, *logs[0].Extra)
}

func TestRecordFocusEventScopedToCaller(t *testing.T) {
	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)
	svc := newProctoring(f)

	_, err := svc.RecordFocusEvent(context.Background(), identityOf(f.admin), dto.FocusEventRequest{
		ResultID:  dto.FlexibleID(result.ID),
		EventType: "blur",
	})
	assert.ErrorIs(t, err, ErrResultNotFound)

	n, err := f.focus.CountLossEvents(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordFocusEventNeedsType(t *testing.T) {
	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)

	_, err := newProctoring(f).RecordFocusEvent(context.Background(), identityOf(f.student), dto.FocusEventRequest{
		ResultID: dto.FlexibleID(result.ID),
	})
	assert.ErrorIs(t, err, ErrEventTypeMissing)
}

func TestParseEventTime(t *testing.T) {
	now := func() time.Time { return fixedNow }
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2025-01-02T03:04:05Z", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2025-01-02T03:04:05.5+02:00", time.Date(2025, 1, 2, 1, 4, 5, 5e8, time.UTC)},
		{"2025-01-02T03:04:05", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2025-01-02 03:04:05", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2025-01-02T03:04", time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)},
		{"", fixedNow},
		{"yesterday", fixedNow},
		{"1700000000", fixedNow},
	}
	for _, tc := range cases {
		assert.True(t, tc.want.Equal(parseEventTime(tc.raw, now)), "input %q", tc.raw)
	}
}
