package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lshigami/examguard/internal/auth"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartThenSubmit(t *testing.T) {
	f := newFixture(t)
	svc := f.resultService()
	ctx := context.Background()

	started, err := svc.StartTest(ctx, f.algebra.ID, identityOf(f.student))
	require.NoError(t, err)
	assert.Equal(t, "Algebra", started.Test.Title)
	assert.Equal(t, fixedNow, started.StartTime)
	assert.Equal(t, fmt.Sprintf("/test/%d/save-focus", f.algebra.ID), started.FocusURL)

	fresh, err := f.results.FindByID(ctx, started.ResultID)
	require.NoError(t, err)
	assert.Equal(t, "{}", fresh.AnswersJSON)
	assert.Equal(t, 0, fresh.FocusLossCount)
	assert.True(t, fresh.StartTime.Equal(fresh.FinishTime))

	later := fixedNow.Add(42 * time.Minute)
	svc.now = func() time.Time { return later }
	submitted, err := svc.SubmitTest(ctx, f.algebra.ID, identityOf(f.student), dto.SubmitRequest{
		ResultID: dto.FlexibleID(started.ResultID),
		Answers:  `{"q1":"a"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, SubmitRedirect, submitted.Redirect)
	assert.Equal(t, `{"q1":"a"}`, submitted.Result.AnswersJSON)

	saved, err := f.results.FindByID(ctx, started.ResultID)
	require.NoError(t, err)
	assert.Equal(t, `{"q1":"a"}`, saved.AnswersJSON)
	assert.True(t, saved.FinishTime.Equal(later))
}

func TestStartAllowsRetakes(t *testing.T) {
	f := newFixture(t)
	svc := f.resultService()

	first, err := svc.StartTest(context.Background(), f.algebra.ID, identityOf(f.student))
	require.NoError(t, err)
	second, err := svc.StartTest(context.Background(), f.algebra.ID, identityOf(f.student))
	require.NoError(t, err)
	assert.NotEqual(t, first.ResultID, second.ResultID)
}

func TestStartUnknownTest(t *testing.T) {
	f := newFixture(t)
	_, err := f.resultService().StartTest(context.Background(), 999, identityOf(f.student))
	assert.ErrorIs(t, err, ErrTestNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSubmitRejectsOtherTest(t *testing.T) {
	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)

	_, err := f.resultService().SubmitTest(context.Background(), f.geometry.ID, identityOf(f.student), dto.SubmitRequest{
		ResultID: dto.FlexibleID(result.ID),
		Answers:  `{"q1":"b"}`,
	})
	require.ErrorIs(t, err, ErrResultMismatch)
	assert.Equal(t, KindForbidden, KindOf(err))

	unchanged, err := f.results.FindByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, "{}", unchanged.AnswersJSON)
}

func TestSubmitRejectsOtherUsersEvenAdmins(t *testing.T) {
	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)
	svc := f.resultService()

	for _, who := range []auth.Identity{identityOf(f.intruder), identityOf(f.admin)} {
		_, err := svc.SubmitTest(context.Background(), f.algebra.ID, who, dto.SubmitRequest{
			ResultID: dto.FlexibleID(result.ID),
			Answers:  `{"hacked":true}`,
		})
		assert.ErrorIs(t, err, ErrResultNotFound, "caller %s", who.Username)
	}

	_, err := svc.SubmitTest(context.Background(), f.algebra.ID, identityOf(f.student), dto.SubmitRequest{ResultID: 12345})
	assert.ErrorIs(t, err, ErrResultNotFound)

	unchanged, err := f.results.FindByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, "{}", unchanged.AnswersJSON)
}

func TestSubmitRequiresIdentity(t *testing.T) {
	f := newFixture(t)
	_, err := f.resultService().SubmitTest(context.Background(), f.algebra.ID, auth.Identity{}, dto.SubmitRequest{ResultID: 1})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
