package service

import (
	"context"
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lshigami/examguard/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadTestStripsDirectories(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminTestService(f.tests, f.results, f.files)

	test, err := svc.UploadTest(context.Background(), "  Evil  ", "../../evil.html", strings.NewReader("<html>x</html>"))
	require.NoError(t, err)
	assert.Equal(t, "Evil", test.Title)
	assert.Equal(t, "media/tests_files/evil.html", test.FilePath)

	data, err := afero.ReadFile(f.fs, "media/tests_files/evil.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>x</html>", string(data))

	_, err = svc.UploadTest(context.Background(), "Windows", `C:\Users\x\quiz.HTM`, strings.NewReader("<p/>"))
	require.NoError(t, err)
	exists, err := afero.Exists(f.fs, "media/tests_files/quiz.HTM")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUploadTestValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminTestService(f.tests, f.results, f.files)

	_, err := svc.UploadTest(context.Background(), "Notes", "notes.txt", strings.NewReader("x"))
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "file")
	assert.Equal(t, "Only HTML files are allowed", verrs["file"].Error())

	_, err = svc.UploadTest(context.Background(), "", "quiz.html", strings.NewReader("x"))
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "title")

	entries, _ := afero.ReadDir(f.fs, "media/tests_files")
	assert.Empty(t, entries)
}

func TestDashboardNewestFirstCapped(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < DashboardLimit+5; i++ {
		r := model.Result{
			UserID:      f.student.ID,
			TestID:      f.algebra.ID,
			AnswersJSON: "{}",
			StartTime:   base,
			FinishTime:  base,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, f.db.Omit("User", "Test").Create(&r).Error)
	}

	rows, err := NewAdminTestService(f.tests, f.results, f.files).Dashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, DashboardLimit)
	assert.Equal(t, "student", rows[0].Username)
	assert.Equal(t, "Algebra", rows[0].TestTitle)
	assert.True(t, rows[0].CreatedAt.Equal(base.Add(time.Duration(DashboardLimit+4)*time.Minute)))
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].CreatedAt.After(rows[i-1].CreatedAt))
	}
}
