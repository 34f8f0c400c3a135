package service

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lshigami/examguard/config"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/model"
	"github.com/lshigami/examguard/internal/notifier"
	"github.com/lshigami/examguard/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func newScreenshots(f *fixture, n notifier.Notifier) *screenshotService {
	s := NewScreenshotService(f.results, f.shots, f.files, n).(*screenshotService)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestDecodeScreenshot(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString(pngBytes)

	data, ext, err := DecodeScreenshot(b64)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.Equal(t, pngBytes, data)

	_, ext, err = DecodeScreenshot("data:image/jpeg;base64," + b64)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", ext)

	_, ext, err = DecodeScreenshot("data:image/webp;base64," + strings.TrimRight(b64, "="))
	require.NoError(t, err)
	assert.Equal(t, "webp", ext)

	_, ext, err = DecodeScreenshot("data:;base64," + b64)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)

	_, ext, err = DecodeScreenshot("data:image/x.exe;base64," + b64)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)

	for _, bad := range []string{"", "data:image/png;base64,", "not base64 at all!", "data:image/png;base64,@@@@"} {
		_, _, err := DecodeScreenshot(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestCaptureScreenshotRelaysPhoto(t *testing.T) {
	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)
	n := &fakeNotifier{enabled: true}
	ctx := context.Background()

	outcome, err := newScreenshots(f, n).CaptureScreenshot(ctx, f.algebra.ID, identityOf(f.student), dto.ScreenshotRequest{
		ResultID:   dto.FlexibleID(result.ID),
		Screenshot: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(pngBytes),
	})
	require.NoError(t, err)
	assert.True(t, outcome.Sent)
	assert.True(t, strings.HasPrefix(outcome.ImagePath, "screenshots/screenshot_"))
	assert.True(t, strings.HasSuffix(outcome.ImagePath, ".jpeg"))

	stored, err := afero.ReadFile(f.fs, "media/"+outcome.ImagePath)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)

	require.Len(t, n.captions, 1)
	assert.Contains(t, n.captions[0], "Student: student")
	assert.Contains(t, n.captions[0], "Test: Algebra")
	assert.Equal(t, pngBytes, n.photos[0])

	var shot model.Screenshot
	require.NoError(t, f.db.First(&shot, outcome.ScreenshotID).Error)
	assert.True(t, shot.SentToTelegram)
	assert.Equal(t, result.ID, shot.ResultID)
}

func TestCaptureScreenshotRejectedByTelegram(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ok":false,"description":"Forbidden: bot was blocked by the user"}`)
	}))
	defer srv.Close()
	telegram := notifier.NewTelegramNotifier(&config.Config{Telegram: config.Telegram{
		BotToken:    "TOKEN",
		AdminChatID: "1001",
		APIURL:      srv.URL,
		Timeout:     time.Second,
	}})

	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)
	outcome, err := newScreenshots(f, telegram).CaptureScreenshot(context.Background(), f.algebra.ID, identityOf(f.student), dto.ScreenshotRequest{
		ResultID:   dto.FlexibleID(result.ID),
		Screenshot: base64.StdEncoding.EncodeToString(pngBytes),
	})
	require.NoError(t, err)
	assert.False(t, outcome.Sent)
	assert.True(t, strings.HasSuffix(outcome.ImagePath, ".png"))

	var shot model.Screenshot
	require.NoError(t, f.db.First(&shot, outcome.ScreenshotID).Error)
	assert.False(t, shot.SentToTelegram)
}

func TestCaptureScreenshotWithoutTelegram(t *testing.T) {
	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)
	n := &fakeNotifier{enabled: false}

	outcome, err := newScreenshots(f, n).CaptureScreenshot(context.Background(), f.algebra.ID, identityOf(f.student), dto.ScreenshotRequest{
		ResultID:   dto.FlexibleID(result.ID),
		Screenshot: base64.StdEncoding.EncodeToString(pngBytes),
	})
	require.NoError(t, err)
	assert.False(t, outcome.Sent)
	assert.Empty(t, n.captions)
	assert.Empty(t, n.messages)
}

func TestCaptureScreenshotNotifierError(t *testing.T) {
	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)
	n := &fakeNotifier{enabled: true, err: errors.New("timeout")}

	outcome, err := newScreenshots(f, n).CaptureScreenshot(context.Background(), f.algebra.ID, identityOf(f.student), dto.ScreenshotRequest{
		ResultID:   dto.FlexibleID(result.ID),
		Screenshot: base64.StdEncoding.EncodeToString(pngBytes),
	})
	require.NoError(t, err)
	assert.False(t, outcome.Sent)
}

func TestCaptureScreenshotChecks(t *testing.T) {
	f := newFixture(t)
	result := testutil.SeedResult(t, f.db, f.student.ID, f.algebra.ID)
	svc := newScreenshots(f, &fakeNotifier{enabled: true})
	good := base64.StdEncoding.EncodeToString(pngBytes)
	ctx := context.Background()

	_, err := svc.CaptureScreenshot(ctx, f.geometry.ID, identityOf(f.student), dto.ScreenshotRequest{
		ResultID: dto.FlexibleID(result.ID), Screenshot: good,
	})
	assert.ErrorIs(t, err, ErrResultMismatch)

	_, err = svc.CaptureScreenshot(ctx, f.algebra.ID, identityOf(f.admin), dto.ScreenshotRequest{
		ResultID: dto.FlexibleID(result.ID), Screenshot: good,
	})
	assert.ErrorIs(t, err, ErrResultNotFound)

	_, err = svc.CaptureScreenshot(ctx, f.algebra.ID, identityOf(f.student), dto.ScreenshotRequest{
		ResultID: dto.FlexibleID(result.ID), Screenshot: "data:image/png;base64,%%%",
	})
	require.ErrorIs(t, err, ErrDecodeFailed)
	assert.Equal(t, "screenshot decode failed", err.Error())

	var count int64
	require.NoError(t, f.db.Model(&model.Screenshot{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestScreenshotCaption(t *testing.T) {
	r := &model.Result{
		User:           model.User{Username: "student"},
		Test:           model.Test{Title: "Algebra"},
		FinishTime:     time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		FocusLossCount: 3,
	}
	assert.Equal(t,
		"📸 Screenshot from Test\n\n👤 Student: student\n📝 Test: Algebra\n⏰ End Time: 2025-03-14 09:26:53\n🔴 Focus Loss Count: 3",
		ScreenshotCaption(r))

	r.FinishTime = time.Time{}
	assert.Contains(t, ScreenshotCaption(r), "End Time: Not finished")
}
