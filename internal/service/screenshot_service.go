package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/lshigami/examguard/internal/auth"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/metrics"
	"github.com/lshigami/examguard/internal/model"
	"github.com/lshigami/examguard/internal/notifier"
	"github.com/lshigami/examguard/internal/repository"
	"github.com/lshigami/examguard/internal/storage"
	"github.com/rs/zerolog/log"
)

const (
	MsgScreenshotSent      = "Screenshot saved and sent to admin"
	MsgScreenshotNotSent   = "Screenshot saved but failed to send to Telegram. Check server logs."
	defaultScreenshotExt   = "png"
	notFinishedPlaceholder = "Not finished"
)

type ScreenshotService interface {
	// CaptureScreenshot stores the image, records it and makes one attempt to
	// relay it to the administrator chat. A failed relay is not an error.
	CaptureScreenshot(ctx context.Context, testID uint, who auth.Identity, req dto.ScreenshotRequest) (*dto.ScreenshotOutcome, error)
}

type screenshotService struct {
	resultRepo     repository.ResultRepository
	screenshotRepo repository.ScreenshotRepository
	media          storage.MediaStore
	notifier       notifier.Notifier
	now            func() time.Time
}

func NewScreenshotService(
	resultRepo repository.ResultRepository,
	screenshotRepo repository.ScreenshotRepository,
	media storage.MediaStore,
	n notifier.Notifier,
) ScreenshotService {
	return &screenshotService{
		resultRepo:     resultRepo,
		screenshotRepo: screenshotRepo,
		media:          media,
		notifier:       n,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *screenshotService) CaptureScreenshot(ctx context.Context, testID uint, who auth.Identity, req dto.ScreenshotRequest) (*dto.ScreenshotOutcome, error) {
	if !who.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	result, err := loadOwnedResult(ctx, s.resultRepo, uint(req.ResultID), who)
	if err != nil {
		return nil, err
	}
	if result.TestID != testID {
		log.Warn().Uint("resultID", result.ID).Uint("testID", testID).Msg("CaptureScreenshot: test mismatch")
		return nil, ErrResultMismatch
	}

	data, ext, err := DecodeScreenshot(req.Screenshot)
	if err != nil {
		log.Warn().Err(err).Uint("resultID", result.ID).Msg("CaptureScreenshot: decode failed")
		return nil, ErrDecodeFailed
	}

	key := path.Join(storage.ScreenshotsDir, fmt.Sprintf("screenshot_%d_%d.%s", result.ID, s.now().UnixNano(), ext))
	if err := s.media.Put(ctx, key, data, "image/"+ext); err != nil {
		log.Error().Err(err).Uint("resultID", result.ID).Str("key", key).Msg("CaptureScreenshot: failed to store image")
		return nil, fmt.Errorf("store screenshot: %w", err)
	}
	shot := model.Screenshot{ResultID: result.ID, ImagePath: key}
	if err := s.screenshotRepo.Create(ctx, &shot); err != nil {
		log.Error().Err(err).Uint("resultID", result.ID).Msg("CaptureScreenshot: failed to create screenshot record")
		return nil, fmt.Errorf("database error creating screenshot: %w", err)
	}
	metrics.ScreenshotsTotal.Inc()

	outcome := &dto.ScreenshotOutcome{ScreenshotID: shot.ID, ImagePath: key}
	outcome.Sent = s.relay(ctx, result, &shot)
	return outcome, nil
}

// relay reports whether the administrator chat accepted the screenshot and
// the sent flag was persisted.
func (s *screenshotService) relay(ctx context.Context, result *model.Result, shot *model.Screenshot) bool {
	logger := log.With().Uint("resultID", result.ID).Uint("screenshotID", shot.ID).Logger()
	if s.notifier == nil || !s.notifier.Enabled() {
		metrics.RelayTotal.WithLabelValues("disabled").Inc()
		logger.Warn().Msg("Telegram not configured, screenshot not relayed")
		return false
	}

	caption := ScreenshotCaption(result)
	var err error
	img, openErr := s.media.Open(ctx, shot.ImagePath)
	if openErr == nil {
		err = s.notifier.SendPhoto(ctx, caption, path.Base(shot.ImagePath), img)
		img.Close()
	} else {
		logger.Warn().Err(openErr).Msg("Stored screenshot unreadable, sending caption only")
		err = s.notifier.SendMessage(ctx, caption)
	}
	if err != nil {
		metrics.RelayTotal.WithLabelValues("failed").Inc()
		logger.Error().Err(err).Msg("Failed to send screenshot to Telegram")
		return false
	}

	if err := s.screenshotRepo.MarkSent(ctx, shot.ID); err != nil {
		metrics.RelayTotal.WithLabelValues("failed").Inc()
		logger.Error().Err(err).Msg("Screenshot relayed but sent flag not saved")
		return false
	}
	shot.SentToTelegram = true
	metrics.RelayTotal.WithLabelValues("sent").Inc()
	logger.Info().Msg("Screenshot sent to Telegram")
	return true
}

// ScreenshotCaption is the administrator-facing summary of a Result.
func ScreenshotCaption(result *model.Result) string {
	endTime := notFinishedPlaceholder
	if !result.FinishTime.IsZero() {
		endTime = result.FinishTime.UTC().Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("📸 Screenshot from Test\n\n👤 Student: %s\n📝 Test: %s\n⏰ End Time: %s\n🔴 Focus Loss Count: %d",
		result.User.Username, result.Test.Title, endTime, result.FocusLossCount)
}

// DecodeScreenshot accepts a data URL ("data:image/jpeg;base64,...") or bare
// base64. The extension comes from the data URL's media subtype, png when
// there is none.
func DecodeScreenshot(raw string) ([]byte, string, error) {
	ext := defaultScreenshotExt
	payload := raw
	if header, body, ok := strings.Cut(raw, ","); ok {
		payload = body
		ext = extensionFromHeader(header)
	}

	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, payload)
	if payload == "" {
		return nil, "", fmt.Errorf("empty screenshot payload")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		var rawErr error
		data, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if rawErr != nil {
			return nil, "", fmt.Errorf("decode base64: %w", err)
		}
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty screenshot image")
	}
	return data, ext, nil
}

func extensionFromHeader(header string) string {
	subtype := header
	if i := strings.LastIndex(subtype, "/"); i >= 0 {
		subtype = subtype[i+1:]
	}
	if i := strings.Index(subtype, ";"); i >= 0 {
		subtype = subtype[:i]
	}
	subtype = strings.ToLower(strings.TrimSpace(subtype))
	if subtype == "" {
		return defaultScreenshotExt
	}
	for _, r := range subtype {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+') {
			return defaultScreenshotExt
		}
	}
	return subtype
}
