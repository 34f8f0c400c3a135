package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lshigami/examguard/internal/auth"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/metrics"
	"github.com/lshigami/examguard/internal/model"
	"github.com/lshigami/examguard/internal/repository"
	"github.com/rs/zerolog/log"
)

type ProctoringService interface {
	// RecordFocusEvent appends a FocusLog to the caller's Result and returns
	// the recomputed focus loss count.
	RecordFocusEvent(ctx context.Context, who auth.Identity, req dto.FocusEventRequest) (int, error)
}

type proctoringService struct {
	resultRepo repository.ResultRepository
	focusRepo  repository.FocusLogRepository
	now        func() time.Time
}

func NewProctoringService(resultRepo repository.ResultRepository, focusRepo repository.FocusLogRepository) ProctoringService {
	return &proctoringService{
		resultRepo: resultRepo,
		focusRepo:  focusRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *proctoringService) RecordFocusEvent(ctx context.Context, who auth.Identity, req dto.FocusEventRequest) (int, error) {
	if !who.Authenticated() {
		return 0, ErrNotAuthenticated
	}
	result, err := loadOwnedResult(ctx, s.resultRepo, uint(req.ResultID), who)
	if err != nil {
		return 0, err
	}
	eventType := strings.TrimSpace(req.EventType)
	if eventType == "" {
		return 0, ErrEventTypeMissing
	}

	entry := model.FocusLog{
		ResultID:  result.ID,
		Timestamp: parseEventTime(req.Timestamp, s.now),
		EventType: eventType,
		Extra:     req.Extra,
	}
	count, err := s.focusRepo.AppendAndRecount(ctx, &entry)
	if err != nil {
		log.Error().Err(err).Uint("resultID", result.ID).Str("eventType", eventType).Msg("RecordFocusEvent: failed to save")
		return 0, fmt.Errorf("database error saving focus event: %w", err)
	}

	kind := "other"
	if model.IsLossEvent(eventType) {
		kind = "loss"
	}
	metrics.FocusEventsTotal.WithLabelValues(kind).Inc()
	log.Debug().Uint("resultID", result.ID).Str("eventType", eventType).Int("focusLossCount", count).Msg("Focus event recorded")
	return count, nil
}

var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseEventTime reads the client clock. Values without a zone are taken as
// UTC; anything unparseable falls back to now.
func parseEventTime(raw string, now func() time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now()
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return now()
}
