package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examguard/internal/auth"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/model"
	"github.com/lshigami/examguard/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmitRedirect is where the player goes after a successful submit.
const SubmitRedirect = "/tests?msg=submit_success"

type ResultService interface {
	// StartTest opens a new Result for the caller. Retakes open another one.
	StartTest(ctx context.Context, testID uint, who auth.Identity) (*dto.StartTestResponse, error)
	SubmitTest(ctx context.Context, testID uint, who auth.Identity, req dto.SubmitRequest) (*dto.SubmitResponse, error)
}

type resultService struct {
	testRepo   repository.TestRepository
	resultRepo repository.ResultRepository
	now        func() time.Time
}

func NewResultService(testRepo repository.TestRepository, resultRepo repository.ResultRepository) ResultService {
	return NewResultServiceWithClock(testRepo, resultRepo, func() time.Time { return time.Now().UTC() })
}

// NewResultServiceWithClock stamps start and finish times from now.
func NewResultServiceWithClock(testRepo repository.TestRepository, resultRepo repository.ResultRepository, now func() time.Time) ResultService {
	return &resultService{
		testRepo:   testRepo,
		resultRepo: resultRepo,
		now:        now,
	}
}

func (s *resultService) StartTest(ctx context.Context, testID uint, who auth.Identity) (*dto.StartTestResponse, error) {
	if !who.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("load test %d: %w", testID, err)
	}

	now := s.now()
	result := model.Result{
		UserID:      who.UserID,
		TestID:      test.ID,
		AnswersJSON: "{}",
		StartTime:   now,
		FinishTime:  now,
	}
	if err := s.resultRepo.Create(ctx, &result); err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", who.UserID).Msg("StartTest: failed to create result")
		return nil, fmt.Errorf("database error creating result: %w", err)
	}
	log.Info().Uint("resultID", result.ID).Uint("testID", testID).Uint("userID", who.UserID).Msg("Test started")

	resp := &dto.StartTestResponse{
		ResultID:      result.ID,
		StartTime:     result.StartTime,
		FileURL:       fmt.Sprintf("/test/%d/file", test.ID),
		FocusURL:      fmt.Sprintf("/test/%d/save-focus", test.ID),
		ScreenshotURL: fmt.Sprintf("/test/%d/screenshot", test.ID),
		SubmitURL:     fmt.Sprintf("/test/%d/submit", test.ID),
	}
	if err := copier.Copy(&resp.Test, test); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}

func (s *resultService) SubmitTest(ctx context.Context, testID uint, who auth.Identity, req dto.SubmitRequest) (*dto.SubmitResponse, error) {
	if !who.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	result, err := loadOwnedResult(ctx, s.resultRepo, uint(req.ResultID), who)
	if err != nil {
		return nil, err
	}
	if result.TestID != testID {
		log.Warn().Uint("resultID", result.ID).Uint("testID", testID).Uint("resultTestID", result.TestID).Msg("SubmitTest: test mismatch")
		return nil, ErrResultMismatch
	}

	finish := s.now()
	if err := s.resultRepo.UpdateSubmission(ctx, result.ID, req.Answers, finish); err != nil {
		log.Error().Err(err).Uint("resultID", result.ID).Msg("SubmitTest: failed to save answers")
		return nil, fmt.Errorf("database error saving submission: %w", err)
	}
	result.AnswersJSON = req.Answers
	result.FinishTime = finish
	log.Info().Uint("resultID", result.ID).Uint("testID", testID).Uint("userID", who.UserID).Msg("Test submitted")

	resp := &dto.SubmitResponse{Status: "ok", Redirect: SubmitRedirect}
	if err := copier.Copy(&resp.Result, result); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}

// loadOwnedResult scopes the lookup to the caller. Superusers get no
// exemption.
func loadOwnedResult(ctx context.Context, repo repository.ResultRepository, resultID uint, who auth.Identity) (*model.Result, error) {
	if resultID == 0 {
		return nil, ErrResultNotFound
	}
	result, err := repo.FindOwned(ctx, resultID, who.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Uint("resultID", resultID).Uint("userID", who.UserID).Msg("Result not found for caller")
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("load result %d: %w", resultID, err)
	}
	return result, nil
}
