package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jinzhu/copier"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/model"
	"github.com/lshigami/examguard/internal/repository"
	"github.com/lshigami/examguard/internal/storage"
	"github.com/rs/zerolog/log"
)

// DashboardLimit caps the supervisor listing.
const DashboardLimit = 50

type AdminTestService interface {
	// UploadTest stores an HTML test file and records it. Invalid input is
	// returned as validation.Errors keyed by form field.
	UploadTest(ctx context.Context, title, filename string, content io.Reader) (*dto.TestResponseDTO, error)
	Dashboard(ctx context.Context) ([]dto.DashboardResultDTO, error)
}

type adminTestService struct {
	testRepo   repository.TestRepository
	resultRepo repository.ResultRepository
	files      *storage.LocalStore
}

func NewAdminTestService(testRepo repository.TestRepository, resultRepo repository.ResultRepository, files *storage.LocalStore) AdminTestService {
	return &adminTestService{testRepo: testRepo, resultRepo: resultRepo, files: files}
}

type uploadForm struct {
	Title    string `json:"title"`
	Filename string `json:"file"`
}

func (f uploadForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.Filename, validation.Required, validation.By(htmlOnly)),
	)
}

func htmlOnly(value interface{}) error {
	name, _ := value.(string)
	lower := strings.ToLower(storage.SanitizeFilename(name))
	if lower == "" || !(strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")) {
		return errors.New("Only HTML files are allowed")
	}
	return nil
}

func (s *adminTestService) UploadTest(ctx context.Context, title, filename string, content io.Reader) (*dto.TestResponseDTO, error) {
	title = strings.TrimSpace(title)
	if err := (uploadForm{Title: title, Filename: filename}).Validate(); err != nil {
		return nil, err
	}

	relPath, err := s.files.SaveTestFile(filename, content)
	if err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("UploadTest: failed to store file")
		return nil, fmt.Errorf("store test file: %w", err)
	}

	test := model.Test{Title: title, FilePath: relPath}
	if err := s.testRepo.Create(ctx, &test); err != nil {
		log.Error().Err(err).Msg("UploadTest: failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}
	log.Info().Uint("testID", test.ID).Str("filePath", relPath).Msg("Test uploaded")

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, &test); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *adminTestService) Dashboard(ctx context.Context) ([]dto.DashboardResultDTO, error) {
	results, err := s.resultRepo.FindRecent(ctx, DashboardLimit)
	if err != nil {
		log.Error().Err(err).Msg("Dashboard: failed to load results")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}
	rows := make([]dto.DashboardResultDTO, 0, len(results))
	for _, r := range results {
		var row dto.DashboardResultDTO
		if err := copier.Copy(&row, &r); err != nil {
			return nil, fmt.Errorf("error preparing dashboard row: %w", err)
		}
		row.Username = r.User.Username
		row.TestTitle = r.Test.Title
		rows = append(rows, row)
	}
	return rows, nil
}
