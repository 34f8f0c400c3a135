package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/repository"
	"github.com/lshigami/examguard/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

type UserTestService interface {
	GetAllTests(ctx context.Context) ([]dto.TestResponseDTO, error)
	// OpenTestFile opens the HTML behind a Test. The stored path must resolve
	// inside the project root.
	OpenTestFile(ctx context.Context, testID uint) (afero.File, os.FileInfo, error)
}

type userTestService struct {
	testRepo repository.TestRepository
	files    *storage.LocalStore
}

func NewUserTestService(testRepo repository.TestRepository, files *storage.LocalStore) UserTestService {
	return &userTestService{testRepo: testRepo, files: files}
}

func (s *userTestService) GetAllTests(ctx context.Context) ([]dto.TestResponseDTO, error) {
	tests, err := s.testRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tests")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}
	dtos := make([]dto.TestResponseDTO, 0, len(tests))
	if err := copier.Copy(&dtos, &tests); err != nil {
		return nil, fmt.Errorf("error preparing tests response: %w", err)
	}
	return dtos, nil
}

func (s *userTestService) OpenTestFile(ctx context.Context, testID uint) (afero.File, os.FileInfo, error) {
	test, err := s.testRepo.FindByID(ctx, testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTestNotFound
		}
		return nil, nil, fmt.Errorf("load test %d: %w", testID, err)
	}

	f, info, err := s.files.OpenProjectFile(test.FilePath)
	switch {
	case errors.Is(err, storage.ErrOutsideBase):
		log.Warn().Uint("testID", testID).Str("filePath", test.FilePath).Msg("Test file path escapes project root")
		return nil, nil, ErrInvalidFilePath
	case errors.Is(err, os.ErrNotExist):
		return nil, nil, ErrTestFileNotFound
	case err != nil:
		return nil, nil, fmt.Errorf("open test file %d: %w", testID, err)
	}
	return f, info, nil
}
