package admin

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lshigami/examguard/internal/controller"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

// UploadForm godoc
// @Summary (Admin) Describe the upload form
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.FormSchemaResponse
// @Router /tests/upload [get]
func (c *AdminTestController) UploadForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.FormSchemaResponse{Fields: []string{"title", "file"}})
}

// UploadTest godoc
// @Summary (Admin) Upload an HTML test
// @Description Only .html and .htm files are accepted. Directory components of the file name are dropped.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Test title"
// @Param file formData file true "HTML test file"
// @Success 201 {object} dto.TestResponseDTO "Test created successfully"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid form"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/upload [post]
func (c *AdminTestController) UploadTest(ctx *gin.Context) {
	title := ctx.PostForm("title")

	var filename string
	var content io.Reader
	fh, err := ctx.FormFile("file")
	if err == nil {
		f, openErr := fh.Open()
		if openErr != nil {
			log.Error().Err(openErr).Msg("Admin UploadTest: failed to open uploaded file")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to read uploaded file"})
			return
		}
		defer f.Close()
		filename, content = fh.Filename, f
	}

	testResp, err := c.adminTestService.UploadTest(ctx.Request.Context(), title, filename, content)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for field, fieldErr := range verrs {
				fields[field] = fieldErr.Error()
			}
			ctx.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Message: "Invalid form", Fields: fields})
			return
		}
		controller.RespondError(ctx, err, "Admin UploadTest")
		return
	}
	ctx.JSON(http.StatusCreated, testResp)
}

// Dashboard godoc
// @Summary (Admin) Recent results
// @Description The 50 most recent results, newest first, with student and test.
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *AdminTestController) Dashboard(ctx *gin.Context) {
	rows, err := c.adminTestService.Dashboard(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err, "Admin Dashboard")
		return
	}
	ctx.JSON(http.StatusOK, dto.DashboardResponse{Results: rows})
}
