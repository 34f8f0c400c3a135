package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examguard/internal/controller"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/middleware"
	"github.com/lshigami/examguard/internal/service"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService   service.UserTestService
	resultService     service.ResultService
	proctoringService service.ProctoringService
	screenshotService service.ScreenshotService
}

func NewUserTestController(
	uts service.UserTestService,
	rs service.ResultService,
	ps service.ProctoringService,
	ss service.ScreenshotService,
) *UserTestController {
	return &UserTestController{
		userTestService:   uts,
		resultService:     rs,
		proctoringService: ps,
		screenshotService: ss,
	}
}

// ListTests godoc
// @Summary List all available tests
// @Description Newest first. The optional msg query parameter (for example submit_success) is echoed back.
// @Tags Tests
// @Produce json
// @Param msg query string false "Flash message to echo back"
// @Success 200 {object} dto.TestListResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *UserTestController) ListTests(ctx *gin.Context) {
	tests, err := c.userTestService.GetAllTests(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err, "ListTests")
		return
	}
	ctx.JSON(http.StatusOK, dto.TestListResponse{Tests: tests, Msg: ctx.Query("msg")})
}

// StartTest godoc
// @Summary Start a test
// @Description Opens a new Result for the caller and returns what the test player needs.
// @Tags Tests
// @Produce json
// @Param id path int true "Test ID"
// @Success 200 {object} dto.StartTestResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /test/{id}/start [get]
func (c *UserTestController) StartTest(ctx *gin.Context) {
	testID, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.resultService.StartTest(ctx.Request.Context(), testID, middleware.CurrentIdentity(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "StartTest")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ServeTestFile godoc
// @Summary Serve the HTML of a test
// @Tags Tests
// @Produce html
// @Param id path int true "Test ID"
// @Success 200 {string} string "Test HTML"
// @Failure 403 {object} dto.ErrorResponse "Invalid file path"
// @Failure 404 {object} dto.ErrorResponse "Test or file not found"
// @Router /test/{id}/file [get]
func (c *UserTestController) ServeTestFile(ctx *gin.Context) {
	testID, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	file, info, err := c.userTestService.OpenTestFile(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, err, "ServeTestFile")
		return
	}
	defer file.Close()

	ctx.Header("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(ctx.Writer, ctx.Request, info.Name(), info.ModTime(), file)
}

// SubmitTest godoc
// @Summary Submit answers for a started test
// @Description Accepts form fields or a JSON body with result_id and answers. Answers are stored verbatim.
// @Tags Tests
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "Test ID"
// @Param result_id formData int true "Result ID returned by start"
// @Param answers formData string false "Answers document"
// @Success 200 {object} dto.SubmitResponse
// @Failure 403 {object} dto.ErrorResponse "POST required, result not found, or result does not match test"
// @Router /test/{id}/submit [post]
func (c *UserTestController) SubmitTest(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodPost {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "POST required"})
		return
	}
	testID, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitRequest
	if err := ctx.ShouldBind(&req); err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("SubmitTest: unusable submission")
		controller.RespondError(ctx, service.ErrResultNotFound, "SubmitTest")
		return
	}

	resp, err := c.resultService.SubmitTest(ctx.Request.Context(), testID, middleware.CurrentIdentity(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err, "SubmitTest")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SaveFocus godoc
// @Summary Record a focus event
// @Description Failures other than a missing session are reported with status "error" and HTTP 200.
// @Tags Proctoring
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param event body dto.FocusEventRequest true "Focus event"
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} dto.ErrorResponse "auth required"
// @Router /test/{id}/save-focus [post]
func (c *UserTestController) SaveFocus(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodPost {
		controller.RespondStatusError(ctx, "POST required")
		return
	}
	if _, ok := controller.ParseIDParam(ctx, "id"); !ok {
		return
	}

	var req dto.FocusEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondStatusError(ctx, "Invalid JSON")
		return
	}

	if _, err := c.proctoringService.RecordFocusEvent(ctx.Request.Context(), middleware.CurrentIdentity(ctx), req); err != nil {
		if service.KindOf(err) == service.KindInternal {
			log.Error().Err(err).Msg("SaveFocus: service error")
		}
		controller.RespondStatusError(ctx, controller.StatusMessage(err))
		return
	}
	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: controller.StatusOK})
}

// SaveScreenshot godoc
// @Summary Store a proctoring screenshot and relay it to the administrator
// @Description The screenshot is a data URL or bare base64. A failed relay still answers status "ok".
// @Tags Proctoring
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param screenshot body dto.ScreenshotRequest true "Screenshot"
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} dto.ErrorResponse "auth required"
// @Router /test/{id}/screenshot [post]
func (c *UserTestController) SaveScreenshot(ctx *gin.Context) {
	if ctx.Request.Method != http.MethodPost {
		controller.RespondStatusError(ctx, "POST required")
		return
	}
	testID, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ScreenshotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondStatusError(ctx, "Invalid JSON")
		return
	}

	outcome, err := c.screenshotService.CaptureScreenshot(ctx.Request.Context(), testID, middleware.CurrentIdentity(ctx), req)
	if err != nil {
		if service.KindOf(err) == service.KindInternal {
			log.Error().Err(err).Uint("testID", testID).Msg("SaveScreenshot: service error")
		}
		controller.RespondStatusError(ctx, controller.StatusMessage(err))
		return
	}

	msg := service.MsgScreenshotNotSent
	if outcome.Sent {
		msg = service.MsgScreenshotSent
	}
	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: controller.StatusOK, Msg: msg})
}
