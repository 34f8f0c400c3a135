package account

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examguard/config"
	"github.com/lshigami/examguard/internal/auth"
	"github.com/lshigami/examguard/internal/controller"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/middleware"
	"github.com/lshigami/examguard/internal/service"
	"github.com/rs/zerolog/log"
)

const defaultLanding = "/tests"

type AccountController struct {
	authService  service.AuthService
	cookieMaxAge int
	secureCookie bool
}

// NewAccountController keeps the cookie lifetime in step with the token
// lifetime, including the default applied when SESSION_TTL_HOURS is unset.
func NewAccountController(authService service.AuthService, tokens *auth.TokenManager, cfg *config.Config) *AccountController {
	return &AccountController{
		authService:  authService,
		cookieMaxAge: int(tokens.TTL().Seconds()),
		secureCookie: cfg.Server.GinMode == gin.ReleaseMode,
	}
}

// LoginForm godoc
// @Summary Describe the login form
// @Tags Account
// @Produce json
// @Param next query string false "Where to go after login"
// @Success 200 {object} dto.FormSchemaResponse
// @Router /login [get]
func (c *AccountController) LoginForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.FormSchemaResponse{
		Fields: []string{"username", "password"},
		Next:   safeNext(ctx.Query("next")),
	})
}

// Login godoc
// @Summary Log in
// @Description Accepts form fields or JSON. Sets the session cookie and also returns the token for bearer use.
// @Tags Account
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Param next query string false "Where to go after login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Missing fields"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (c *AccountController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		log.Warn().Err(err).Msg("Login: failed to bind credentials")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		controller.RespondError(ctx, err, "Login")
		return
	}

	next := ctx.Query("next")
	if next == "" {
		next = ctx.PostForm("next")
	}
	resp.Redirect = safeNext(next)

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, resp.Token, c.cookieMaxAge, "/", "", c.secureCookie, true)
	ctx.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Log out
// @Tags Account
// @Success 302
// @Router /logout [get]
func (c *AccountController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", c.secureCookie, true)
	ctx.Redirect(http.StatusFound, middleware.LoginPath)
}

// safeNext only allows local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return defaultLanding
	}
	return next
}
