package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examguard/internal/auth"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/service"
	"github.com/rs/zerolog/log"
)

// Mode selects how a missing or insufficient session is answered.
type Mode int

const (
	// ModePage redirects the browser to the login page.
	ModePage Mode = iota
	// ModeAPI answers 403 with a JSON body and never redirects.
	ModeAPI
)

const (
	SessionCookie = "session"
	LoginPath     = "/login"
	identityKey   = "identity"
)

type Auth struct {
	authService service.AuthService
}

func NewAuth(authService service.AuthService) *Auth {
	return &Auth{authService: authService}
}

// RequireSession resolves the caller from the session cookie or a bearer
// token and stores the identity on the context.
func (a *Auth) RequireSession(mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			deny(c, mode, "auth required")
			return
		}
		who, err := a.authService.Resolve(c.Request.Context(), token)
		if err != nil {
			if service.KindOf(err) == service.KindInternal {
				log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Session lookup failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
				return
			}
			deny(c, mode, "auth required")
			return
		}
		c.Set(identityKey, who)
		c.Next()
	}
}

// RequireSuperuser must run after RequireSession.
func (a *Auth) RequireSuperuser(mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		who := CurrentIdentity(c)
		if !who.IsSuperuser {
			log.Warn().Uint("userID", who.UserID).Str("path", c.Request.URL.Path).Msg("Superuser required")
			deny(c, mode, "superuser required")
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the caller resolved by RequireSession, or the zero
// Identity on routes without a session gate.
func CurrentIdentity(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if who, ok := v.(auth.Identity); ok {
			return who
		}
	}
	return auth.Identity{}
}

func SessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// LoginURL is the login page with next pointing back at the current request.
func LoginURL(c *gin.Context) string {
	return LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
}

func deny(c *gin.Context, mode Mode, msg string) {
	if mode == ModePage {
		c.Redirect(http.StatusFound, LoginURL(c))
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: msg})
}
