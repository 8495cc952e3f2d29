package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"

	"pressroom-backend/internal/domains/session"
	"pressroom-backend/internal/shared/middleware"
	"pressroom-backend/internal/shared/response"
	"pressroom-backend/pkg/logger"
	"pressroom-backend/pkg/token"
)

type SessionHandler struct {
	service   session.Service
	cookieCfg middleware.SessionCookieConfig
	tokens    *token.Manager
}

func NewSessionHandler(svc session.Service, cookieCfg middleware.SessionCookieConfig, tokens *token.Manager) *SessionHandler {
	return &SessionHandler{
		service:   svc,
		cookieCfg: cookieCfg,
		tokens:    tokens,
	}
}

// Login - POST /v1/sessions
// A successful login always (re-)issues the session cookie and mints a
// bearer token for clients that talk to the API without cookies.
func (h *SessionHandler) Login(c *gin.Context) {
	var req session.LoginRequest

	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	s, u, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeSessionError(c, err)
		return
	}

	middleware.SetSessionCookie(c, h.cookieCfg, s.ID)

	resp := s.ToResponse(u.Name)

	apiToken, err := h.tokens.GenerateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		// Cookie auth still works without the token.
		logger.Warn("could not mint api token at login", err)
	} else {
		resp.Token = apiToken
	}

	response.Success(c, http.StatusCreated, resp)
}

// Logout - DELETE /v1/sessions
func (h *SessionHandler) Logout(c *gin.Context) {
	cookie, err := c.Cookie(h.cookieCfg.Name)
	if err == nil && cookie != "" {
		if err := h.service.Delete(c.Request.Context(), cookie); err != nil {
			writeSessionError(c, err)
			return
		}
	}

	middleware.ClearSessionCookie(c, h.cookieCfg)

	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// Get - GET /v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, s)
}

func writeSessionError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationFailed(c, verrs)
		return
	}

	response.ErrorResponse(c, session.ToHTTPStatus(err), session.ToErrorCode(err), err.Error())
}
