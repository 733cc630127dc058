package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type WelcomeHandler struct{}

func NewWelcomeHandler() *WelcomeHandler {
	return &WelcomeHandler{}
}

// Index confirms the API is reachable.
//
// @Summary      API root
// @Tags         meta
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *WelcomeHandler) Index(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome to test api")
}

// Welcome is the token-gated acknowledgment route.
//
// @Summary      Protected welcome
// @Tags         auth
// @Produce      plain
// @Security     BearerAuth
// @Success      200  {string}  string
// @Failure      401  {object}  errorBody
// @Router       /welcome [post]
func (h *WelcomeHandler) Welcome(c echo.Context) error {
	if _, err := ctxClaims(c); err != nil {
		return err
	}
	return c.String(http.StatusOK, "Welcome")
}
