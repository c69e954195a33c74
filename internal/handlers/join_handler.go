package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/access"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/helpers"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/middleware"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/store"
)

type JoinRequest struct {
	Code    string `json:"code"`
	Email   string `json:"email"`
	Mode    string `json:"mode"`
	EventID string `json:"event_id"`
}

// Join runs a full join attempt and hands back the event plus the session
// blob the client persists locally. The server keeps no session state.
func Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	mode := models.AccessMode(req.Mode)
	if req.Mode == "" {
		mode = models.AccessModeStandard
	}
	if !mode.Valid() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown access mode.")
		return
	}

	orchestrator := access.NewOrchestrator(store.New(gormDB), middleware.GetLogger(c))
	result, err := orchestrator.Join(c.Request.Context(), access.JoinInput{
		Code:    req.Code,
		Email:   req.Email,
		Mode:    mode,
		EventID: req.EventID,
	})
	if err != nil {
		var joinErr *access.JoinError
		if errors.As(err, &joinErr) {
			helpers.RespondWithError(c, joinStatus(joinErr.Reason), joinErr.Message)
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Join failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":   result.Event,
		"session": result.Session,
	})
}

func joinStatus(reason access.FailReason) int {
	switch reason {
	case access.ReasonMissingCode, access.ReasonMissingEmail, access.ReasonInvalidEmail:
		return http.StatusBadRequest
	case access.ReasonEventNotFound:
		return http.StatusNotFound
	case access.ReasonProfileCreate:
		return http.StatusConflict
	case access.ReasonStoreUnavailable:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// LookupEventByCode backs the booth-detection flow: the client resolves a
// code first and routes to the booth screen when the event turns out to be
// email-only.
func LookupEventByCode(c *gin.Context) {
	code := c.Param("code")

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	resolver := access.NewResolver(store.New(gormDB))
	event, err := resolver.Resolve(c.Request.Context(), code, access.KindStandardCode)
	if err != nil {
		if errors.Is(err, access.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error looking up event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":       event,
		"access_mode": event.AccessMode,
	})
}
