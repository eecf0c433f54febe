package controllers

import (
	"errors"
	"net/http"

	"github.com/Kevbec/SalonManager/store"
	"github.com/Kevbec/SalonManager/utils"
	"github.com/gin-gonic/gin"
)

// Sessions hands out the per-user state containers. Wired once at startup.
var Sessions *store.Manager

func Setup(sessions *store.Manager) {
	Sessions = sessions
}

// currentUserID reads the authenticated user id bound by the auth
// middleware. Empty when the request is unauthenticated.
func currentUserID(c *gin.Context) string {
	userID, exists := c.Get("userId")
	if !exists {
		return ""
	}
	id, _ := userID.(string)
	return id
}

// session resolves the caller's state container, responding 401 itself
// when no user is bound.
func session(c *gin.Context) (*store.Store, bool) {
	userID := currentUserID(c)
	if userID == "" {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return nil, false
	}
	s, err := Sessions.Get(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return nil, false
	}
	return s, true
}

// respondStoreError maps store errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotAuthenticated):
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case store.IsValidation(err):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
	}
}
