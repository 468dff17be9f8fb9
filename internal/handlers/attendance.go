package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portal-backend/internal/attendance"
	"portal-backend/internal/httpx"
)

type AttendanceHandler struct {
	Service *attendance.Service
}

func NewAttendanceHandler(service *attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{Service: service}
}

// Today returns today's record, or null if the user has not checked in.
func (h *AttendanceHandler) Today(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rec, err := h.Service.Today(c.Request.Context(), userID)
	if err != nil {
		failUnexpected(c, "attendance today", err)
		return
	}

	httpx.OK(c, http.StatusOK, rec, "Today's attendance retrieved")
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rec, err := h.Service.CheckIn(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			httpx.Fail(c, http.StatusBadRequest, "ALREADY_CHECKED_IN", "You have already checked in today")
			return
		}
		failUnexpected(c, "attendance check-in", err)
		return
	}

	httpx.OK(c, http.StatusCreated, rec, "Checked in successfully")
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rec, err := h.Service.CheckOut(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNotCheckedIn):
			httpx.Fail(c, http.StatusBadRequest, "NOT_CHECKED_IN", "You have not checked in today")
		case errors.Is(err, attendance.ErrAlreadyCheckedOut):
			httpx.Fail(c, http.StatusBadRequest, "ALREADY_CHECKED_OUT", "You have already checked out today")
		default:
			failUnexpected(c, "attendance check-out", err)
		}
		return
	}

	httpx.OK(c, http.StatusOK, rec, "Checked out successfully")
}
