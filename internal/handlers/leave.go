package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portal-backend/internal/httpx"
	"portal-backend/internal/models"
	"portal-backend/internal/store"
)

type LeaveHandler struct {
	Store store.Store
}

type applyLeaveRequest struct {
	LeaveTypeID string `json:"leaveTypeId" binding:"required"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

func NewLeaveHandler(st store.Store) *LeaveHandler {
	return &LeaveHandler{Store: st}
}

func (h *LeaveHandler) ListTypes(c *gin.Context) {
	types, err := h.Store.LeaveTypes(c.Request.Context())
	if err != nil {
		failUnexpected(c, "leave types", err)
		return
	}
	httpx.OK(c, http.StatusOK, types, "Leave types retrieved successfully")
}

func (h *LeaveHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	requests, err := h.Store.LeaveRequestsByUser(c.Request.Context(), userID)
	if err != nil {
		failUnexpected(c, "leave list", err)
		return
	}
	httpx.OK(c, http.StatusOK, requests, "Leaves retrieved successfully")
}

func (h *LeaveHandler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req applyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "All fields are required")
		return
	}

	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid leaveTypeId")
		return
	}
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid startDate")
		return
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid endDate")
		return
	}
	if end.Before(start) {
		httpx.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "endDate cannot be before startDate")
		return
	}

	// Inclusive day count.
	days := int(end.Sub(start).Hours()/24) + 1

	leave := models.LeaveRequest{
		UserID:      userID,
		LeaveTypeID: leaveTypeID,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   days,
		Reason:      req.Reason,
		Status:      models.LeavePending,
	}
	if err := h.Store.CreateLeaveRequest(c.Request.Context(), &leave); err != nil {
		failUnexpected(c, "leave apply", err)
		return
	}

	httpx.OK(c, http.StatusCreated, leave, "Leave application submitted successfully")
}
