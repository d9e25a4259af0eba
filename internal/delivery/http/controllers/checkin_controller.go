package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"clubportal/internal/delivery/http/helpers"
	"clubportal/internal/delivery/http/middleware"
	"clubportal/internal/domain"
)

// SelfCheckInRequest is the request body for POST /checkin.
type SelfCheckInRequest struct {
	EventID      string `json:"event_id"`
	MembershipID string `json:"membership_id"`
	Token        string `json:"token"`
}

// Validate implements Validator.
func (s SelfCheckInRequest) Validate() []string {
	var errs []string
	if s.EventID == "" {
		errs = append(errs, "event_id is required")
	} else if !uuidRegex.MatchString(s.EventID) {
		errs = append(errs, "event_id must be a UUID")
	}
	if s.MembershipID == "" {
		errs = append(errs, "membership_id is required")
	} else if !uuidRegex.MatchString(s.MembershipID) {
		errs = append(errs, "membership_id must be a UUID")
	}
	if s.Token == "" {
		errs = append(errs, "token is required")
	}
	return errs
}

// ManualCheckInRequest is the request body for POST /admin/checkin and
// DELETE /admin/checkin.
type ManualCheckInRequest struct {
	EventID   string `json:"event_id"`
	ProfileID string `json:"profile_id"`
}

// Validate implements Validator.
func (m ManualCheckInRequest) Validate() []string {
	var errs []string
	if m.EventID == "" {
		errs = append(errs, "event_id is required")
	} else if !uuidRegex.MatchString(m.EventID) {
		errs = append(errs, "event_id must be a UUID")
	}
	if m.ProfileID == "" {
		errs = append(errs, "profile_id is required")
	} else if !uuidRegex.MatchString(m.ProfileID) {
		errs = append(errs, "profile_id must be a UUID")
	}
	return errs
}

// CheckInResponse is the data payload for successful check-in requests.
type CheckInResponse struct {
	Profile          *domain.Profile `json:"profile"`
	AlreadyCheckedIn bool            `json:"already_checked_in"`
}

// CheckInSuccessResponse is the success response envelope for check-in endpoints.
type CheckInSuccessResponse struct {
	Data  CheckInResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UncheckInResponse is the data payload for DELETE /admin/checkin.
type UncheckInResponse struct {
	Status string `json:"status"`
}

// AttendanceStatusResponse is the data payload for GET /events/{eventID}/attendance/me.
type AttendanceStatusResponse struct {
	CheckedIn bool `json:"checked_in"`
}

// AttendanceStatusSuccessResponse is the success response envelope for GET /events/{eventID}/attendance/me.
type AttendanceStatusSuccessResponse struct {
	Data  AttendanceStatusResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ListAttendanceSuccessResponse is the success response envelope for GET /admin/events/{eventID}/attendance.
type ListAttendanceSuccessResponse struct {
	Data  []*domain.AttendanceWithProfile `json:"data"`
	Error *helpers.APIError               `json:"error"`
}

type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
}

func NewCheckInController(logger *slog.Logger, svc domain.CheckInService) *CheckInController {
	return &CheckInController{
		Logger:  logger,
		Service: svc,
	}
}

// writeCheckInError maps check-in pipeline errors onto the wire. The
// duplicate case is a success shape with already_checked_in set, because the
// scanning station treats it as "let them through".
func (c *CheckInController) writeCheckInError(w http.ResponseWriter, r *http.Request, profile *domain.Profile, err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		helpers.WriteJSONSuccess(w, http.StatusOK, CheckInResponse{Profile: profile, AlreadyCheckedIn: true})
	case errors.Is(err, domain.ErrEventNotActive):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCheckInToken):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInvalidMembership),
		errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// SelfCheckIn godoc
// @Summary Check in with a rotating token
// @Description Validates the event's buffered window, resolves the membership, verifies the presented proof-of-presence token (30-second steps, one step of clock tolerance each way), and records attendance. Re-presenting an accepted code returns 200 with already_checked_in true.
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SelfCheckInRequest true "Event, membership, and rotating token"
// @Success 200 {object} controllers.CheckInSuccessResponse "data contains the profile; already_checked_in true on repeat"
// @Success 201 {object} controllers.CheckInSuccessResponse "data contains the profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (token invalid or expired)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or membership)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (window closed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin [post]
func (c *CheckInController) SelfCheckIn(w http.ResponseWriter, r *http.Request) {
	var req SelfCheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	profile, err := c.Service.SelfCheckIn(r.Context(), req.EventID, req.MembershipID, req.Token)
	if err != nil {
		c.writeCheckInError(w, r, profile, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CheckInResponse{Profile: profile})
}

// ManualCheckIn godoc
// @Summary Check in a profile manually
// @Description Records attendance for a directly identified profile without a token. The window check still applies. Admin only.
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ManualCheckInRequest true "Event and profile"
// @Success 200 {object} controllers.CheckInSuccessResponse "data contains the profile; already_checked_in true on repeat"
// @Success 201 {object} controllers.CheckInSuccessResponse "data contains the profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or profile)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (window closed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/checkin [post]
func (c *CheckInController) ManualCheckIn(w http.ResponseWriter, r *http.Request) {
	var req ManualCheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	profile, err := c.Service.ManualCheckIn(r.Context(), req.EventID, req.ProfileID)
	if err != nil {
		c.writeCheckInError(w, r, profile, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CheckInResponse{Profile: profile})
}

// UncheckIn godoc
// @Summary Remove an attendance record
// @Description Deletes the attendance row for the (event, profile) pair. No window check. Admin only.
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ManualCheckInRequest true "Event and profile"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no attendance row)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/checkin [delete]
func (c *CheckInController) UncheckIn(w http.ResponseWriter, r *http.Request) {
	var req ManualCheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UncheckIn(r.Context(), req.EventID, req.ProfileID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not checked in")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UncheckInResponse{Status: "removed"})
}

// MyAttendanceStatus godoc
// @Summary Report whether the caller is checked in to an event
// @Description Fail-open read for the QR display's polling loop: unauthenticated callers and lookup errors both yield checked_in false rather than an error.
// @Tags checkin
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.AttendanceStatusSuccessResponse "data contains checked_in"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events/{eventID}/attendance/me [get]
func (c *CheckInController) MyAttendanceStatus(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a UUID")
		return
	}
	profileID, ok := middleware.ProfileIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONSuccess(w, http.StatusOK, AttendanceStatusResponse{CheckedIn: false})
		return
	}
	checkedIn, err := c.Service.Status(r.Context(), eventID, profileID)
	if err != nil {
		// Poll endpoint; a transient failure reads as "not yet".
		c.Logger.WarnContext(r.Context(), "attendance status lookup failed", "event_id", eventID, "err", err)
		helpers.WriteJSONSuccess(w, http.StatusOK, AttendanceStatusResponse{CheckedIn: false})
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AttendanceStatusResponse{CheckedIn: checkedIn})
}

// ListAttendance godoc
// @Summary List an event's attendance
// @Description Returns attendance rows with holder profiles, ordered by check-in time. Exec/admin only.
// @Tags checkin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListAttendanceSuccessResponse "data is an array of attendance records"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/attendance [get]
func (c *CheckInController) ListAttendance(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a UUID")
		return
	}
	list, err := c.Service.ListAttendance(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if list == nil {
		list = []*domain.AttendanceWithProfile{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}
