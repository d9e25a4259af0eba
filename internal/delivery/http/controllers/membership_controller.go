package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"clubportal/internal/delivery/http/helpers"
	"clubportal/internal/delivery/http/middleware"
	"clubportal/internal/domain"
)

// GrantMembershipRequest is the request body for POST /admin/memberships.
type GrantMembershipRequest struct {
	ProfileID string `json:"profile_id"`
	Term      string `json:"term"`
}

// Validate implements Validator.
func (g GrantMembershipRequest) Validate() []string {
	var errs []string
	if g.ProfileID == "" {
		errs = append(errs, "profile_id is required")
	} else if !uuidRegex.MatchString(g.ProfileID) {
		errs = append(errs, "profile_id must be a UUID")
	}
	if strings.TrimSpace(g.Term) == "" {
		errs = append(errs, "term is required")
	}
	return errs
}

// MembershipSuccessResponse is the success response envelope for single-membership endpoints.
type MembershipSuccessResponse struct {
	Data  *domain.Membership `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListMembershipsResponse is the data payload for GET /admin/memberships.
type ListMembershipsResponse struct {
	Items      []*domain.MembershipWithProfile `json:"items"`
	Pagination helpers.PaginationMeta          `json:"pagination"`
}

// ListMembershipsSuccessResponse is the success response envelope for GET /admin/memberships.
type ListMembershipsSuccessResponse struct {
	Data  ListMembershipsResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// RevokeMembershipResponse is the data payload for DELETE /admin/memberships/{membershipID}.
type RevokeMembershipResponse struct {
	Status string `json:"status"`
}

type MembershipController struct {
	Logger  *slog.Logger
	Service domain.MembershipService
}

func NewMembershipController(logger *slog.Logger, svc domain.MembershipService) *MembershipController {
	return &MembershipController{
		Logger:  logger,
		Service: svc,
	}
}

// Grant godoc
// @Summary Grant a membership
// @Description Grants the profile a membership for the term and emails a confirmation. Exec/admin only.
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GrantMembershipRequest true "Profile and term"
// @Success 201 {object} controllers.MembershipSuccessResponse "data contains the membership"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no such profile)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already a member for the term)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/memberships [post]
func (c *MembershipController) Grant(w http.ResponseWriter, r *http.Request) {
	var req GrantMembershipRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	membership, err := c.Service.Grant(r.Context(), req.ProfileID, req.Term)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		if errors.Is(err, domain.ErrAlreadyMember) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already a member for that term")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, membership)
}

// Revoke godoc
// @Summary Revoke a membership
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param membershipID path string true "Membership ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/memberships/{membershipID} [delete]
func (c *MembershipController) Revoke(w http.ResponseWriter, r *http.Request) {
	membershipID := r.PathValue("membershipID")
	if !uuidRegex.MatchString(membershipID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "membershipID must be a UUID")
		return
	}
	if err := c.Service.Revoke(r.Context(), membershipID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "membership not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RevokeMembershipResponse{Status: "revoked"})
}

// GetMine godoc
// @Summary Get the caller's current membership
// @Description Returns the newest membership held by the authenticated caller, or 404 when none exists.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MembershipSuccessResponse "data contains the membership"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /memberships/me [get]
func (c *MembershipController) GetMine(w http.ResponseWriter, r *http.Request) {
	profileID, ok := middleware.ProfileIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	membership, err := c.Service.GetCurrentByProfile(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no membership")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, membership)
}

// List godoc
// @Summary List memberships
// @Description Returns a paginated list of memberships with holder profiles, optionally filtered by term. Exec/admin only.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param term query string false "Filter by term (e.g. F25)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListMembershipsSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/memberships [get]
func (c *MembershipController) List(w http.ResponseWriter, r *http.Request) {
	term := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("term")))
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.List(r.Context(), term, params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if list == nil {
		list = []*domain.MembershipWithProfile{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListMembershipsResponse{Items: list, Pagination: meta})
}
