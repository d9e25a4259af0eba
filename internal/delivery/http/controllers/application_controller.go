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

// SubmitApplicationRequest is the request body for POST /applications.
type SubmitApplicationRequest struct {
	Position string `json:"position"`
	Answers  string `json:"answers"`
}

// Validate implements Validator.
func (s SubmitApplicationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Position) == "" {
		errs = append(errs, "position is required")
	}
	return errs
}

// DecideApplicationRequest is the request body for POST /admin/applications/{applicationID}/decision.
type DecideApplicationRequest struct {
	Accept *bool `json:"accept"`
}

// Validate implements Validator.
func (d DecideApplicationRequest) Validate() []string {
	if d.Accept == nil {
		return []string{"accept is required"}
	}
	return nil
}

// ApplicationSuccessResponse is the success response envelope for single-application endpoints.
type ApplicationSuccessResponse struct {
	Data  *domain.Application `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListMyApplicationsSuccessResponse is the success response envelope for GET /applications/me.
type ListMyApplicationsSuccessResponse struct {
	Data  []*domain.Application `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListApplicationsResponse is the data payload for GET /admin/applications.
type ListApplicationsResponse struct {
	Items      []*domain.Application  `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListApplicationsSuccessResponse is the success response envelope for GET /admin/applications.
type ListApplicationsSuccessResponse struct {
	Data  ListApplicationsResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type ApplicationController struct {
	Logger  *slog.Logger
	Service domain.ApplicationService
}

func NewApplicationController(logger *slog.Logger, svc domain.ApplicationService) *ApplicationController {
	return &ApplicationController{
		Logger:  logger,
		Service: svc,
	}
}

// Submit godoc
// @Summary Submit an exec-position application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitApplicationRequest true "Position and answers"
// @Success 201 {object} controllers.ApplicationSuccessResponse "data contains the pending application"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /applications [post]
func (c *ApplicationController) Submit(w http.ResponseWriter, r *http.Request) {
	profileID, ok := middleware.ProfileIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SubmitApplicationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	app, err := c.Service.Submit(r.Context(), profileID, strings.TrimSpace(req.Position), req.Answers)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, app)
}

// ListMine godoc
// @Summary List the caller's applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyApplicationsSuccessResponse "data is an array of applications"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /applications/me [get]
func (c *ApplicationController) ListMine(w http.ResponseWriter, r *http.Request) {
	profileID, ok := middleware.ProfileIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	apps, err := c.Service.ListMine(r.Context(), profileID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if apps == nil {
		apps = []*domain.Application{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, apps)
}

// List godoc
// @Summary List applications
// @Description Returns a paginated list of applications, optionally filtered by status (pending, accepted, rejected). Exec/admin only.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListApplicationsSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown status)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/applications [get]
func (c *ApplicationController) List(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	params := helpers.ParsePagination(r)
	apps, total, err := c.Service.List(r.Context(), status, params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if apps == nil {
		apps = []*domain.Application{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListApplicationsResponse{Items: apps, Pagination: meta})
}

// Decide godoc
// @Summary Accept or reject an application
// @Description Sets a pending application's final status and emails the applicant the outcome. Only pending applications can be decided. Exec/admin only.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicationID path string true "Application ID (UUID)"
// @Param body body DecideApplicationRequest true "Decision"
// @Success 200 {object} controllers.ApplicationSuccessResponse "data contains the decided application"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (already decided)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/applications/{applicationID}/decision [post]
func (c *ApplicationController) Decide(w http.ResponseWriter, r *http.Request) {
	applicationID := r.PathValue("applicationID")
	if !uuidRegex.MatchString(applicationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "applicationID must be a UUID")
		return
	}
	var req DecideApplicationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	app, err := c.Service.Decide(r.Context(), applicationID, *req.Accept)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "application not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "application already decided")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, app)
}
