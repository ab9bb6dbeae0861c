package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// PurgeSuccessResponse is the success envelope for POST /admin/purge (200).
type PurgeSuccessResponse struct {
	Data  domain.PurgeResult `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type PurgeController struct {
	Logger  *slog.Logger
	Service domain.PurgeService
}

func NewPurgeController(logger *slog.Logger, svc domain.PurgeService) *PurgeController {
	return &PurgeController{Logger: logger, Service: svc}
}

// RunPurge godoc
// @Summary Purge stale registrations (admin)
// @Description Deletes unsubmitted registrations older than the event's registration time limit and cancels unconfirmed ones older than its confirm time limit. With dry_run=true nothing changes and the counts are what a run would affect.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param dry_run query bool false "Only count matching registrations"
// @Success 200 {object} controllers.PurgeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /admin/purge [post]
func (c *PurgeController) RunPurge(w http.ResponseWriter, r *http.Request) {
	dryRun := false
	if s := r.URL.Query().Get("dry_run"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "dry_run must be a boolean")
			return
		}
		dryRun = v
	}
	run := c.Service.RunPurge
	if dryRun {
		run = c.Service.Preview
	}
	result, err := run(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
