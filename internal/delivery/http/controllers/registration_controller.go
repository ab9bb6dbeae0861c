package controllers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

// TicketLineRequest is one ticket line in a registration request body.
type TicketLineRequest struct {
	TicketID string `json:"ticket_id"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// MoneyRequest is an amount in minor units.
type MoneyRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func toTicketLines(in []TicketLineRequest) []domain.TicketLine {
	return lo.Map(in, func(t TicketLineRequest, _ int) domain.TicketLine {
		return domain.TicketLine{TicketID: t.TicketID, Title: t.Title, Quantity: t.Quantity}
	})
}

// CreateRegistrationRequest is the request body for POST /occurrences/{occurrenceID}/registrations.
type CreateRegistrationRequest struct {
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Status   domain.Status       `json:"status"`
	MemberID *string             `json:"member_id"`
	Tickets  []TicketLineRequest `json:"tickets"`
	Total    MoneyRequest        `json:"total"`
}

// Validate implements Validator. Semantic checks (email format, quantities) are left to the service.
func (c CreateRegistrationRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Email == "" {
		errs = append(errs, "email is required")
	}
	if c.Status == "" {
		errs = append(errs, "status is required")
	}
	return errs
}

// CreateRegistrationResponse is the data of a successful create.
type CreateRegistrationResponse struct {
	Registration     *domain.Registration `json:"registration"`
	AccessLink       string               `json:"access_link"`
	NotificationSent bool                 `json:"notification_sent"`
}

// CreateRegistrationSuccessResponse is the success response envelope for POST /occurrences/{occurrenceID}/registrations (201).
type CreateRegistrationSuccessResponse struct {
	Data  CreateRegistrationResponse `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// RegistrationViewSuccessResponse is the success envelope for registration reads.
type RegistrationViewSuccessResponse struct {
	Data  *domain.RegistrationView `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// RegistrationSuccessResponse is the success envelope for registration mutations.
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// UpdateStatusRequest is the request body for PATCH /admin/registrations/{registrationID}/status.
type UpdateStatusRequest struct {
	Status domain.Status `json:"status"`
}

func (u UpdateStatusRequest) Validate() []string {
	if !u.Status.Valid() {
		return []string{"status must be one of unsubmitted, unconfirmed, valid, canceled"}
	}
	return nil
}

// ReplaceTicketsRequest is the request body for PUT /admin/registrations/{registrationID}/tickets.
type ReplaceTicketsRequest struct {
	Tickets []TicketLineRequest `json:"tickets"`
	Total   MoneyRequest        `json:"total"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// pathUUID reads a UUID path value, writing a 400 when it is missing or malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return id.String(), true
}

// CreateRegistration godoc
// @Summary Register for an event occurrence
// @Description Creates a registration in status unsubmitted or unconfirmed and returns the capability link that grants the registrant access. The event manager is notified by e-mail when configured; a failed notification does not undo the registration.
// @Tags registrations
// @Accept json
// @Produce json
// @Param occurrenceID path string true "Occurrence ID (UUID)"
// @Param registration body CreateRegistrationRequest true "Registration data"
// @Success 201 {object} controllers.CreateRegistrationSuccessResponse "data contains the registration and its access link"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /occurrences/{occurrenceID}/registrations [post]
func (c *RegistrationController) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	occurrenceID, ok := pathUUID(w, r, "occurrenceID")
	if !ok {
		return
	}
	var req CreateRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.Create(r.Context(), domain.CreateRegistrationInput{
		OccurrenceID: occurrenceID,
		MemberID:     req.MemberID,
		Name:         req.Name,
		Email:        req.Email,
		Status:       req.Status,
		Tickets:      toTicketLines(req.Tickets),
		Total:        domain.Money{Amount: req.Total.Amount, Currency: req.Total.Currency},
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateRegistrationResponse{
		Registration:     res.Registration,
		AccessLink:       res.AccessLink,
		NotificationSent: res.Notified,
	})
}

// tokenRequest extracts the registration ID and capability token of a public request.
func tokenRequest(w http.ResponseWriter, r *http.Request) (eventID, registrationID, token string, ok bool) {
	if eventID, ok = pathUUID(w, r, "eventID"); !ok {
		return "", "", "", false
	}
	if registrationID, ok = pathUUID(w, r, "registrationID"); !ok {
		return "", "", "", false
	}
	token = r.URL.Query().Get("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing token")
		return "", "", "", false
	}
	return eventID, registrationID, token, true
}

// GetRegistrationByToken godoc
// @Summary Get a registration by capability link
// @Description Returns the registration named in the access link. The token query parameter must match the registration's token.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param registrationID path string true "Registration ID (UUID)"
// @Param token query string true "Capability token from the access link"
// @Success 200 {object} controllers.RegistrationViewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/registration/{registrationID} [get]
func (c *RegistrationController) GetRegistrationByToken(w http.ResponseWriter, r *http.Request) {
	eventID, registrationID, token, ok := tokenRequest(w, r)
	if !ok {
		return
	}
	view, err := c.Service.GetByToken(r.Context(), registrationID, token)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if view.EventID != eventID {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "registration not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// SubmitRegistration godoc
// @Summary Submit a registration
// @Description Moves an unsubmitted registration to unconfirmed on behalf of the capability token holder.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param registrationID path string true "Registration ID (UUID)"
// @Param token query string true "Capability token from the access link"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/registration/{registrationID}/submit [post]
func (c *RegistrationController) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	c.transitionByToken(w, r, domain.StatusUnconfirmed)
}

// CancelRegistration godoc
// @Summary Cancel a registration
// @Description Cancels the registration on behalf of the capability token holder. An unsubmitted registration is deleted instead.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param registrationID path string true "Registration ID (UUID)"
// @Param token query string true "Capability token from the access link"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/registration/{registrationID}/cancel [post]
func (c *RegistrationController) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	c.transitionByToken(w, r, domain.StatusCanceled)
}

func (c *RegistrationController) transitionByToken(w http.ResponseWriter, r *http.Request, to domain.Status) {
	eventID, registrationID, token, ok := tokenRequest(w, r)
	if !ok {
		return
	}
	view, err := c.Service.GetByToken(r.Context(), registrationID, token)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if view.EventID != eventID {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "registration not found")
		return
	}
	reg, err := c.Service.TransitionByToken(r.Context(), registrationID, token, to)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// principal returns the authenticated principal or writes a 401.
func principal(w http.ResponseWriter, r *http.Request) (*domain.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	}
	return p, ok
}

// GetRegistration godoc
// @Summary Get a registration (admin)
// @Description Returns the registration with its event title, total places and confirmation deadline. Requires the registrations:manage capability and view permission on the occurrence.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} controllers.RegistrationViewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/registrations/{registrationID} [get]
func (c *RegistrationController) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	view, err := c.Service.Get(r.Context(), p, id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// ListRegistrationsResponse is the data of GET /admin/occurrences/{occurrenceID}/registrations.
type ListRegistrationsResponse struct {
	Items      []*domain.Registration `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListRegistrationsSuccessResponse is the success envelope for the registration list.
type ListRegistrationsSuccessResponse struct {
	Data  ListRegistrationsResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// ListRegistrations godoc
// @Summary List an occurrence's registrations (admin)
// @Description Returns registrations of the occurrence, newest first, optionally filtered by status.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param occurrenceID path string true "Occurrence ID (UUID)"
// @Param status query string false "Filter by status" Enums(unsubmitted, unconfirmed, valid, canceled)
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/occurrences/{occurrenceID}/registrations [get]
func (c *RegistrationController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	occurrenceID, ok := pathUUID(w, r, "occurrenceID")
	if !ok {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	page, err := helpers.ParsePagination(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	filter := domain.RegistrationFilter{
		OccurrenceID: occurrenceID,
		Status:       domain.Status(r.URL.Query().Get("status")),
	}
	regs, total, err := c.Service.List(r.Context(), p, filter, page)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListRegistrationsResponse{
		Items:      regs,
		Pagination: helpers.NewPaginationMeta(page, total),
	})
}

// UpdateRegistrationStatus godoc
// @Summary Change a registration's status (admin)
// @Description Applies one lifecycle transition. Disallowed transitions return 409 and leave the registration unchanged.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param body body UpdateStatusRequest true "Target status"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/registrations/{registrationID}/status [patch]
func (c *RegistrationController) UpdateRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	reg, err := c.Service.Transition(r.Context(), p, id, req.Status)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// ReplaceRegistrationTickets godoc
// @Summary Replace a registration's tickets (admin)
// @Description Replaces the ticket lines and stored total in one transaction. Canceled registrations cannot be edited.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param body body ReplaceTicketsRequest true "New ticket lines and total"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/registrations/{registrationID}/tickets [put]
func (c *RegistrationController) ReplaceRegistrationTickets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	var req ReplaceTicketsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	reg, err := c.Service.ReplaceTickets(r.Context(), p, id, toTicketLines(req.Tickets),
		domain.Money{Amount: req.Total.Amount, Currency: req.Total.Currency})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// DeleteRegistration godoc
// @Summary Delete a registration (admin)
// @Description Removes the registration and its ticket lines.
// @Tags admin
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 204 "No content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/registrations/{registrationID} [delete]
func (c *RegistrationController) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), p, id); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
