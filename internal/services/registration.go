package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

// Date and time layouts used in notification fields.
const (
	notificationDateLayout = "2006-01-02"
	notificationTimeLayout = "15:04"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type registrationService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	tokens           domain.TokenIssuer
	notifier         domain.NotificationGateway
	authz            *Authorizer
	metrics          domain.RegistrationMetrics
	baseURL          string
	location         *time.Location
	logger           *slog.Logger
	now              func() time.Time
}

// NewRegistrationService creates the registration lifecycle service.
// baseURL is the public origin used to build capability links. location is the zone
// notification dates are rendered in; nil means UTC.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	tokens domain.TokenIssuer,
	notifier domain.NotificationGateway,
	authz *Authorizer,
	metrics domain.RegistrationMetrics,
	baseURL string,
	location *time.Location,
	logger *slog.Logger,
) domain.RegistrationService {
	if location == nil {
		location = time.UTC
	}
	return &registrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		tokens:           tokens,
		notifier:         notifier,
		authz:            authz,
		metrics:          metrics,
		baseURL:          baseURL,
		location:         location,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *registrationService) Create(ctx context.Context, in domain.CreateRegistrationInput) (*domain.CreateRegistrationResult, error) {
	if err := validateCreateInput(&in); err != nil {
		return nil, err
	}
	occ, err := s.eventRepo.GetOccurrence(ctx, in.OccurrenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get occurrence: %w: %w", domain.ErrStorageUnavailable, err)
	}

	token, err := s.tokens.Issue()
	if err != nil {
		return nil, fmt.Errorf("issue registration token: %w", err)
	}
	now := s.now().UTC()
	reg := domain.NewRegistration(in.OccurrenceID, in.Name, in.Email, in.Status, in.Tickets, in.Total)
	reg.MemberID = in.MemberID
	reg.Token = token
	reg.CreatedAt = now
	reg.UpdatedAt = now

	if err := s.registrationRepo.Insert(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrConstraintViolation) {
			return nil, fmt.Errorf("insert registration: %w", err)
		}
		return nil, fmt.Errorf("insert registration: %w: %w", domain.ErrStorageUnavailable, err)
	}

	result := &domain.CreateRegistrationResult{
		Registration: reg,
		Occurrence:   occ,
		AccessLink:   reg.AccessLink(domain.EventLink(s.baseURL, occ.EventID)),
	}
	if occ.Event != nil && occ.Event.ManagerEmail != "" {
		err := s.notifier.SendRegistrationCreated(ctx, occ.Event.ManagerEmail, registrationCreatedData(reg, occ, s.location))
		if err != nil {
			s.logger.WarnContext(ctx, "registration notification failed",
				"registration_id", reg.ID, "occurrence_id", occ.ID, "err", err)
			result.NotificationErr = err
		} else {
			result.Notified = true
		}
	}
	if s.metrics != nil {
		s.metrics.ObserveCreated(reg.Status, result.NotificationErr != nil)
	}
	s.logger.InfoContext(ctx, "registration created",
		"registration_id", reg.ID, "occurrence_id", occ.ID, "status", reg.Status)
	return result, nil
}

func validateCreateInput(in *domain.CreateRegistrationInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	var problems []string
	if in.OccurrenceID == "" {
		problems = append(problems, "occurrence_id is required")
	}
	if in.Name == "" {
		problems = append(problems, "name is required")
	}
	if !emailRegexp.MatchString(in.Email) {
		problems = append(problems, "email is not a valid email address")
	}
	if !in.Status.IsInitial() {
		problems = append(problems, "status must be unsubmitted or unconfirmed")
	}
	problems = append(problems, validateTickets(in.Tickets, in.Total)...)
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

func validateTickets(tickets []domain.TicketLine, total domain.Money) []string {
	var problems []string
	seen := make(map[string]struct{}, len(tickets))
	for _, t := range tickets {
		if t.TicketID == "" {
			problems = append(problems, "ticket_id is required")
			continue
		}
		if _, dup := seen[t.TicketID]; dup {
			problems = append(problems, fmt.Sprintf("ticket %s listed twice", t.TicketID))
		}
		seen[t.TicketID] = struct{}{}
		if t.Quantity < 1 {
			problems = append(problems, fmt.Sprintf("ticket %s quantity must be at least 1", t.TicketID))
		}
	}
	if total.Amount < 0 {
		problems = append(problems, "total amount must not be negative")
	}
	switch {
	case total.Currency != "" && len(total.Currency) != 3:
		problems = append(problems, "total currency must be a 3-letter code")
	case total.Amount > 0 && total.Currency == "":
		problems = append(problems, "total currency is required for a non-zero amount")
	}
	return problems
}

func registrationCreatedData(reg *domain.Registration, occ *domain.EventOccurrence, loc *time.Location) *domain.RegistrationCreatedEmailData {
	start, end := occ.StartAt.In(loc), occ.EndAt.In(loc)
	return &domain.RegistrationCreatedEmailData{
		Name:      reg.Name,
		Email:     reg.Email,
		Title:     occ.Title,
		StartDate: start.Format(notificationDateLayout),
		StartTime: start.Format(notificationTimeLayout),
		EndDate:   end.Format(notificationDateLayout),
		EndTime:   end.Format(notificationTimeLayout),
	}
}

// load fetches a registration together with its occurrence.
func (s *registrationService) load(ctx context.Context, id string) (*domain.Registration, *domain.EventOccurrence, error) {
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get registration: %w: %w", domain.ErrStorageUnavailable, err)
	}
	occ, err := s.eventRepo.GetOccurrence(ctx, reg.OccurrenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get occurrence: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return reg, occ, nil
}

// loadByToken fetches a registration whose token matches. A mismatch is reported as ErrForbidden.
func (s *registrationService) loadByToken(ctx context.Context, id, token string) (*domain.Registration, *domain.EventOccurrence, error) {
	if token == "" {
		return nil, nil, domain.ErrForbidden
	}
	reg, occ, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if subtle.ConstantTimeCompare([]byte(reg.Token), []byte(token)) != 1 {
		return nil, nil, domain.ErrForbidden
	}
	return reg, occ, nil
}

func newView(reg *domain.Registration, occ *domain.EventOccurrence) *domain.RegistrationView {
	view := &domain.RegistrationView{
		Registration:  reg,
		EventID:       occ.EventID,
		EventTitle:    occ.Title,
		TotalQuantity: reg.TotalTicketQuantity(),
	}
	if deadline, ok := reg.ConfirmationDeadline(occ.Event); ok {
		view.ConfirmationDeadline = &deadline
	}
	return view
}

func (s *registrationService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.RegistrationView, error) {
	reg, occ, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanView(ctx, p, occ) {
		return nil, domain.ErrForbidden
	}
	return newView(reg, occ), nil
}

func (s *registrationService) GetByToken(ctx context.Context, id, token string) (*domain.RegistrationView, error) {
	reg, occ, err := s.loadByToken(ctx, id, token)
	if err != nil {
		return nil, err
	}
	return newView(reg, occ), nil
}

func (s *registrationService) Transition(ctx context.Context, p *domain.Principal, id string, to domain.Status) (*domain.Registration, error) {
	reg, occ, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := s.authz.CanEdit(ctx, p, occ)
	if isDeletingCancel(reg.Status, to) {
		allowed = s.authz.CanDelete(ctx, p, occ)
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}
	return s.apply(ctx, reg, to)
}

// TransitionByToken lets the registrant submit or cancel; confirmation is not theirs to grant.
func (s *registrationService) TransitionByToken(ctx context.Context, id, token string, to domain.Status) (*domain.Registration, error) {
	reg, _, err := s.loadByToken(ctx, id, token)
	if err != nil {
		return nil, err
	}
	if to != domain.StatusUnconfirmed && to != domain.StatusCanceled {
		return nil, domain.ErrForbidden
	}
	return s.apply(ctx, reg, to)
}

func isDeletingCancel(from, to domain.Status) bool {
	return from == domain.StatusUnsubmitted && to == domain.StatusCanceled
}

// apply validates and persists a status change. Canceling an unsubmitted registration deletes it.
func (s *registrationService) apply(ctx context.Context, reg *domain.Registration, to domain.Status) (*domain.Registration, error) {
	from := reg.Status
	if !domain.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	if isDeletingCancel(from, to) {
		if err := s.registrationRepo.Delete(ctx, reg.ID); err != nil {
			return nil, storeError("delete registration", err)
		}
	} else {
		now := s.now().UTC()
		if err := s.registrationRepo.UpdateStatus(ctx, reg.ID, from, to, now); err != nil {
			return nil, storeError("update registration status", err)
		}
		reg.UpdatedAt = now
	}
	if err := reg.TransitionTo(to); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "registration status changed",
		"registration_id", reg.ID, "from", from, "to", to)
	return reg, nil
}

// storeError keeps domain sentinels visible and marks anything else as a storage failure.
func storeError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrConstraintViolation) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}

func (s *registrationService) ReplaceTickets(ctx context.Context, p *domain.Principal, id string, tickets []domain.TicketLine, total domain.Money) (*domain.Registration, error) {
	if problems := validateTickets(tickets, total); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}
	reg, occ, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanEdit(ctx, p, occ) {
		return nil, domain.ErrForbidden
	}
	if reg.Status == domain.StatusCanceled {
		return nil, fmt.Errorf("%w: canceled registrations cannot be edited", domain.ErrInvalidInput)
	}
	now := s.now().UTC()
	if err := s.registrationRepo.ReplaceTickets(ctx, id, tickets, total, now); err != nil {
		return nil, storeError("replace tickets", err)
	}
	reg.Tickets = tickets
	reg.Total = total
	reg.UpdatedAt = now
	return reg, nil
}

func (s *registrationService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	_, occ, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !s.authz.CanDelete(ctx, p, occ) {
		return domain.ErrForbidden
	}
	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		return storeError("delete registration", err)
	}
	s.logger.InfoContext(ctx, "registration deleted", "registration_id", id)
	return nil
}

func (s *registrationService) List(ctx context.Context, p *domain.Principal, f domain.RegistrationFilter, page domain.PaginationParams) ([]*domain.Registration, int, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, f.Status)
	}
	occ, err := s.eventRepo.GetOccurrence(ctx, f.OccurrenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get occurrence: %w: %w", domain.ErrStorageUnavailable, err)
	}
	if !s.authz.CanView(ctx, p, occ) {
		return nil, 0, domain.ErrForbidden
	}
	regs, total, err := s.registrationRepo.List(ctx, f, page)
	if err != nil {
		return nil, 0, storeError("list registrations", err)
	}
	return regs, total, nil
}
