package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lamergameryt/entrypoint/internal/app"
	"github.com/lamergameryt/entrypoint/internal/auth"
	"github.com/lamergameryt/entrypoint/internal/clock"
	"github.com/lamergameryt/entrypoint/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventService struct {
	available []domain.Event
	searched  []domain.Event
	created   domain.Event
	createErr error
	deleteErr error

	searchName  string
	searchAfter time.Time
}

func (f *fakeEventService) CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error) {
	if f.createErr != nil {
		return domain.Event{}, f.createErr
	}
	f.created = domain.Event{ID: 1, Name: in.Name, Description: in.Description, StartDate: in.StartDate, Performers: in.Performers}
	return f.created, nil
}

func (f *fakeEventService) AvailableEvents(ctx context.Context) ([]domain.Event, error) {
	return f.available, nil
}

func (f *fakeEventService) SearchEvents(ctx context.Context, name string, startsAfter time.Time) ([]domain.Event, error) {
	f.searchName = name
	f.searchAfter = startsAfter
	return f.searched, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID int64) error {
	return f.deleteErr
}

type fakeTicketService struct {
	tickets   []domain.Ticket
	created   domain.Ticket
	createErr error
	deleteErr error
}

func (f *fakeTicketService) AvailableForEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error) {
	return f.tickets, nil
}

func (f *fakeTicketService) CreateTicket(ctx context.Context, eventID int64, seatNumber string) (domain.Ticket, error) {
	if f.createErr != nil {
		return domain.Ticket{}, f.createErr
	}
	f.created = domain.Ticket{ID: 7, EventID: eventID, SeatNumber: seatNumber, Status: domain.TicketStatusNotBooked}
	return f.created, nil
}

func (f *fakeTicketService) DeleteTicket(ctx context.Context, eventID, ticketID int64) error {
	return f.deleteErr
}

type fakeUserService struct {
	user     domain.User
	loginErr error
}

func (f *fakeUserService) Register(ctx context.Context, in app.RegisterInput) (domain.User, error) {
	return domain.User{ID: 1, Name: in.Name, Email: in.Email, Group: domain.GroupUser}, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	if f.loginErr != nil {
		return domain.User{}, f.loginErr
	}
	return f.user, nil
}

type testEnv struct {
	server  *Server
	tokens  *auth.Tokens
	events  *fakeEventService
	tickets *fakeTicketService
	users   *fakeUserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tokens := auth.NewTokens("test-secret", time.Hour, clock.NewFixed(time.Now()))
	events := &fakeEventService{}
	tickets := &fakeTicketService{}
	users := &fakeUserService{}

	server := NewServer(Config{
		Events:      events,
		Tickets:     tickets,
		Users:       users,
		Tokens:      tokens,
		CORSOrigins: []string{"http://localhost:5173"},
		Logger:      zerolog.Nop(),
	})
	return &testEnv{server: server, tokens: tokens, events: events, tickets: tickets, users: users}
}

func (env *testEnv) do(t *testing.T, method, path, body string, group domain.Group) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if group != "" {
		token, err := env.tokens.Issue(domain.User{ID: 1, Name: "Tester", Group: group})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.server.Echo().ServeHTTP(rec, req)
	return rec
}

func TestHealth_NoAuthRequired(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListAvailableEvents_ReturnsEventsWithPerformers(t *testing.T) {
	env := newTestEnv(t)
	starts := time.Date(2026, 9, 5, 19, 0, 0, 0, time.UTC)
	env.events.available = []domain.Event{
		{ID: 1, Name: "Music Concert", StartDate: starts, Performers: []string{"The Strings"}},
	}

	rec := env.do(t, http.MethodGet, "/events", "", domain.GroupUser)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Music Concert", resp[0].Name)
	assert.Equal(t, []string{"The Strings"}, resp[0].Performers)
}

func TestListAvailableEvents_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/events", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateEvent_RequiresCreateCapability(t *testing.T) {
	env := newTestEnv(t)
	body := `{"name":"Music Concert","start_date":"2026-09-05T19:00:00Z"}`

	rec := env.do(t, http.MethodPost, "/events", body, domain.GroupUser)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/events", body, domain.GroupManager)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateEvent_ValidatesBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/events", `{"start_date":"2026-09-05T19:00:00Z"}`, domain.GroupManager)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "event_name_required")

	rec = env.do(t, http.MethodPost, "/events", `{"name":"Music Concert"}`, domain.GroupManager)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "event_start_required")

	rec = env.do(t, http.MethodPost, "/events", `{"name":"Music Concert","start_date":"tomorrow"}`, domain.GroupManager)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_start_date")
}

func TestSearchEvents_RequiresNameParam(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/events/search", "", domain.GroupUser)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_required_field")
}

func TestSearchEvents_PassesFilters(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/events/search?name=music&starts_after=2026-09-01T00:00:00Z", "", domain.GroupUser)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "music", env.events.searchName)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), env.events.searchAfter.UTC())
}

func TestCreateTicket_MissingEventIs404(t *testing.T) {
	env := newTestEnv(t)
	env.tickets.createErr = domain.EventNotFound(9999)

	rec := env.do(t, http.MethodPost, "/events/9999/tickets", `{"seat_number":"A1"}`, domain.GroupUser)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event with id 9999 does not exist")
	assert.Contains(t, rec.Body.String(), "event_not_found")
}

func TestCreateTicket_DuplicateSeatIs409(t *testing.T) {
	env := newTestEnv(t)
	env.tickets.createErr = domain.ErrSeatTaken

	rec := env.do(t, http.MethodPost, "/events/3/tickets", `{"seat_number":"A1"}`, domain.GroupUser)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "seat_taken")
}

func TestCreateTicket_Created(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/events/3/tickets", `{"seat_number":"A1"}`, domain.GroupUser)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ticketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.EventID)
	assert.Equal(t, "A1", resp.SeatNumber)
	assert.Equal(t, string(domain.TicketStatusNotBooked), resp.Status)
}

func TestDeleteTicket_RequiresEditCapability(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/events/3/tickets/55", "", domain.GroupUser)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/events/3/tickets/55", "", domain.GroupAdmin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteTicket_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.tickets.deleteErr = domain.TicketNotFound(55)

	rec := env.do(t, http.MethodDelete, "/events/3/tickets/55", "", domain.GroupAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ticket with id 55 does not exist")
}

func TestDeleteTicket_InvalidIDs(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/events/0/tickets/55", "", domain.GroupAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/events/3/tickets/abc", "", domain.GroupAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_ReturnsToken(t *testing.T) {
	env := newTestEnv(t)
	env.users.user = domain.User{ID: 1, Name: "Ada", Email: "ada@example.com", Group: domain.GroupUser}

	rec := env.do(t, http.MethodPost, "/user/login", `{"email":"ada@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	authed := httptest.NewRecorder()
	env.server.Echo().ServeHTTP(authed, req)
	assert.Equal(t, http.StatusOK, authed.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.users.loginErr = domain.ErrInvalidCredentials

	rec := env.do(t, http.MethodPost, "/user/login", `{"email":"ada@example.com","password":"bad"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_credentials")
}

func TestRegister_CreatesUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/user/register", `{"name":"Ada","email":"ada@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ada@example.com", resp.Email)
}

func TestPosterURL_DisabledIs404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/events/3/poster", "", domain.GroupUser)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
