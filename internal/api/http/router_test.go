package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func serve(t *testing.T, h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateRequest(t *testing.T) {
	svc := new(MockRequestService)
	router := NewRouter(svc, new(MockEventStateService), nil)

	t.Run("Created", func(t *testing.T) {
		svc.On("CreateRequest", mock.Anything, int64(2), int64(7)).
			Return(&domain.Request{ID: "r1", RequesterID: 2, EventID: 7, Status: domain.RequestStatusPending}, nil).Once()

		rec := serve(t, router, http.MethodPost, "/users/2/requests?eventId=7", "", "")
		assert.Equal(t, http.StatusCreated, rec.Code)

		var got domain.Request
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "r1", got.ID)
		assert.Equal(t, domain.RequestStatusPending, got.Status)
	})

	t.Run("MissingEventID", func(t *testing.T) {
		rec := serve(t, router, http.MethodPost, "/users/2/requests", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Conflict", func(t *testing.T) {
		svc.On("CreateRequest", mock.Anything, int64(3), int64(7)).
			Return(nil, domain.NewConflict(domain.ReasonLimitReached, "")).Once()

		rec := serve(t, router, http.MethodPost, "/users/3/requests?eventId=7", "", "")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, domain.ReasonLimitReached, decodeError(t, rec).Reason)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc.On("CreateRequest", mock.Anything, int64(4), int64(7)).
			Return(nil, domain.NewNotFound("User", 4)).Once()

		rec := serve(t, router, http.MethodPost, "/users/4/requests?eventId=7", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User with id=4 was not found", decodeError(t, rec).Error)
	})

	t.Run("Unavailable", func(t *testing.T) {
		svc.On("CreateRequest", mock.Anything, int64(5), int64(7)).
			Return(nil, domain.ErrUnavailable).Once()

		rec := serve(t, router, http.MethodPost, "/users/5/requests?eventId=7", "", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("InternalHidesDetail", func(t *testing.T) {
		svc.On("CreateRequest", mock.Anything, int64(6), int64(7)).
			Return(nil, assert.AnError).Once()

		rec := serve(t, router, http.MethodPost, "/users/6/requests?eventId=7", "", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal error", decodeError(t, rec).Error)
	})
}

func TestCancelAndList(t *testing.T) {
	svc := new(MockRequestService)
	router := NewRouter(svc, new(MockEventStateService), nil)

	svc.On("CancelRequest", mock.Anything, int64(2), "r1").
		Return(&domain.Request{ID: "r1", Status: domain.RequestStatusCanceled}, nil)
	svc.On("ListRequestsForRequester", mock.Anything, int64(2)).
		Return([]domain.Request{{ID: "r1"}}, nil)
	svc.On("ListRequestsForEvent", mock.Anything, int64(1), int64(7)).
		Return([]domain.Request{}, nil)

	rec := serve(t, router, http.MethodPatch, "/users/2/requests/r1/cancel", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"CANCELED"`)

	rec = serve(t, router, http.MethodGet, "/users/2/requests", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"r1"`)

	rec = serve(t, router, http.MethodGet, "/users/1/events/7/requests", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestChangeRequestStatus(t *testing.T) {
	svc := new(MockRequestService)
	router := NewRouter(svc, new(MockEventStateService), nil)

	update := domain.StatusUpdate{RequestIDs: []string{"a", "b", "c"}, Status: domain.RequestStatusConfirmed}
	svc.On("ChangeRequestStatus", mock.Anything, int64(1), int64(7), update).Return(&domain.StatusUpdateResult{
		Confirmed: []domain.Request{{ID: "a"}, {ID: "b"}},
		Rejected:  []domain.Request{{ID: "c"}},
		Spillover: 1,
	}, nil)

	rec := serve(t, router, http.MethodPatch, "/users/1/events/7/requests", `{"requestIds":["a","b","c"],"status":"CONFIRMED"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]domain.Request
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body["confirmedRequests"], 2)
	assert.Len(t, body["rejectedRequests"], 1)
	assert.NotContains(t, rec.Body.String(), "Spillover")

	rec = serve(t, router, http.MethodPatch, "/users/1/events/7/requests", `{"requestIds":["a"],"status":"MAYBE"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, router, http.MethodPatch, "/users/1/events/7/requests", `not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventStateRoutes(t *testing.T) {
	states := new(MockEventStateService)
	router := NewRouter(new(MockRequestService), states, nil)

	states.On("ChangeState", mock.Anything, int64(1), domain.RoleInitiator, int64(7), domain.EventActionSendToReview).
		Return(&domain.Event{ID: 7, State: domain.EventStatePending}, nil)
	states.On("ChangeState", mock.Anything, int64(0), domain.RoleAdmin, int64(7), domain.EventActionPublish).
		Return(nil, domain.NewConflict(domain.ReasonIllegalTransition, ""))

	rec := serve(t, router, http.MethodPatch, "/users/1/events/7/state", `{"stateAction":"SEND_TO_REVIEW"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, router, http.MethodPatch, "/admin/events/7/state", `{"stateAction":"PUBLISH_EVENT"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(t, router, http.MethodPatch, "/admin/events/7/state", `{"stateAction":"DANCE"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCountRequests(t *testing.T) {
	svc := new(MockRequestService)
	router := NewRouter(svc, new(MockEventStateService), nil)

	svc.On("CountRequests", mock.Anything, int64(7), domain.RequestStatusConfirmed).Return(int64(3), nil)
	svc.On("CountRequests", mock.Anything, int64(7), domain.RequestStatusPending).Return(int64(1), nil)

	rec := serve(t, router, http.MethodGet, "/admin/requests/count/7", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3\n", rec.Body.String())

	rec = serve(t, router, http.MethodGet, "/admin/requests/count/7?status=PENDING", "", "")
	assert.Equal(t, "1\n", rec.Body.String())
}

func TestAuthentication(t *testing.T) {
	tokens := security.NewTokenManager(testSecret)
	svc := new(MockRequestService)
	router := NewRouter(svc, new(MockEventStateService), tokens)
	svc.On("ListRequestsForRequester", mock.Anything, int64(2)).Return([]domain.Request{}, nil)
	svc.On("CountRequests", mock.Anything, int64(7), domain.RequestStatusConfirmed).Return(int64(0), nil)

	userToken, err := tokens.GenerateAccessToken(2, nil)
	require.NoError(t, err)
	adminToken, err := tokens.GenerateAccessToken(9, []string{security.RoleAdmin})
	require.NoError(t, err)
	serviceToken, err := tokens.GenerateServiceToken("peer")
	require.NoError(t, err)

	cases := []struct {
		name   string
		target string
		token  string
		code   int
	}{
		{"OwnRequests", "/users/2/requests", userToken, http.StatusOK},
		{"NoToken", "/users/2/requests", "", http.StatusUnauthorized},
		{"ServiceTokenRefused", "/users/2/requests", serviceToken, http.StatusUnauthorized},
		{"OtherUser", "/users/3/requests", userToken, http.StatusForbidden},
		{"AdminRoute", "/admin/requests/count/7", adminToken, http.StatusOK},
		{"AdminRouteAsUser", "/admin/requests/count/7", userToken, http.StatusForbidden},
		{"HealthIsOpen", "/health", "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, router, http.MethodGet, tc.target, "", tc.token)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
