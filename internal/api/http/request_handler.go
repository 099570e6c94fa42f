package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"eventreg-request-service/internal/domain"
	"eventreg-request-service/internal/service"

	"github.com/gorilla/mux"
)

type RequestHandler struct {
	requestSvc    service.RequestService
	eventStateSvc service.EventStateService
}

func NewRequestHandler(requestSvc service.RequestService, eventStateSvc service.EventStateService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc, eventStateSvc: eventStateSvc}
}

type stateActionBody struct {
	StateAction string `json:"stateAction"`
}

type statusUpdateBody struct {
	RequestIDs []string `json:"requestIds"`
	Status     string   `json:"status"`
}

func (h *RequestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	eventID, err := parseID("eventId", r.URL.Query().Get("eventId"))
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := h.requestSvc.CreateRequest(r.Context(), userID, eventID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *RequestHandler) ListRequestsForRequester(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	reqs, err := h.requestSvc.ListRequestsForRequester(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *RequestHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	req, err := h.requestSvc.CancelRequest(r.Context(), userID, mux.Vars(r)["requestId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) ListRequestsForEvent(w http.ResponseWriter, r *http.Request) {
	userID, eventID, err := userAndEvent(r)
	if err != nil {
		writeError(w, err)
		return
	}
	reqs, err := h.requestSvc.ListRequestsForEvent(r.Context(), userID, eventID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *RequestHandler) ChangeRequestStatus(w http.ResponseWriter, r *http.Request) {
	userID, eventID, err := userAndEvent(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body statusUpdateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.NewInvalidArgument("malformed body: "+err.Error()))
		return
	}
	status, err := domain.ParseRequestStatus(body.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.requestSvc.ChangeRequestStatus(r.Context(), userID, eventID, domain.StatusUpdate{RequestIDs: body.RequestIDs, Status: status})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *RequestHandler) ChangeEventStateByInitiator(w http.ResponseWriter, r *http.Request) {
	userID, eventID, err := userAndEvent(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.changeEventState(w, r, userID, domain.RoleInitiator, eventID)
}

func (h *RequestHandler) ChangeEventStateByAdmin(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeError(w, err)
		return
	}
	var adminID int64
	if claims := claimsFromContext(r.Context()); claims != nil {
		adminID = claims.UserID
	}
	h.changeEventState(w, r, adminID, domain.RoleAdmin, eventID)
}

func (h *RequestHandler) changeEventState(w http.ResponseWriter, r *http.Request, actorID int64, role domain.Role, eventID int64) {
	var body stateActionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.NewInvalidArgument("malformed body: "+err.Error()))
		return
	}
	action, err := domain.ParseEventStateAction(body.StateAction)
	if err != nil {
		writeError(w, err)
		return
	}
	event, err := h.eventStateSvc.ChangeState(r.Context(), actorID, role, eventID, action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *RequestHandler) CountRequests(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		writeError(w, err)
		return
	}
	status := domain.RequestStatusConfirmed
	if raw := r.URL.Query().Get("status"); raw != "" {
		if status, err = domain.ParseRequestStatus(raw); err != nil {
			writeError(w, err)
			return
		}
	}
	n, err := h.requestSvc.CountRequests(r.Context(), eventID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func userAndEvent(r *http.Request) (int64, int64, error) {
	userID, err := pathID(r, "userId")
	if err != nil {
		return 0, 0, err
	}
	eventID, err := pathID(r, "eventId")
	if err != nil {
		return 0, 0, err
	}
	return userID, eventID, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	return parseID(name, mux.Vars(r)[name])
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewInvalidArgument(fmt.Sprintf("%s must be a positive integer, got %q", name, raw))
	}
	return id, nil
}
