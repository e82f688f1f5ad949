package handler

import (
	"encoding/json"
	"net/http"

	"linkup/internal/config"
	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/service"
)

// FriendHandler groups the friend-request endpoints.
type FriendHandler struct {
	friendService *service.FriendService
	config        *config.Config
}

func NewFriendHandler(friendService *service.FriendService, cfg *config.Config) *FriendHandler {
	return &FriendHandler{friendService: friendService, config: cfg}
}

type sendRequestBody struct {
	FriendID string `json:"friendId"`
}

type respondRequestBody struct {
	FriendID string `json:"friendId"`
	Status   string `json:"status"`
}

// SendRequest handles POST /api/sendrequest. The same call both sends and
// withdraws: a second identical request cancels the first.
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	var body sendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	friendID, err := parseObjectID(body.FriendID, "friend id")
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	outcome, err := h.friendService.SendRequest(r.Context(), userID, friendID)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, outcome, nil)
}

// RespondToRequest handles POST /api/acceptrequest with status accepted or
// declined.
func (h *FriendHandler) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	var body respondRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	friendID, err := parseObjectID(body.FriendID, "friend id")
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	if err := h.friendService.RespondToRequest(r.Context(), userID, friendID, body.Status); err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	message := "Friend request declined"
	if body.Status == service.RequestStatusAccepted {
		message = "Friend request accepted"
	}
	httputil.WriteSuccess(w, http.StatusOK, message, nil)
}
