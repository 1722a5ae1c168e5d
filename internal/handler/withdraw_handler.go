package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/pinecresthq/be-portal-retention/internal/logger"
	"github.com/pinecresthq/be-portal-retention/internal/service"
)

// WithdrawSubject is the request-reply subject the portal uses to ask
// this service to withdraw a review request on a member's behalf.
const WithdrawSubject = "portal.review_requests.withdraw"

// withdrawQueue groups daemon instances so each command is handled once.
const withdrawQueue = "be-portal-retention"

// WithdrawRequest is the command payload published by the portal.
type WithdrawRequest struct {
	ID       string `json:"id"`
	MemberID string `json:"member_id"`
}

// WithdrawResponse reports only whether a live row transitioned.
type WithdrawResponse struct {
	Withdrawn bool `json:"withdrawn"`
}

// WithdrawHandler consumes withdraw commands over NATS. Lifecycle
// mutations are owned by this service, so the portal delegates the
// member-triggered soft delete here instead of touching rows itself.
type WithdrawHandler struct {
	requests *service.ReviewRequestService
	log      *logger.Logger
}

// NewWithdrawHandler creates a new withdraw handler.
func NewWithdrawHandler(requests *service.ReviewRequestService, log *logger.Logger) *WithdrawHandler {
	return &WithdrawHandler{requests: requests, log: log}
}

// Subscribe registers the handler on the withdraw subject.
func (h *WithdrawHandler) Subscribe(conn *nats.Conn) (*nats.Subscription, error) {
	return conn.QueueSubscribe(WithdrawSubject, withdrawQueue, h.handle)
}

func (h *WithdrawHandler) handle(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req WithdrawRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.log.Warn().Err(err).Msg("Malformed withdraw command")
		h.respond(msg, false)
		return
	}

	withdrawn, err := h.requests.Withdraw(ctx, req.ID, req.MemberID)
	if err != nil {
		h.log.Warn().
			Err(err).
			Str("review_request_id", req.ID).
			Str("member_id", req.MemberID).
			Msg("Withdraw command rejected")
		h.respond(msg, false)
		return
	}

	h.respond(msg, withdrawn)
}

func (h *WithdrawHandler) respond(msg *nats.Msg, withdrawn bool) {
	if msg.Reply == "" {
		return
	}

	data, err := json.Marshal(WithdrawResponse{Withdrawn: withdrawn})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to encode withdraw response")
		return
	}
	if err := msg.Respond(data); err != nil {
		h.log.Warn().Err(err).Msg("Failed to reply to withdraw command")
	}
}
