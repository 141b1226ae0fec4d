package subscription

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/vindheg/dth-render/internal/catalog"
	"github.com/vindheg/dth-render/internal/pkg/httputil"
)

// Handler handles HTTP requests for the subscription module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new subscription handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers subscription routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/accounts/{id}", func(r chi.Router) {
		r.Get("/balance", h.GetBalance)
		r.Get("/subscriptions", h.ListSubscriptions)
		r.Post("/subscriptions", h.Subscribe)
		r.Delete("/subscriptions/{channelID}", h.Unsubscribe)
	})
}

// SubscribeRequest represents the request body for subscribing.
// Price is the channel's current price as known to the caller; it is
// re-validated server-side.
type SubscribeRequest struct {
	ChannelID int64  `json:"channel_id" validate:"required,gt=0"`
	Price     *int64 `json:"price" validate:"required,gte=0"`
}

// SubscribeResponse carries the balance after the debit.
type SubscribeResponse struct {
	NewBalance int64 `json:"new_balance"`
}

// Subscribe handles POST /accounts/{id}/subscriptions.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	newBalance, err := h.service.Subscribe(r.Context(), userID, req.ChannelID, *req.Price)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, SubscribeResponse{NewBalance: newBalance})
}

// Unsubscribe handles DELETE /accounts/{id}/subscriptions/{channelID}.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	channelID, err := strconv.ParseInt(chi.URLParam(r, "channelID"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid channel id")
		return
	}

	if err := h.service.Unsubscribe(r.Context(), userID, channelID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}

// ListSubscriptions handles GET /accounts/{id}/subscriptions.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	channels, err := h.service.ListSubscriptions(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, channels)
}

// GetBalance handles GET /accounts/{id}/balance.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, balance)
}

func (h *Handler) accountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid account id")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrAlreadySubscribed, Status: http.StatusBadRequest},
		{Error: ErrInsufficientFunds, Status: http.StatusBadRequest},
		{Error: ErrPriceMismatch, Status: http.StatusBadRequest},
		{Error: ErrAccountNotFound, Status: http.StatusNotFound},
		{Error: ErrSubscriptionNotFound, Status: http.StatusNotFound},
		{Error: catalog.ErrChannelNotFound, Status: http.StatusNotFound},
	})
}
