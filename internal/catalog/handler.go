package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/vindheg/dth-render/internal/pkg/httputil"
)

// Handler handles HTTP requests for the catalog module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new catalog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers public catalog routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/channels", h.ListChannels)
	r.Get("/channels/{id}", h.GetChannel)
}

// RegisterAdminRoutes registers routes that require the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/channels", h.AddChannel)
}

// AddChannelRequest represents the request body for adding a channel.
type AddChannelRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Price *int64 `json:"price" validate:"required,gte=0"`
}

// AddChannelResponse carries the new channel identity.
type AddChannelResponse struct {
	ChannelID int64 `json:"channel_id"`
}

// AddChannel handles POST /channels.
func (h *Handler) AddChannel(w http.ResponseWriter, r *http.Request) {
	var req AddChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	channel, err := h.service.AddChannel(r.Context(), req.Name, *req.Price)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, AddChannelResponse{ChannelID: channel.ID})
}

// GetChannel handles GET /channels/{id}.
func (h *Handler) GetChannel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid channel id")
		return
	}

	channel, err := h.service.GetChannelByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, channel)
}

// ListChannels handles GET /channels.
func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.service.ListChannels(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, channels)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrChannelNotFound, Status: http.StatusNotFound},
		{Error: ErrInvalidPrice, Status: http.StatusBadRequest},
	})
}
