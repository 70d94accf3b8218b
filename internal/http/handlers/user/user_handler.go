package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	appuser "usermgmt/internal/app/user"
	"usermgmt/internal/http/responses"
	"usermgmt/internal/http/bind"
	"usermgmt/internal/logging"
)

type Handler struct {
	service appuser.Service
	logger  logging.Logger
}

func NewHandler(service appuser.Service, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "user_http_handler"),
	}
}

// List godoc
// @Summary  List users
// @Tags     users
// @Produce  json
// @Success  200 {array} appuser.UserDto
// @Router   /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		responses.WriteInternal(w)
		return
	}

	responses.WriteJSON(w, http.StatusOK, users)
}

// Create godoc
// @Summary  Create a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    user body UserRequest true "user without id"
// @Success  201 {object} appuser.UserDto
// @Failure  400 {object} responses.ErrorResponse
// @Router   /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !bind.JSON(w, r, &req) {
		return
	}

	dto, err := h.service.Create(r.Context(), toCreateInput(req))
	if err != nil {
		h.logger.Error("failed to create user", "error", err)
		responses.WriteInternal(w)
		return
	}

	responses.WriteJSON(w, http.StatusCreated, dto)
}

// GetByID godoc
// @Summary  Get a user
// @Tags     users
// @Produce  json
// @Param    id path string true "user id"
// @Success  200 {object} appuser.UserDto
// @Failure  404 {object} responses.ErrorResponse
// @Router   /users/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	dto, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if appuser.IsNotFound(err) {
			responses.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to get user", "error", err, "id", id)
		responses.WriteInternal(w)
		return
	}

	responses.WriteJSON(w, http.StatusOK, dto)
}

// Update godoc
// @Summary  Replace a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    id   path string      true "user id"
// @Param    user body UserRequest true "new field values"
// @Success  200 {object} appuser.UserDto
// @Failure  400 {object} responses.ErrorResponse
// @Failure  404 {object} responses.ErrorResponse
// @Router   /users/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UserRequest
	if !bind.JSON(w, r, &req) {
		return
	}
	if req.ID != "" && req.ID != id {
		responses.WriteBadRequest(w, "id in body does not match path")
		return
	}

	dto, err := h.service.Update(r.Context(), appuser.UpdateUserInput{
		ID:              id,
		CreateUserInput: toCreateInput(req),
	})
	if err != nil {
		if appuser.IsNotFound(err) {
			responses.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to update user", "error", err, "id", id)
		responses.WriteInternal(w)
		return
	}

	responses.WriteJSON(w, http.StatusOK, dto)
}

// Delete godoc
// @Summary  Delete a user
// @Tags     users
// @Param    id path string true "user id"
// @Success  204
// @Failure  404 {object} responses.ErrorResponse
// @Router   /users/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if appuser.IsNotFound(err) {
			responses.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to delete user", "error", err, "id", id)
		responses.WriteInternal(w)
		return
	}

	responses.WriteNoContent(w)
}

func toCreateInput(req UserRequest) appuser.CreateUserInput {
	return appuser.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}
}
