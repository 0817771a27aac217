package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/abdussamadse/todo-server/internal/application/user"
	"github.com/abdussamadse/todo-server/internal/domain"
	s3infra "github.com/abdussamadse/todo-server/internal/infrastructure/s3"
	"github.com/abdussamadse/todo-server/internal/pkg/validate"
	"github.com/abdussamadse/todo-server/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

const maxAvatarSize = 5 << 20 // 5 MB

// UserHandler handles profile and admin user-management endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.svc.Get(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "User profile retrieved successfully", u)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.UpdateProfile(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "User profile updated successfully", u)
}

// UploadAvatar accepts a multipart form with an "avatar" image field.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()
	contentType, ok := s3infra.ContentTypeForExt(header.Filename)
	if !ok {
		writeError(w, http.StatusBadRequest, "only image files (jpeg, jpg, png, gif) are allowed")
		return
	}
	url, err := h.svc.UploadAvatar(r.Context(), claims.UserID, header.Filename, file, contentType)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Avatar uploaded successfully", map[string]string{"avatar": url})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	cursor := r.URL.Query().Get("cursor")
	users, nextCursor, err := h.svc.List(r.Context(), limit, cursor)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PaginatedUsersEnvelope{
		Success:    true,
		Message:    "Users retrieved successfully",
		Data:       users,
		NextCursor: nextCursor,
	})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "User retrieved successfully", u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "userId")); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "User deleted successfully", nil)
}
