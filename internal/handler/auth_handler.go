package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Stewz00/rpmwiki-auth/internal/service"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	registrationService *service.RegistrationService
	log                 logrus.FieldLogger
}

func NewAuthHandler(registrationService *service.RegistrationService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		registrationService: registrationService,
		log:                 log,
	}
}

// MaxBodyBytes caps a registration request body.
const MaxBodyBytes = 1 << 20

type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, err)
			return
		}
		WriteMessage(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	reg, err := h.registrationService.Register(r.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, reg)
}

func (h *AuthHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if code, _ := StatusFor(err); code == http.StatusInternalServerError {
		h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}
	WriteError(w, err)
}
