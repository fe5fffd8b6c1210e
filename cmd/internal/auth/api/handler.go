package api

import (
	"errors"
	"log/slog"
	"net/http"
)

// Handler exposes the credential endpoints and owns the translation
// between Service failures and wire responses.
type Handler struct {
	log *slog.Logger
	cfg Config
	svc *Service
}

func NewHandler(log *slog.Logger, cfg Config, svc *Service) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, cfg: cfg, svc: svc}
}

// Register attaches the auth routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.HandleFunc("/verify", h.handleVerify)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req registerRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		countAuthOp("register", "bad_request")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := h.svc.Register(r.Context(), req)
	if err != nil {
		h.writeFailure(w, "register", err)
		return
	}

	h.setSessionCookie(w, sess.Token, sess.ExpiresAt)
	countAuthOp("register", "ok")
	h.log.Info("auth.register.ok", "user_id", sess.UserID)
	writeJSON(w, http.StatusCreated, userIDResponse{
		Message: "User registered successfully",
		UserID:  sess.UserID,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		countAuthOp("login", "bad_request")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := h.svc.Login(r.Context(), req)
	if err != nil {
		h.writeFailure(w, "login", err)
		return
	}

	h.setSessionCookie(w, sess.Token, sess.ExpiresAt)
	countAuthOp("login", "ok")
	h.log.Info("auth.login.ok", "user_id", sess.UserID)
	writeJSON(w, http.StatusOK, userIDResponse{
		Message: "User logged in successfully",
		UserID:  sess.UserID,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	h.clearSessionCookie(w)
	countAuthOp("logout", "ok")
	h.log.Info("auth.logout.ok")
	writeJSON(w, http.StatusOK, messageResponse{
		Message: "User logged out successfully",
	})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	raw, _ := h.sessionTokenFromCookie(r)
	user, err := h.svc.VerifyToken(r.Context(), raw)
	if err != nil {
		h.writeFailure(w, "verify", err)
		return
	}

	countAuthOp("verify", "ok")
	h.log.Info("auth.verify.ok", "user_id", user.ID)
	writeJSON(w, http.StatusOK, userIDResponse{
		Message: "User verified successfully",
		UserID:  user.ID,
	})
}

// writeFailure maps a Service error onto the wire contract. Expected
// failures answer 400 with a fixed message; anything else is logged
// and answered as a 500 without leaking the cause.
func (h *Handler) writeFailure(w http.ResponseWriter, op string, err error) {
	if ve, ok := asValidation(err); ok {
		countAuthOp(op, "validation")
		writeError(w, http.StatusBadRequest, validationMessage(ve.Field))
		return
	}

	switch {
	case errors.Is(err, ErrConflict):
		countAuthOp(op, "conflict")
		writeError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, ErrNotFound):
		countAuthOp(op, "not_found")
		writeError(w, http.StatusBadRequest, "User does not exist")
	case errors.Is(err, ErrInvalidCredentials):
		countAuthOp(op, "invalid_credentials")
		writeError(w, http.StatusBadRequest, "Invalid password")
	case errors.Is(err, ErrUnauthenticated):
		countAuthOp(op, "unauthenticated")
		writeError(w, http.StatusBadRequest, "Invalid token")
	default:
		countAuthOp(op, "error")
		h.log.Error("auth."+op+".fail", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func validationMessage(field string) string {
	switch field {
	case "name":
		return "Name is required"
	case "email":
		return "Email is required"
	case "phoneNumber":
		return "Phone number is required"
	case "password":
		return "Password is required"
	default:
		return "Invalid request body"
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}
