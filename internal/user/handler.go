package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"libraryBackend/internal/auth"
	"libraryBackend/internal/handlers"
)

const (
	RegisterUrl = "/register"
	LoginUrl    = "/login"
	usersUrl    = "/users"
	userIdUrl   = "/users/:id"
)

type handler struct {
	storage  Storage
	hasher   auth.Hasher
	tokens   *auth.TokenService
	tokenTTL time.Duration
	log      *logrus.Logger
}

func NewHandler(storage Storage, hasher auth.Hasher, tokens *auth.TokenService, tokenTTL time.Duration, log *logrus.Logger) handlers.Handler {
	return &handler{
		storage:  storage,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

func (h *handler) Register(router *httprouter.Router) {
	router.POST(RegisterUrl, h.RegisterUser)
	router.POST(LoginUrl, h.LoginUser)
	router.POST(usersUrl, h.CreateUser)
	router.GET(usersUrl, h.GetUsers)
	router.GET(userIdUrl, h.GetUserByID)
}

// RegisterUser creates an account for a new username and returns a bearer
// token for it. A username that already exists is a conflict; this is the
// only guarded entry point, CreateUser below performs no such check.
func (h *handler) RegisterUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		h.log.Info("Bad register request: " + err.Error())
		return
	}

	if !suitableForRestrictions(len(req.Username), len(req.Password)) {
		http.Error(w, "Too big length of username/password", http.StatusBadRequest)
		h.log.Info("Bad register request: too big length of username/password")
		return
	}

	_, err := h.storage.GetByUsername(r.Context(), req.Username)
	if err == nil {
		http.Error(w, "Username already registered", http.StatusConflict)
		h.log.Info("Register conflict: username " + req.Username + " already taken")
		return
	}
	if !errors.Is(err, ErrNotFound) {
		http.Error(w, "Database unavailable: "+err.Error(), http.StatusServiceUnavailable)
		h.log.Error("Database unavailable: " + err.Error())
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		http.Error(w, "Can not hash password", http.StatusInternalServerError)
		h.log.Error("Can not hash password: " + err.Error())
		return
	}

	created, err := h.storage.Create(r.Context(), req.Username, hash, req.IsAdmin)
	if err != nil {
		http.Error(w, "Database unavailable: "+err.Error(), http.StatusServiceUnavailable)
		h.log.Error("Database unavailable: " + err.Error())
		return
	}

	token, err := h.tokens.Issue(created.Username, h.tokenTTL)
	if err != nil {
		http.Error(w, "Can not issue token", http.StatusInternalServerError)
		h.log.Error("Can not issue token: " + err.Error())
		return
	}

	h.log.Info("Registered user " + created.Username)
	h.respondJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// LoginUser checks the credentials and returns a bearer token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (h *handler) LoginUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		h.log.Info("Bad login request: " + err.Error())
		return
	}

	stored, err := h.storage.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			h.log.Info("Login failed: unknown username " + req.Username)
			return
		}
		http.Error(w, "Database unavailable: "+err.Error(), http.StatusServiceUnavailable)
		h.log.Error("Database unavailable: " + err.Error())
		return
	}

	ok, err := h.hasher.Verify(req.Password, stored.PasswordHash)
	if err != nil {
		http.Error(w, "Can not verify password", http.StatusInternalServerError)
		h.log.Error("Can not verify password for " + req.Username + ": " + err.Error())
		return
	}
	if !ok {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		h.log.Info("Login failed: wrong password for " + req.Username)
		return
	}

	token, err := h.tokens.Issue(stored.Username, h.tokenTTL)
	if err != nil {
		http.Error(w, "Can not issue token", http.StatusInternalServerError)
		h.log.Error("Can not issue token: " + err.Error())
		return
	}

	h.log.Info("Logged in user " + stored.Username)
	h.respondJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// CreateUser inserts a user without checking for a duplicate username.
// Uniqueness relies on RegisterUser being the only guarded entry point.
func (h *handler) CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		h.log.Info("Bad create user request: " + err.Error())
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		http.Error(w, "Can not hash password", http.StatusInternalServerError)
		h.log.Error("Can not hash password: " + err.Error())
		return
	}

	created, err := h.storage.Create(r.Context(), req.Username, hash, req.IsAdmin)
	if err != nil {
		http.Error(w, "Database unavailable: "+err.Error(), http.StatusServiceUnavailable)
		h.log.Error("Database unavailable: " + err.Error())
		return
	}

	h.log.Info("Created user " + created.Username)
	h.respondJSON(w, http.StatusCreated, created.Summary())
}

func (h *handler) GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.storage.List(r.Context())
	if err != nil {
		http.Error(w, "Database unavailable: "+err.Error(), http.StatusServiceUnavailable)
		h.log.Error("Database unavailable: " + err.Error())
		return
	}

	summaries := make([]Summary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	h.respondJSON(w, http.StatusOK, summaries)
}

func (h *handler) GetUserByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad request: invalid user id", http.StatusBadRequest)
		h.log.Info("Bad request: invalid user id " + params.ByName("id"))
		return
	}

	stored, err := h.storage.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			h.log.Info("User not found: " + params.ByName("id"))
			return
		}
		http.Error(w, "Database unavailable: "+err.Error(), http.StatusServiceUnavailable)
		h.log.Error("Database unavailable: " + err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, stored.Summary())
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Can not encode response: " + err.Error())
	}
}
