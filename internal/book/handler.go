package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"libraryBackend/internal/handlers"
)

const (
	booksUrl  = "/books"
	bookIdUrl = "/books/:id"
)

type handler struct {
	storage Storage
	log     *logrus.Logger
}

func NewHandler(storage Storage, log *logrus.Logger) handlers.Handler {
	return &handler{storage: storage, log: log}
}

func (h *handler) Register(router *httprouter.Router) {
	router.POST(booksUrl, h.CreateBook)
	router.GET(booksUrl, h.GetBooks)
	router.GET(bookIdUrl, h.GetBookByID)
}

func (h *handler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		h.log.Info("Bad create book request: " + err.Error())
		return
	}

	created, err := h.storage.Create(r.Context(), req.Title, req.Author)
	if err != nil {
		http.Error(w, "Database unavailable: "+err.Error(), http.StatusServiceUnavailable)
		h.log.Error("Database unavailable: " + err.Error())
		return
	}

	h.log.Info("Created book " + created.Title)
	h.respondJSON(w, http.StatusCreated, created)
}

func (h *handler) GetBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	books, err := h.storage.List(r.Context())
	if err != nil {
		http.Error(w, "Database unavailable: "+err.Error(), http.StatusServiceUnavailable)
		h.log.Error("Database unavailable: " + err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, books)
}

func (h *handler) GetBookByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad request: invalid book id", http.StatusBadRequest)
		h.log.Info("Bad request: invalid book id " + params.ByName("id"))
		return
	}

	stored, err := h.storage.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Book not found", http.StatusNotFound)
			h.log.Info("Book not found: " + params.ByName("id"))
			return
		}
		http.Error(w, "Database unavailable: "+err.Error(), http.StatusServiceUnavailable)
		h.log.Error("Database unavailable: " + err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, stored)
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Can not encode response: " + err.Error())
	}
}
