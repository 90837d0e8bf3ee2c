package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

const healthUrl = "/health"

type HealthResponse struct {
	Status string `json:"status"`
}

type healthHandler struct {
	log *logrus.Logger
}

func NewHealthHandler(log *logrus.Logger) Handler {
	return &healthHandler{log: log}
}

func (h *healthHandler) Register(router *httprouter.Router) {
	router.GET(healthUrl, h.Health)
}

func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(HealthResponse{Status: "ok"}); err != nil {
		h.log.Error("Can not encode health response: " + err.Error())
	}
}
