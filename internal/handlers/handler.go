package handlers

import "github.com/julienschmidt/httprouter"

// Handler registers its routes on the shared router.
type Handler interface {
	Register(router *httprouter.Router)
}
