//go:build dev

package main

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func registerDevRoutes(r chi.Router) {
	r.Mount("/debug", chimw.Profiler())
}
