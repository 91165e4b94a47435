package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/vizboard/vizboard/db"
)

// requestTimeout bounds reads of the full collection.
const requestTimeout = 30 * time.Second

func helloHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("hello"))
	}
}

// recordsHandler serves every stored document as one JSON array. The whole
// collection is read before anything is written, so a failed read is a 500
// and never a truncated array.
func recordsHandler(dbConn *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		docs, err := db.AllRecords(ctx, dbConn)
		if err != nil {
			slog.Error("Error reading records", "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		body, err := json.Marshal(docs)
		if err != nil {
			slog.Error("Error encoding records", "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(body); err != nil {
			slog.Warn("Error writing records", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
