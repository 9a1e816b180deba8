package server

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/matthewbaird/framegen/internal/generate"
	"github.com/matthewbaird/framegen/internal/store"
)

const maxSourceBytes = 1 << 20

// GenerateHandler serves generation and run history.
type GenerateHandler struct {
	store store.Store
}

// NewGenerateHandler creates a handler recording runs in s.
func NewGenerateHandler(s store.Store) *GenerateHandler {
	return &GenerateHandler{store: s}
}

// Generate compiles the CUE description in the request body. The optional
// "file" and "func" query parameters set the source name and the function
// name.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSourceBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", err.Error())
		return
	}
	if len(src) == 0 {
		writeError(w, http.StatusBadRequest, "EMPTY_SOURCE", "request body is empty")
		return
	}
	file := r.URL.Query().Get("file")
	if file == "" {
		file = "request.cue"
	}

	out, _, err := generate.Record(r.Context(), h.store, file, src, r.URL.Query().Get("func"))
	if err != nil {
		generateErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListRuns returns recent runs, newest first.
func (h *GenerateHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.store.List(r.Context(), parseLimit(r, 20, 100))
	if err != nil {
		log.Printf("listing runs: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// GetRun returns one run.
func (h *GenerateHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(w, r, "id")
	if !ok {
		return
	}
	run, err := h.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	if err != nil {
		log.Printf("reading run: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// generateErrorToHTTP maps pipeline errors to HTTP responses.
func generateErrorToHTTP(w http.ResponseWriter, err error) {
	var pe *generate.Error
	if !errors.As(err, &pe) {
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	status := http.StatusUnprocessableEntity
	if pe.Stage == generate.StageCompile || pe.Stage == generate.StageInput {
		status = http.StatusBadRequest
	}
	writeError(w, status, generate.Code(err), err.Error())
}
