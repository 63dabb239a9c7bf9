package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/docteca/docteca-core/internal/core/domain"
)

// maxUploadBytes caps in-memory multipart parsing.
const maxUploadBytes = 32 << 20

// allowedExtensions is the upload whitelist. Kept aligned with the
// extractors the engine ships; unknown-but-listed formats are accepted
// and skipped during extraction rather than rejected here.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".csv":  true,
	".xlsx": true,
	".txt":  true,
	".docx": true,
	".jpg":  true,
	".png":  true,
}

// Wire types. Field names are kept from the original public API for
// client compatibility.

type uploadResponse struct {
	Mensaje string `json:"mensaje"`
	ID      int64  `json:"id"`
}

type searchResponse struct {
	Total      int            `json:"total"`
	Resultados []searchResult `json:"resultados"`
}

type searchResult struct {
	ID      int64   `json:"id"`
	Titulo  string  `json:"titulo"`
	Tipo    string  `json:"tipo"`
	Resumen string  `json:"resumen"`
	Score   float64 `json:"score"`
}

type documentListResponse struct {
	Total      int               `json:"total"`
	Documentos []documentSummary `json:"documentos"`
}

type documentSummary struct {
	ID     int64     `json:"id"`
	Titulo string    `json:"titulo"`
	Tipo   string    `json:"tipo"`
	Tamano int64     `json:"tamano"`
	Creado time.Time `json:"creado"`
}

type documentDetail struct {
	ID      int64     `json:"id"`
	Titulo  string    `json:"titulo"`
	Tipo    string    `json:"tipo"`
	Resumen string    `json:"resumen"`
	Tamano  int64     `json:"tamano"`
	Huella  string    `json:"huella"`
	Creado  time.Time `json:"creado"`
}

type deleteResponse struct {
	Mensaje string `json:"mensaje"`
	ID      int64  `json:"id"`
}

type enqueueRequest struct {
	Ruta string `json:"ruta"`
}

type enqueueResponse struct {
	Total  int      `json:"total"`
	Tareas []string `json:"tareas"`
}

type taskStatusResponse struct {
	ID       string `json:"id"`
	Tipo     string `json:"tipo"`
	Estado   string `json:"estado"`
	Intentos int    `json:"intentos"`
	Error    string `json:"error,omitempty"`
}

// validateUploadName checks the filename against the extension whitelist.
func validateUploadName(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedType, ext)
	}
	return nil
}

// handleUpload ingests one uploaded file.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Archivo requerido")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Archivo requerido")
		return
	}
	defer file.Close()

	if err := validateUploadName(header.Filename); err != nil {
		writeError(w, http.StatusBadRequest, "Formato no admitido")
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No se pudo leer el archivo")
		return
	}

	result, err := s.ingestService.Ingest(r.Context(), raw, header.Filename, "")
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Archivo vacío")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error al procesar el documento")
		return
	}

	switch {
	case result.Duplicate:
		writeJSON(w, http.StatusOK, uploadResponse{
			Mensaje: "El documento ya existe",
			ID:      result.ID,
		})
	case result.Skipped:
		writeError(w, http.StatusUnprocessableEntity, "No se pudo extraer texto del documento")
	default:
		writeJSON(w, http.StatusCreated, uploadResponse{
			Mensaje: "Documento procesado correctamente",
			ID:      result.ID,
		})
	}
}

// handleSearch runs a query. Parameters: q, mode, match, type, limit.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	opts := domain.DefaultSearchOptions()
	if mode := r.URL.Query().Get("mode"); mode != "" {
		switch domain.SearchMode(mode) {
		case domain.SearchModeHybrid, domain.SearchModeLexical, domain.SearchModeSemantic:
			opts.Mode = domain.SearchMode(mode)
		default:
			writeError(w, http.StatusBadRequest, "Modo de búsqueda inválido")
			return
		}
	}
	if match := r.URL.Query().Get("match"); match != "" {
		switch domain.MatchMode(match) {
		case domain.MatchExact, domain.MatchPrefix:
			opts.Match = domain.MatchMode(match)
		default:
			writeError(w, http.StatusBadRequest, "Modo de coincidencia inválido")
			return
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "Límite inválido")
			return
		}
		opts.Limit = limit
	}
	opts.Type = r.URL.Query().Get("type")

	result, err := s.searchService.Search(r.Context(), query, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error al ejecutar la búsqueda")
		return
	}

	resp := searchResponse{
		Total:      result.Total,
		Resultados: make([]searchResult, 0, len(result.Results)),
	}
	for _, doc := range result.Results {
		resp.Resultados = append(resp.Resultados, searchResult{
			ID:      doc.ID,
			Titulo:  doc.Title,
			Tipo:    doc.Type,
			Resumen: doc.Summary,
			Score:   doc.Score,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleListDocuments returns every stored document, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documentService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error al listar documentos")
		return
	}

	resp := documentListResponse{
		Total:      len(docs),
		Documentos: make([]documentSummary, 0, len(docs)),
	}
	for _, doc := range docs {
		resp.Documentos = append(resp.Documentos, documentSummary{
			ID:     doc.ID,
			Titulo: doc.Title,
			Tipo:   doc.Type,
			Tamano: doc.Size,
			Creado: doc.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleGetDocument returns one document's metadata.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	doc, err := s.documentService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Documento no encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error al consultar el documento")
		return
	}

	writeJSON(w, http.StatusOK, documentDetail{
		ID:      doc.ID,
		Titulo:  doc.Title,
		Tipo:    doc.Type,
		Resumen: doc.Summary,
		Tamano:  doc.Size,
		Huella:  doc.Fingerprint,
		Creado:  doc.CreatedAt,
	})
}

// handleDeleteDocument removes a document from the store and all indexes.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := s.documentService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Documento no encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error al eliminar el documento")
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{
		Mensaje: "Documento eliminado",
		ID:      id,
	})
}

// handleEnqueueTasks queues background ingestion of a file or directory.
func (s *Server) handleEnqueueTasks(w http.ResponseWriter, r *http.Request) {
	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ruta == "" {
		writeError(w, http.StatusBadRequest, "Ruta requerida")
		return
	}

	tasks, err := s.taskService.EnqueuePath(r.Context(), req.Ruta)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Ruta inexistente")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error al encolar tareas")
		return
	}

	resp := enqueueResponse{Total: len(tasks), Tareas: make([]string, 0, len(tasks))}
	for _, task := range tasks {
		resp.Tareas = append(resp.Tareas, task.ID)
	}

	writeJSON(w, http.StatusAccepted, resp)
}

// handleGetTask reports a queued task's status.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.taskService.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Tarea no encontrada")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error al consultar la tarea")
		return
	}

	writeJSON(w, http.StatusOK, taskStatusResponse{
		ID:       task.ID,
		Tipo:     string(task.Type),
		Estado:   string(task.Status),
		Intentos: task.Attempts,
		Error:    task.Error,
	})
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}

	if s.redis != nil {
		if err := s.redis.Ping(r.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"ready":  healthy,
		"checks": checks,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// JSON helpers

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the {"detail": ...} error shape of the original API.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
