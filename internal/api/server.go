// Package api отдаёт сканы и области интереса по HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/rs/cors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/zenazn/goji/web"
	"github.com/zenazn/goji/web/middleware"

	app "scan-viewer/internal/application"
	"scan-viewer/internal/container"
	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
	"scan-viewer/internal/infrastructure/vision"
)

const maxBodyBytes = 1 << 20

// Server HTTP сервер просмотра сканов
type Server struct {
	app     *container.Container
	schemas *schemas
	origins []string
}

// NewServer создаёт сервер поверх сервисов приложения
func NewServer(c *container.Container, allowedOrigins []string) (*Server, error) {
	sch, err := compileSchemas()
	if err != nil {
		return nil, fmt.Errorf("compile schemas: %w", err)
	}
	return &Server{app: c, schemas: sch, origins: allowedOrigins}, nil
}

// Handler собирает маршруты
func (s *Server) Handler() http.Handler {
	m := web.New()
	m.Use(middleware.RequestID)
	m.Use(middleware.Logger)
	m.Use(middleware.Recoverer)

	m.Get("/", s.worklist)
	m.Get("/view-scan/:uid", s.viewScan)
	m.Get("/get-scan/:uid", s.getScan)
	m.Get("/get-rois/:uid/:slice", s.getROIs)
	m.Get("/get-roi-groups/:uid", s.getROIGroups)
	m.Get("/suggest-rois/:uid/:slice", s.suggestROIs)
	m.Post("/add-roi", s.addROI)
	m.Post("/delete-roi", s.deleteROI)
	m.Post("/save", s.save)

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(m)
}

func (s *Server) worklist(c web.C, w http.ResponseWriter, r *http.Request) {
	items, err := s.app.ScanService.Worklist(r.Context())
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, items, http.StatusOK)
}

func (s *Server) viewScan(c web.C, w http.ResponseWriter, r *http.Request) {
	meta, err := s.app.ScanService.Metadata(r.Context(), c.URLParams["uid"])
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, meta, http.StatusOK)
}

func (s *Server) getScan(c web.C, w http.ResponseWriter, r *http.Request) {
	uid := c.URLParams["uid"]
	volume, err := s.app.ScanService.Volume(r.Context(), uid)
	if err != nil {
		respondFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(volume)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(volume); err != nil {
		log.Printf("Error writing volume of %s: %v", uid, err)
	}
}

func (s *Server) getROIs(c web.C, w http.ResponseWriter, r *http.Request) {
	slice, err := strconv.Atoi(c.URLParams["slice"])
	if err != nil {
		respondError(w, "slice must be an integer", http.StatusBadRequest)
		return
	}

	rois, err := s.app.ROIService.InSlice(r.Context(), c.URLParams["uid"], slice)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, rois, http.StatusOK)
}

func (s *Server) getROIGroups(c web.C, w http.ResponseWriter, r *http.Request) {
	groups, err := s.app.ROIService.Groups(r.Context(), c.URLParams["uid"])
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, groups, http.StatusOK)
}

func (s *Server) suggestROIs(c web.C, w http.ResponseWriter, r *http.Request) {
	slice, err := strconv.Atoi(c.URLParams["slice"])
	if err != nil {
		respondError(w, "slice must be an integer", http.StatusBadRequest)
		return
	}

	suggestion, err := s.app.SuggestService.Suggest(r.Context(), c.URLParams["uid"], slice)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, suggestion, http.StatusOK)
}

func (s *Server) addROI(c web.C, w http.ResponseWriter, r *http.Request) {
	var req entity.AddROIRequest
	if err := readJSON(r, s.schemas.addROI, &req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	roi, err := s.app.ROIService.Add(r.Context(), req)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, roi, http.StatusOK)
}

func (s *Server) deleteROI(c web.C, w http.ResponseWriter, r *http.Request) {
	var req entity.DeleteROIRequest
	if err := readJSON(r, s.schemas.deleteROI, &req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	left, err := s.app.ROIService.Delete(r.Context(), req.ScanID, req.ID)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, left, http.StatusOK)
}

func (s *Server) save(c web.C, w http.ResponseWriter, r *http.Request) {
	var req entity.SaveRequest
	if err := readJSON(r, s.schemas.save, &req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.app.ROIService.Save(r.Context(), req.ScanID); err != nil {
		respondFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// readJSON читает тело как JSON независимо от Content-Type и проверяет его схемой
func readJSON(r *http.Request, sch *jsonschema.Schema, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}

// respondFailure выбирает статус по типу ошибки сервиса
func respondFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound), errors.Is(err, app.ErrSliceOutOfRange):
		respondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, vision.ErrDisabled), errors.Is(err, app.ErrNoDetector):
		respondError(w, err.Error(), http.StatusNotImplemented)
	default:
		log.Printf("Request failed: %v", err)
		respondError(w, err.Error(), http.StatusInternalServerError)
	}
}
