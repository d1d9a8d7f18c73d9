package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"consultcoach/internal/model"
	"consultcoach/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// maxJSONBodyBytes caps the analysis and chat request bodies
const maxJSONBodyBytes = 64 << 10

// SessionHandler handles session endpoints
type SessionHandler struct {
	sessionSvc     *service.SessionService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, maxUploadBytes int64, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionSvc:     sessionSvc,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, token, err := h.sessionSvc.Create(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("create session")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateSessionResponse{
		SessionID: session.ID,
		Token:     token,
	})
}

// Get handles GET /v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session.View())
}

// Reset handles DELETE /v1/sessions/{id}
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Reset(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session.View())
}

// UploadTranscript handles POST /v1/sessions/{id}/transcript.
// Accepts multipart form field "file", or a raw body with ?filename=.
// ?format= overrides the extension; ?analyze=true runs the analysis too.
func (h *SessionHandler) UploadTranscript(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	filename, data, err := readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "transcript exceeds upload limit")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = r.FormValue("format")
	}

	session, err := h.sessionSvc.LoadTranscript(r.Context(), id, filename, data, format)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if analyze, _ := strconv.ParseBool(r.URL.Query().Get("analyze")); analyze {
		session, err = h.sessionSvc.Analyze(r.Context(), id, r.URL.Query().Get("model"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, session.View())
}

// AnalyzeRequest is the request body for requesting an analysis
type AnalyzeRequest struct {
	Model string `json:"model"`
}

// Analyze handles POST /v1/sessions/{id}/analysis
func (h *SessionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := decodeOptionalBody(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	session, err := h.sessionSvc.Analyze(r.Context(), mux.Vars(r)["id"], req.Model)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session.View())
}

// ChatRequest is the request body for a chat turn
type ChatRequest struct {
	Question string `json:"question"`
	Model    string `json:"model"`
}

// ChatResponse carries the answer and the updated history
type ChatResponse struct {
	Answer  string           `json:"answer"`
	History []model.ChatTurn `json:"history"`
}

// Chat handles POST /v1/sessions/{id}/chat
func (h *SessionHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err)
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, session, err := h.sessionSvc.Chat(r.Context(), mux.Vars(r)["id"], req.Question, req.Model)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Answer:  answer,
		History: session.ChatHistory,
	})
}

// Report handles GET /v1/sessions/{id}/report
func (h *SessionHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.sessionSvc.Report(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ReportPDF handles GET /v1/sessions/{id}/report.pdf
func (h *SessionHandler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.sessionSvc.ReportPDF(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="coaching_report.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

func readUpload(r *http.Request) (string, []byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, err
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		return header.Filename, data, err
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		return "", nil, errors.New("filename is required for raw uploads")
	}
	data, err := io.ReadAll(r.Body)
	return filename, data, err
}

func decodeOptionalBody(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "invalid request body")
}
