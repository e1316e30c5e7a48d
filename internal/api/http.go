// Package api exposes the validation pipeline over a small JSON HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/handlers"

	"github.com/Tiliavir/timesheet-validator/internal/holiday"
	"github.com/Tiliavir/timesheet-validator/internal/logging"
	"github.com/Tiliavir/timesheet-validator/internal/logparse"
	"github.com/Tiliavir/timesheet-validator/internal/pipeline"
)

// DefaultMaxUpload bounds the size of an uploaded workbook.
const DefaultMaxUpload = 32 << 20

// Validator runs one validation. *pipeline.Runner satisfies it.
type Validator interface {
	Run(ctx context.Context, req pipeline.Request) (pipeline.Report, error)
}

type Server struct {
	validator Validator
	holidays  pipeline.HolidayResolver
	sheet     string
	log       *slog.Logger
	maxUpload int64
	now       func() time.Time
}

// NewServer creates a Server reading uploads from the named sheet. A nil
// logger discards logs.
func NewServer(v Validator, h pipeline.HolidayResolver, sheet string, log *slog.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	return &Server{
		validator: v,
		holidays:  h,
		sheet:     sheet,
		log:       log,
		maxUpload: DefaultMaxUpload,
		now:       time.Now,
	}
}

// Handler returns the router wrapped with access logging to accessLog and
// panic recovery.
func (s *Server) Handler(accessLog io.Writer) http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.log}),
		handlers.PrintRecoveryStack(false),
	)
	return recovery(handlers.LoggingHandler(accessLog, NewRouter(s)))
}

type recoveryLogger struct{ log *slog.Logger }

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("handler_panic", "detail", fmt.Sprint(v...))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := parseYear(q.Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, closeBody, err := s.workbookBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer closeBody()

	grid, err := logparse.ReadWorkbook(body, s.sheet)
	if err != nil {
		if errors.Is(err, logparse.ErrSheetNotFound) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.validator.Run(r.Context(), pipeline.Request{
		Grid:  grid,
		Year:  year,
		Owner: strings.TrimSpace(q.Get("owner")),
	})
	if err != nil {
		var rowErr *logparse.RowError
		switch {
		case errors.As(err, &rowErr):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, holiday.ErrYearOutOfRange):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.log.Error("validate_failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "validation failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) listHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if year == 0 {
		year = s.now().Year()
	}

	set, err := s.holidays.Resolve(r.Context(), year)
	if err != nil {
		if errors.Is(err, holiday.ErrYearOutOfRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "resolving holidays failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"year": year, "holidays": set})
}

// workbookBody returns the uploaded workbook: the multipart field "file" for
// form uploads, the raw request body otherwise.
func (s *Server) workbookBody(w http.ResponseWriter, r *http.Request) (io.Reader, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.Body, func() { _ = r.Body.Close() }, nil
	}
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return nil, nil, fmt.Errorf("invalid multipart body: %w", err)
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("multipart field %q: %w", "file", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func parseYear(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return y, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
