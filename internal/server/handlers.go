package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/locale"
	"github.com/alexiusacademia/eurobeam/internal/report"
)

// AnalyzeResponse is the body returned by POST /api/beam/analyze
type AnalyzeResponse struct {
	Input  beam.BeamInput      `json:"input"`
	Result beam.AnalysisResult `json:"result"`
}

// Locale describes one supported language
type Locale struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// decodeInput reads a BeamInput body, filling missing fields from the
// configured defaults, and validates it. It writes the error reply itself
// and reports whether the handler may continue.
func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (beam.BeamInput, bool) {
	in := s.cfg.Defaults
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		var ve *beam.ValidationError
		if errors.As(err, &ve) {
			writeError(w, r, http.StatusBadRequest, err.Error(), Violation{Field: ve.Field, Constraint: ve.Constraint})
			return in, false
		}
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return in, false
	}
	if err := in.ValidateWithin(s.cfg.Limits); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), violations(err)...)
		return in, false
	}
	return in, true
}

// violations flattens a joined validation error
func violations(err error) []Violation {
	var out []Violation
	var walk func(error)
	walk = func(err error) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
			return
		}
		var ve *beam.ValidationError
		if errors.As(err, &ve) {
			out = append(out, Violation{Field: ve.Field, Constraint: ve.Constraint})
		}
	}
	walk(err)
	return out
}

// labels picks the export language from ?lang=, then Accept-Language
func (s *Server) labels(r *http.Request) locale.Labels {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return locale.Lookup(lang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return locale.Lookup(accept)
	}
	return locale.Lookup(s.cfg.Lang)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{Input: in, Result: beam.Analyze(in)})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.WritePDF(&buf, in, beam.Analyze(in), s.labels(r)); err != nil {
		s.logger.Error("report generation failed", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, r, http.StatusInternalServerError, "report generation failed")
		return
	}
	s.sendFile(w, "application/pdf", "beam_report.pdf", &buf)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	l := s.labels(r)
	rows := [][]any{report.SummaryRow(in, beam.Analyze(in), l)}
	var buf bytes.Buffer
	if err := report.WriteSummary(&buf, rows, l); err != nil {
		s.logger.Error("summary generation failed", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, r, http.StatusInternalServerError, "summary generation failed")
		return
	}
	s.sendFile(w, xlsxContentType, "beam_summary.xlsx", &buf)
}

func (s *Server) sendFile(w http.ResponseWriter, contentType, name string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := io.Copy(w, buf); err != nil {
		s.logger.Warn("download interrupted", "file", name, "error", err)
	}
}

func (s *Server) handleLocales(w http.ResponseWriter, r *http.Request) {
	codes := locale.Supported()
	out := make([]Locale, len(codes))
	for i, code := range codes {
		out[i] = Locale{Code: code, Name: locale.Lookup(code).Language}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Limits)
}
