package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/fem"
	"github.com/alexiusacademia/gobeam/internal/input"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/report"
	"github.com/alexiusacademia/gobeam/internal/version"
)

// Request is a beam description with an optional NSCP load combination ID
type Request struct {
	input.File
	Combination string `json:"combination,omitempty"`
	Project     string `json:"project,omitempty"`
	Author      string `json:"author,omitempty"`
}

// Response carries the analysis results of one request
type Response struct {
	Combination string       `json:"combination,omitempty"`
	Results     *fem.Results `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// solve decodes and analyzes a request, writing a 4xx response on bad input
func (s *Server) solve(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request payload: %v", err))
		return nil, false
	}

	p, err := req.Build()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	rep := &report.Report{
		Project:  req.Project,
		Author:   req.Author,
		Config:   p.Config,
		Supports: p.Supports,
		Loads:    p.Loads,
	}
	loads := p.Loads
	if req.Combination != "" {
		combo, err := nscp.Find(req.Combination, nscp.LoadCombinations)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		loads = combo.Apply(loads)
		rep.Combination = combo.Description
		rep.Loads = loads
	}

	res, err := fem.Analyze(p.Config, p.Supports, loads, p.Probe,
		fem.WithPenaltyFactor(s.cfg.PenaltyFactor),
		fem.WithInfluenceStations(s.cfg.InfluenceStations),
		fem.WithLogger(s.log),
	)
	if err != nil {
		status := http.StatusInternalServerError
		if isInputError(err) {
			status = http.StatusBadRequest
		}
		s.log.Error("analysis failed", "err", err)
		writeError(w, status, err.Error())
		return nil, false
	}
	rep.Results = res
	return rep, true
}

func isInputError(err error) bool {
	return errors.Is(err, beam.ErrInvalidGeometry) ||
		errors.Is(err, beam.ErrInvalidLoad) ||
		errors.Is(err, beam.ErrInvalidSupport)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.solve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Response{Combination: rep.Combination, Results: rep.Results})
}

func (s *Server) reportPDF(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.solve(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.WritePDF(&buf, *rep); err != nil {
		s.log.Error("pdf report", "err", err)
		writeError(w, http.StatusInternalServerError, "report generation error")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"beam-report.pdf\"")
	w.Write(buf.Bytes())
}

func (s *Server) reportXLSX(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.solve(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, *rep); err != nil {
		s.log.Error("xlsx report", "err", err)
		writeError(w, http.StatusInternalServerError, "report generation error")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"beam-results.xlsx\"")
	w.Write(buf.Bytes())
}
