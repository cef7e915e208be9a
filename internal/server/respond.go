package server

import (
	"encoding/json"
	"errors"
	"net/http"

	flowerr "github.com/flowcopy/flowcopy/pkg/errors"
	"github.com/flowcopy/flowcopy/pkg/store"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError maps an error onto a status code and the JSON error shape.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := flowerr.GetCode(err)
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, store.ErrNotFound), code == flowerr.ErrCodeNotFound:
		status = http.StatusNotFound
		if code == "" {
			code = flowerr.ErrCodeNotFound
		}
	case errors.Is(err, store.ErrInvalidProject), code == flowerr.ErrCodeInvalidProject,
		code == flowerr.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case code == flowerr.ErrCodeMalformedDocument,
		code == flowerr.ErrCodeUnrecognizedFormat,
		code == flowerr.ErrCodeEmptyImport,
		code == flowerr.ErrCodeNoMatchingRows:
		status = http.StatusUnprocessableEntity
	}

	if code == "" {
		code = flowerr.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = flowerr.UserMessage(err)
	s.writeJSON(w, status, body)
}
