package server

import (
	"encoding/json"
	"net/http"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "err", err)
	}
	s.respondJSON(w, status, ErrorResponse{Error: string(code), Message: errors.UserMessage(err)})
}

// respondStatus writes a rejected mutation. Unknown structures are 404,
// unknown types 400, every other rejection 409.
func (s *Server) respondStatus(w http.ResponseWriter, st blueprint.Status) {
	code := http.StatusConflict
	switch st {
	case blueprint.StructureNotFound:
		code = http.StatusNotFound
	case blueprint.UnknownStructureType:
		code = http.StatusBadRequest
	}
	s.respondJSON(w, code, StatusResponse{Status: st.String()})
}

func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeOperationRejected, errors.ErrCodeDuplicateStructureID:
		return http.StatusConflict
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath,
		errors.ErrCodeUnknownStructureType, errors.ErrCodeMissingRootStructure,
		errors.ErrCodeCorruptDocking, errors.ErrCodeInvalidCatalog:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
