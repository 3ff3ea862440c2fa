package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
)

const maxBodyBytes = 64 << 10

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid request body")
	}
	return nil
}

func progressFilterFromQuery(r *http.Request, studentID string) models.ProgressFilter {
	filter := models.ProgressFilter{StudentID: studentID}

	if v := r.URL.Query().Get("completed"); v != "" {
		if completed, err := strconv.ParseBool(v); err == nil {
			filter.Completed = &completed
		}
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}
	return filter
}
