package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"gadget-shop-be/internal/logger"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func WriteJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L().Error("failed to encode JSON response", zap.Error(err))
	}
}

// WriteJSONError writes {"message": "..."}, the shape every error path uses.
func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"message": message})
}

// DecodeJSON reads a single JSON value from the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("empty request body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
