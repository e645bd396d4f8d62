package handler

import (
	"net/http"

	"gadget-shop-be/internal/apperror"
	"gadget-shop-be/internal/logger"
	"gadget-shop-be/internal/utils"

	"go.uber.org/zap"
)

// InsertResult answers a successful create.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.StatusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	utils.WriteJSONError(w, apperror.Message(err), status)
}

// decodeBody reads the JSON body into v; malformed bodies are client errors.
func decodeBody(r *http.Request, v interface{}) error {
	if err := utils.DecodeJSON(r, v); err != nil {
		return apperror.Wrap(apperror.ErrInvalidInput, err.Error())
	}
	return nil
}
