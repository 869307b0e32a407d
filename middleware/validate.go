package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"
)

// ValidateJSON decodes a JSON payload into dst and runs the tag validator.
// It writes the error envelope itself; callers just return on error.
func ValidateJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		utils.WriteError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return http.ErrNotSupported
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return err
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Status:  utils.StatusError,
			Message: "Validation failed",
			Data:    err.Error(),
		})
		return err
	}
	return nil
}
