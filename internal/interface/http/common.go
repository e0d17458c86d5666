package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mewzone/mewzone/internal/application"
	"github.com/mewzone/mewzone/internal/domain/entity"
	"github.com/mewzone/mewzone/pkg/response"
)

// Form values are accepted case-insensitively; the domain enums are upper.
func entityGender(s string) entity.Gender { return entity.Gender(strings.ToUpper(s)) }

func entityFurType(s string) entity.FurType { return entity.FurType(strings.ToUpper(s)) }

// writeServiceError maps application errors onto the HTTP envelope.
func writeServiceError(c *gin.Context, err error) {
	if ve, ok := application.AsValidation(err); ok {
		response.Error(c, http.StatusBadRequest, "validation failed", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrEmailNotVerified):
		response.Error(c, http.StatusForbidden, "email not verified", nil)
	case errors.Is(err, application.ErrInvalidOTP):
		response.Error(c, http.StatusBadRequest, "invalid or expired OTP code", nil)
	case errors.Is(err, application.ErrSessionMissing):
		response.Error(c, http.StatusBadRequest, "no registration in progress; register first", nil)
	default:
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}

// formFiles converts multipart headers into service-level uploads. The
// returned closer must be called after the service finishes reading.
func formFiles(headers []*multipart.FileHeader) ([]application.FileUpload, func(), error) {
	var files []application.FileUpload
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, application.FileUpload{
			Name:        h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Size:        h.Size,
			Reader:      f,
		})
	}
	return files, closeAll, nil
}
