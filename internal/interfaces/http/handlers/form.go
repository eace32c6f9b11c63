package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/pkg/utils"
)

// maxMultipartMemory bounds the in-memory part of a multipart body; larger files spill to disk
const maxMultipartMemory = 32 << 20

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm)
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return domainerrors.Validation("invalid request body: " + err.Error())
	}
	return nil
}

func parseID(c *gin.Context, name string) (uuid.UUID, error) {
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return uuid.Nil, domainerrors.Validationf("invalid %s id", name)
	}
	return id, nil
}

func multipartForm(c *gin.Context) (*multipart.Form, error) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, domainerrors.Validation("invalid multipart body: " + err.Error())
	}
	return c.Request.MultipartForm, nil
}

// openUploads opens every file posted under fields. A nil fields list takes
// all file fields of the form. The returned closer releases the files.
func openUploads(form *multipart.Form, fields []string) ([]entities.Upload, func(), error) {
	var (
		uploads []entities.Upload
		opened  []multipart.File
	)
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	if form == nil {
		return nil, closeAll, nil
	}
	if fields == nil {
		for field := range form.File {
			fields = append(fields, field)
		}
	}

	for _, field := range fields {
		for _, header := range form.File[field] {
			file, err := header.Open()
			if err != nil {
				closeAll()
				return nil, func() {}, domainerrors.Validationf("cannot read uploaded file %q", header.Filename)
			}
			opened = append(opened, file)
			uploads = append(uploads, entities.Upload{
				FieldName:   field,
				FileName:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Content:     file,
			})
		}
	}
	return uploads, closeAll, nil
}

// formValue returns the trimmed value of key and whether the key was posted
func formValue(form *multipart.Form, key string) (string, bool) {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return strings.TrimSpace(values[0]), true
}

func formString(form *multipart.Form, key string) string {
	v, _ := formValue(form, key)
	return v
}

func formStringPtr(form *multipart.Form, key string) *string {
	v, ok := formValue(form, key)
	if !ok {
		return nil
	}
	return &v
}

// formJSON decodes a JSON-encoded form field into dst. Missing or blank fields are skipped.
func formJSON(form *multipart.Form, key string, dst interface{}) (bool, error) {
	raw, ok := formValue(form, key)
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, domainerrors.Validationf("field %s is not valid JSON", key)
	}
	return true, nil
}

func formFloat(form *multipart.Form, key string) (*float64, error) {
	raw, ok := formValue(form, key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domainerrors.Validationf("field %s must be a number", key)
	}
	return &v, nil
}

func formUUID(form *multipart.Form, key string) (*uuid.UUID, error) {
	raw, ok := formValue(form, key)
	if !ok || raw == "" {
		return nil, nil
	}
	id, ok := utils.ParseUUID(raw)
	if !ok {
		return nil, domainerrors.Validationf("field %s must be a valid id", key)
	}
	return &id, nil
}

// formTags accepts a JSON array or a comma-separated list
func formTags(form *multipart.Form, key string) ([]string, bool, error) {
	raw, ok := formValue(form, key)
	if !ok {
		return nil, false, nil
	}
	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return nil, false, domainerrors.Validationf("field %s is not valid JSON", key)
		}
		return cleanTags(tags), true, nil
	}
	return cleanTags(strings.Split(raw, ",")), true, nil
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
