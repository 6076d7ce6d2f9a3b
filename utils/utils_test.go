package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name" validate:"required"`
}

type order struct {
	Quantity int    `json:"quantity" validate:"gte=1"`
	Items    []item `json:"items" validate:"dive"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		errors map[string]string
	}{
		{"valid", `{"quantity":2,"items":[{"name":"a"}]}`, http.StatusOK, nil},
		{"malformed json", `{"quantity":`, http.StatusBadRequest, nil},
		{"field errors", `{"quantity":0,"items":[{"name":""}]}`, http.StatusBadRequest, map[string]string{
			"quantity":      "gte",
			"items[0].name": "required",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var o order
			err := DecodeAndValidate(rec, req, &o)
			if tt.status == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, 2, o.Quantity)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.status, rec.Code)
			if tt.errors != nil {
				var body struct {
					Errors map[string]string `json:"errors"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.errors, body.Errors)
			}
		})
	}
}

func TestHandleFileResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleFileResponse(rec, "text/csv", "report.csv", []byte("a,b"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="report.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b", rec.Body.String())
}
