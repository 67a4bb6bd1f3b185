package obs_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/obs"
)

func TestRequestLoggerIncludesBusiness(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	handler := obs.RequestLogger{Logger: logger}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	ctx := common.WithBusinessID(common.WithUserID(req.Context(), "42"), 7)
	req = req.WithContext(obs.WithRoute(ctx, "/api/v1/orders"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "/api/v1/orders", entry["route"])
	require.EqualValues(t, 201, entry["status"])
	require.Equal(t, "42", entry["user_id"])
	require.EqualValues(t, 7, entry["business_id"])
}
