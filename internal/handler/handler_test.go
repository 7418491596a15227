package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"roster/internal/database"
	"roster/internal/handler"
	"roster/internal/model"
	"roster/internal/service"
)

func setupRouter(t *testing.T, exportPath string) (*mux.Router, *service.StudentService) {
	t.Helper()
	db, err := database.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	svc := service.NewStudentService(db)
	return handler.NewRouter(svc, exportPath, zerolog.Nop()), svc
}

func seed(t *testing.T, svc *service.StudentService, inputs ...model.StudentInput) []uint {
	t.Helper()
	ids := make([]uint, 0, len(inputs))
	for _, in := range inputs {
		id, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func intPtr(n int) *int { return &n }
