package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"roster/internal/model"
	"roster/internal/service"
)

// StudentStore is the data-access surface the handlers depend on.
type StudentStore interface {
	Create(ctx context.Context, in model.StudentInput) (uint, error)
	List(ctx context.Context) ([]model.Student, error)
	Delete(ctx context.Context, id uint) error
	Update(ctx context.Context, id uint, in model.StudentInput) error
	SearchByName(ctx context.Context, substr string) ([]model.Student, error)
	SearchByAge(ctx context.Context, age int) ([]model.Student, error)
	Stats(ctx context.Context) (service.Stats, error)
}

// displayed returns the rows selected by the request's search query: an age
// search when "age" is set, otherwise a name search (empty name lists all).
func displayed(ctx context.Context, store StudentStore, r *http.Request) ([]model.Student, error) {
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("age")); raw != "" {
		age, err := service.ParseAgeQuery(raw)
		if err != nil {
			return nil, err
		}
		return store.SearchByAge(ctx, age)
	}

	if name := strings.TrimSpace(query.Get("name")); name != "" {
		return store.SearchByName(ctx, name)
	}
	return store.List(ctx)
}

func studentID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
