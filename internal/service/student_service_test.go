package service_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"roster/internal/database"
	"roster/internal/model"
	"roster/internal/service"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func intPtr(n int) *int { return &n }

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

func TestCreateThenList(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	ctx := context.Background()

	id, err := svc.Create(ctx, model.StudentInput{Name: "Alice", Age: 20, Grade: "A", Rating: intPtr(4), Comments: "top"})
	require.NoError(t, err)
	assert.NotZero(t, id)

	students, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, model.Student{ID: id, Name: "Alice", Age: 20, Grade: "A", Rating: intPtr(4), Comments: "top"}, students[0])
}

func TestCreateDeleteExample(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	ctx := context.Background()

	ids := seed(t, svc,
		model.StudentInput{Name: "Alice", Age: 20, Grade: "A"},
		model.StudentInput{Name: "Bob", Age: 22, Grade: "B", Comments: "note"},
	)

	students, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Alice", students[0].Name)
	assert.Equal(t, "Bob", students[1].Name)
	assert.Nil(t, students[0].Rating)

	byAge, err := svc.SearchByAge(ctx, 20)
	require.NoError(t, err)
	require.Len(t, byAge, 1)
	assert.Equal(t, ids[0], byAge[0].ID)

	require.NoError(t, svc.Delete(ctx, ids[0]))

	students, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, ids[1], students[0].ID)
	assert.Equal(t, "note", students[0].Comments)
}

func TestUpdateChangesOnlyTarget(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	ctx := context.Background()

	ids := seed(t, svc,
		model.StudentInput{Name: "Alice", Age: 20, Grade: "A", Rating: intPtr(5), Comments: "x"},
		model.StudentInput{Name: "Bob", Age: 22, Grade: "B", Comments: "note"},
	)

	require.NoError(t, svc.Update(ctx, ids[0], model.StudentInput{Name: "Alicia", Age: 21, Grade: "C"}))

	students, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, model.Student{ID: ids[0], Name: "Alicia", Age: 21, Grade: "C"}, students[0])
	assert.Equal(t, model.Student{ID: ids[1], Name: "Bob", Age: 22, Grade: "B", Comments: "note"}, students[1])
}

func TestUpdateAndDeleteMissingID(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	ctx := context.Background()

	seed(t, svc, model.StudentInput{Name: "Alice", Age: 20, Grade: "A"})

	assert.NoError(t, svc.Delete(ctx, 999))
	assert.NoError(t, svc.Update(ctx, 999, model.StudentInput{Name: "Ghost", Age: 1, Grade: "Z"}))

	students, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Alice", students[0].Name)
}

func TestSearchByName(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	ctx := context.Background()

	seed(t, svc,
		model.StudentInput{Name: "John Doe", Age: 30, Grade: "A"},
		model.StudentInput{Name: "Jane Doe", Age: 25, Grade: "B"},
		model.StudentInput{Name: "Alice", Age: 20, Grade: "A"},
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"Substring in middle", "Do", []string{"John Doe", "Jane Doe"}},
		{"Prefix", "Jan", []string{"Jane Doe"}},
		{"Case sensitive", "doe", nil},
		{"Empty matches all", "", []string{"John Doe", "Jane Doe", "Alice"}},
		{"No match", "Zed", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students, err := svc.SearchByName(ctx, tt.query)
			require.NoError(t, err)

			var got []string
			for _, s := range students {
				got = append(got, s.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchByAge(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	ctx := context.Background()

	seed(t, svc,
		model.StudentInput{Name: "Alice", Age: 20, Grade: "A"},
		model.StudentInput{Name: "Bob", Age: 22, Grade: "B"},
		model.StudentInput{Name: "Carol", Age: 20, Grade: "C"},
	)

	students, err := svc.SearchByAge(ctx, 20)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Alice", students[0].Name)
	assert.Equal(t, "Carol", students[1].Name)

	students, err = svc.SearchByAge(ctx, 21)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestStats(t *testing.T) {
	svc := service.NewStudentService(setupTestDB(t))
	ctx := context.Background()

	empty, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.Stats{}, empty)

	seed(t, svc,
		model.StudentInput{Name: "Alice", Age: 20, Grade: "A", Rating: intPtr(5)},
		model.StudentInput{Name: "Bob", Age: 22, Grade: "B", Rating: intPtr(3)},
		model.StudentInput{Name: "Carol", Age: 25, Grade: "C", Rating: intPtr(5)},
		model.StudentInput{Name: "Dan", Age: 21, Grade: "B"},
	)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Count)
	assert.InDelta(t, 22.0, stats.AverageAge, 1e-9)
	assert.Equal(t, [5]int64{0, 0, 1, 0, 2}, stats.RatingHistogram)
}
