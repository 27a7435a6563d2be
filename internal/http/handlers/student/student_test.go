package student

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
)

// studentDoc mirrors the wire representation of a student in test
// assertions.
type studentDoc struct {
	ID     string  `json:"_id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Course string  `json:"course"`
	GPA    float64 `json:"gpa"`
}

// errorDoc mirrors the error envelope.
type errorDoc struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Fields []struct {
		Field      string `json:"field"`
		Constraint string `json:"constraint"`
		Message    string `json:"message"`
	} `json:"fields"`
}

// newTestRouter wires the handlers to the in-memory store with the same
// route table as main.go.
func newTestRouter(store storage.Storage) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("POST /{$}", New(store))
	router.HandleFunc("GET /{$}", GetList(store))
	router.HandleFunc("GET /{id}", GetByID(store))
	router.HandleFunc("PUT /{id}", Update(store))
	router.HandleFunc("DELETE /{id}", Delete(store))

	return router
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

const janeDoe = `{"name":"Jane Doe","email":"jdoe@example.com","course":"Nanophotonics","gpa":3.0}`

func createJaneDoe(t *testing.T, router http.Handler) studentDoc {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/", janeDoe)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[studentDoc](t, rec)
}

func TestCreateStudent(t *testing.T) {
	router := newTestRouter(memory.New())

	rec := do(t, router, http.MethodPost, "/", janeDoe)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	created := decode[studentDoc](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Jane Doe", created.Name)
	assert.Equal(t, "jdoe@example.com", created.Email)
	assert.Equal(t, "Nanophotonics", created.Course)
	assert.Equal(t, 3.0, created.GPA)

	// Round-trip: the created student is fetchable by its id.
	rec = do(t, router, http.MethodGet, "/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[studentDoc](t, rec))
}

func TestCreateStudentGPABoundary(t *testing.T) {
	router := newTestRouter(memory.New())

	rec := do(t, router, http.MethodPost, "/",
		`{"name":"Jane Doe","email":"jdoe@example.com","course":"Nanophotonics","gpa":4.0}`)
	assert.Equal(t, http.StatusCreated, rec.Code, "gpa 4.0 is inclusive")

	rec = do(t, router, http.MethodPost, "/",
		`{"name":"Jane Doe","email":"jdoe@example.com","course":"Nanophotonics","gpa":4.1}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[errorDoc](t, rec)
	assert.Equal(t, "error", body.Status)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "gpa", body.Fields[0].Field)
	assert.Equal(t, "lte", body.Fields[0].Constraint)
}

func TestCreateStudentMalformedEmail(t *testing.T) {
	router := newTestRouter(memory.New())

	rec := do(t, router, http.MethodPost, "/",
		`{"name":"Jane Doe","email":"jdoe.example.com","course":"Nanophotonics","gpa":3.0}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[errorDoc](t, rec)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "email", body.Fields[0].Field)
}

func TestCreateStudentMissingFields(t *testing.T) {
	router := newTestRouter(memory.New())

	rec := do(t, router, http.MethodPost, "/", `{"name":"Jane Doe"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[errorDoc](t, rec)
	assert.Len(t, body.Fields, 3)
}

func TestCreateStudentEmptyBody(t *testing.T) {
	router := newTestRouter(memory.New())

	rec := do(t, router, http.MethodPost, "/", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is empty", decode[errorDoc](t, rec).Error)
}

func TestGetStudentNotFound(t *testing.T) {
	router := newTestRouter(memory.New())
	missing := primitive.NewObjectID().Hex()

	rec := do(t, router, http.MethodGet, "/"+missing, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("Student %s not found", missing),
		decode[errorDoc](t, rec).Error)
}

func TestListStudents(t *testing.T) {
	router := newTestRouter(memory.New())

	rec := do(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "empty store lists as [], not null")

	for i := 0; i < 3; i++ {
		createJaneDoe(t, router)
	}

	rec = do(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]studentDoc](t, rec), 3)
}

func TestUpdateStudentEmptyPatch(t *testing.T) {
	router := newTestRouter(memory.New())
	created := createJaneDoe(t, router)

	rec := do(t, router, http.MethodPut, "/"+created.ID, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[studentDoc](t, rec))
}

func TestUpdateStudentGPAOnly(t *testing.T) {
	router := newTestRouter(memory.New())
	created := createJaneDoe(t, router)

	rec := do(t, router, http.MethodPut, "/"+created.ID, `{"gpa":3.9}`)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decode[studentDoc](t, rec)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Course, updated.Course)
	assert.Equal(t, 3.9, updated.GPA)

	rec = do(t, router, http.MethodGet, "/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, updated, decode[studentDoc](t, rec))
}

func TestUpdateStudentNullFieldLeftUnchanged(t *testing.T) {
	router := newTestRouter(memory.New())
	created := createJaneDoe(t, router)

	rec := do(t, router, http.MethodPut, "/"+created.ID, `{"name":null,"gpa":3.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decode[studentDoc](t, rec)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, 3.5, updated.GPA)
}

func TestUpdateStudentNotFound(t *testing.T) {
	router := newTestRouter(memory.New())
	missing := primitive.NewObjectID().Hex()

	rec := do(t, router, http.MethodPut, "/"+missing, `{"gpa":3.5}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("Student %s not found", missing),
		decode[errorDoc](t, rec).Error)
}

func TestUpdateStudentInvalidPatch(t *testing.T) {
	router := newTestRouter(memory.New())
	created := createJaneDoe(t, router)

	rec := do(t, router, http.MethodPut, "/"+created.ID, `{"gpa":4.5}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The record is untouched.
	rec = do(t, router, http.MethodGet, "/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[studentDoc](t, rec))
}

func TestDeleteStudentThenGet(t *testing.T) {
	router := newTestRouter(memory.New())
	created := createJaneDoe(t, router)

	rec := do(t, router, http.MethodDelete, "/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String(), "delete returns no body")

	rec = do(t, router, http.MethodGet, "/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteStudentNotFound(t *testing.T) {
	router := newTestRouter(memory.New())
	missing := primitive.NewObjectID().Hex()

	rec := do(t, router, http.MethodDelete, "/"+missing, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("Student %s not found", missing),
		decode[errorDoc](t, rec).Error)
}
