// Package student contains all HTTP handlers for the Student resource.
//
// Handlers are built with the factory/closure pattern: each exported
// function receives the Storage dependency once at route-registration time
// and returns the http.HandlerFunc that runs on every request, e.g.
//
//	router.HandleFunc("POST /{$}", student.New(store))
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
	"github.com/aanand-mishra/student-records/internal/validation"
)

// New handles POST /
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Jane Doe", "email": "jdoe@example.com", "course": "Nanophotonics", "gpa": 3.0 }
//
// Success response (201 Created) — the stored student, including the
// store-assigned identifier:
//
//	{ "_id": "66b1...", "name": "Jane Doe", ... }
//
// Error responses:
//
//	400 Bad Request           — empty body or malformed JSON
//	422 Unprocessable Entity  — schema violation (missing field, bad email, gpa > 4.0)
//	500 Internal              — store error
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var student types.Student

		err := json.NewDecoder(r.Body).Decode(&student)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if violations := validation.Student(student); len(violations) > 0 {
			response.WriteJSON(w, http.StatusUnprocessableEntity,
				response.ValidationError(violations))
			return
		}

		created, err := store.CreateStudent(r.Context(), student)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.String("id", created.ID.Hex()))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetList handles GET /
// Returns a JSON array of up to 1000 students, in the store's natural
// order. Returns an empty array [] (not null) when there are none.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetStudents(r.Context())
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// GetByID handles GET /{id}
// Fetches a single student by identifier.
//
// Error responses:
//
//	404 Not Found  — "Student {id} not found"
//	500 Internal   — store error
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		student, err := store.GetStudentByID(r.Context(), id)
		if errors.Is(err, storage.ErrStudentNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.NotFoundError(id))
			return
		}
		if err != nil {
			slog.Error("error getting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// Update handles PUT /{id}
// Applies a partial patch: fields absent from the body (or explicitly null)
// are left unchanged. An empty patch against an existing student returns
// the record unchanged rather than erroring.
//
// Request body (JSON) — any subset of the student fields:
//
//	{ "gpa": 3.5 }
//
// Error responses:
//
//	400 Bad Request           — empty body or malformed JSON
//	404 Not Found             — "Student {id} not found"
//	422 Unprocessable Entity  — a present field violates its constraint
//	500 Internal              — store error
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		var patch types.UpdateStudent

		err := json.NewDecoder(r.Body).Decode(&patch)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if violations := validation.Patch(patch); len(violations) > 0 {
			response.WriteJSON(w, http.StatusUnprocessableEntity,
				response.ValidationError(violations))
			return
		}

		updated, err := store.UpdateStudentByID(r.Context(), id, patch)
		if errors.Is(err, storage.ErrStudentNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.NotFoundError(id))
			return
		}
		if err != nil {
			slog.Error("error updating student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /{id}
// Permanently removes a student. Success is 204 with an empty body.
//
// Error responses:
//
//	404 Not Found  — "Student {id} not found"
//	500 Internal   — store error
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		err := store.DeleteStudentByID(r.Context(), id)
		if errors.Is(err, storage.ErrStudentNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.NotFoundError(id))
			return
		}
		if err != nil {
			slog.Error("error deleting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
