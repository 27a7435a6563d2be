// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and validation can all import types without depending
// on each other.
package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// Student represents one student document.
//
// The identifier is a MongoDB ObjectID. primitive.ObjectID marshals to and
// from a JSON hex string, so "_id" is always a string on the wire even
// though the stored form is the native 12-byte identifier. Clients never
// supply it: the store assigns it at create time.
//
// GPA is a pointer so that an explicit "gpa": 0.0 is distinguishable from a
// request that omits the key entirely; "required" on a plain float64 would
// reject the zero. There is deliberately no lower bound on gpa.
type Student struct {
	ID     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name   string             `json:"name" bson:"name" validate:"required"`
	Email  string             `json:"email" bson:"email" validate:"required,email"`
	Course string             `json:"course" bson:"course" validate:"required"`
	GPA    *float64           `json:"gpa" bson:"gpa" validate:"required,lte=4"`
}

// UpdateStudent is a partial Student: every field optional. A field absent
// from the JSON body and a field explicitly set to null both decode to a
// nil pointer and mean "leave unchanged" — absence is the only no-op
// signal.
type UpdateStudent struct {
	Name   *string  `json:"name" validate:"omitempty,min=1"`
	Email  *string  `json:"email" validate:"omitempty,email"`
	Course *string  `json:"course" validate:"omitempty,min=1"`
	GPA    *float64 `json:"gpa" validate:"omitempty,lte=4"`
}

// Fields returns the assignment set for the patch: one entry per present
// (non-nil) field, keyed by the stored field name. An empty map means the
// patch is a no-op.
func (u UpdateStudent) Fields() map[string]any {
	fields := make(map[string]any)
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Email != nil {
		fields["email"] = *u.Email
	}
	if u.Course != nil {
		fields["course"] = *u.Course
	}
	if u.GPA != nil {
		fields["gpa"] = *u.GPA
	}
	return fields
}
