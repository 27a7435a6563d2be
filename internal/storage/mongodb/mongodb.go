// Package mongodb provides a MongoDB-backed implementation of the
// storage.Storage interface using the official Go driver.
//
// All five operations are single-document calls keyed on "_id", so the
// store's own per-document atomicity is sufficient; no transactions or
// application-level locking are needed.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// listLimit caps GetStudents. This is a hard cap, not pagination: documents
// past the limit are silently omitted.
const listLimit = 1000

const collectionName = "students"

// MongoDB is the concrete implementation of storage.Storage. It holds a
// *mongo.Client, which manages its own connection pool and is safe for
// concurrent use by multiple goroutines.
type MongoDB struct {
	client   *mongo.Client
	students *mongo.Collection
}

// New connects to the deployment named in cfg.MongoURI, pings it so that
// connection problems surface at startup rather than on the first request,
// and returns a ready-to-use *MongoDB.
func New(ctx context.Context, cfg *config.Config) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongodb.New: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongodb.New: ping: %w", err)
	}

	return &MongoDB{
		client:   client,
		students: client.Database(cfg.Database).Collection(collectionName),
	}, nil
}

// Close disconnects the underlying client. Called once at shutdown.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// objectID converts the external string identifier into the native key
// format. This is the only place the conversion happens. A string that is
// not valid ObjectID hex can never address a document, so it reports
// ErrStudentNotFound (wrapped with the offending input for logs) rather
// than a separate malformed-id error.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID,
			fmt.Errorf("%w: %q is not a valid object id", storage.ErrStudentNotFound, id)
	}
	return oid, nil
}

// CreateStudent inserts a new document and re-reads it by the assigned id
// so the caller gets back exactly what was stored.
func (m *MongoDB) CreateStudent(ctx context.Context, student types.Student) (types.Student, error) {
	// The store assigns the identifier: drop anything the caller set so
	// the driver generates a fresh ObjectID on insert.
	student.ID = primitive.NilObjectID

	result, err := m.students.InsertOne(ctx, student)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: insert: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return types.Student{}, fmt.Errorf("CreateStudent: unexpected inserted id type %T", result.InsertedID)
	}

	return m.findOne(ctx, oid)
}

// GetStudents reads up to listLimit documents with no filter, in the
// store's natural iteration order.
func (m *MongoDB) GetStudents(ctx context.Context) ([]types.Student, error) {
	cursor, err := m.students.Find(ctx, bson.M{}, options.Find().SetLimit(listLimit))
	if err != nil {
		return nil, fmt.Errorf("GetStudents: find: %w", err)
	}
	defer cursor.Close(ctx)

	// Pre-allocate an empty (non-nil) slice so an empty collection encodes
	// to [] rather than null.
	students := make([]types.Student, 0)
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("GetStudents: decode: %w", err)
	}

	return students, nil
}

// GetStudentByID fetches exactly one document matched by identifier.
func (m *MongoDB) GetStudentByID(ctx context.Context, id string) (types.Student, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Student{}, err
	}

	return m.findOne(ctx, oid)
}

// UpdateStudentByID builds a $set document from the present patch fields
// and applies it as one atomic operation. If the update modified exactly
// one document, the fresh copy is returned. Every other case — empty
// patch, no-op patch, or an id that matched nothing — degrades into a
// plain read, so a no-op patch against an existing record still succeeds
// and a missing record reports ErrStudentNotFound.
func (m *MongoDB) UpdateStudentByID(ctx context.Context, id string, patch types.UpdateStudent) (types.Student, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Student{}, err
	}

	if fields := patch.Fields(); len(fields) > 0 {
		result, err := m.students.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
		if err != nil {
			return types.Student{}, fmt.Errorf("UpdateStudentByID: update: %w", err)
		}

		if result.ModifiedCount == 1 {
			return m.findOne(ctx, oid)
		}
	}

	return m.findOne(ctx, oid)
}

// DeleteStudentByID removes the matching document.
func (m *MongoDB) DeleteStudentByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	result, err := m.students.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: delete: %w", err)
	}

	if result.DeletedCount == 0 {
		return storage.ErrStudentNotFound
	}

	return nil
}

func (m *MongoDB) findOne(ctx context.Context, oid primitive.ObjectID) (types.Student, error) {
	var student types.Student

	err := m.students.FindOne(ctx, bson.M{"_id": oid}).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.Student{}, storage.ErrStudentNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("findOne: decode: %w", err)
	}

	return student, nil
}
