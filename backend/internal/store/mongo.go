package store

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"schoolreports/backend/internal/shared"
)

// Collection names owned by the administration side of the system.
const (
	colGradeEntries      = "grade_entries"
	colAttendanceEntries = "attendance_entries"
	colEnrollments       = "enrollments"
	colSubjects          = "subjects"
)

// Mongo implements the reader interfaces on top of MongoDB.
type Mongo struct {
	gradesCol      *mongo.Collection
	attendanceCol  *mongo.Collection
	enrollmentsCol *mongo.Collection
	subjectsCol    *mongo.Collection
}

// NewMongo creates a Mongo store bound to the given database.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		gradesCol:      db.Collection(colGradeEntries),
		attendanceCol:  db.Collection(colAttendanceEntries),
		enrollmentsCol: db.Collection(colEnrollments),
		subjectsCol:    db.Collection(colSubjects),
	}
}

// ReadGradeEntries returns grade entries matching the filter, oldest first.
func (m *Mongo) ReadGradeEntries(ctx context.Context, f shared.Filter) ([]shared.GradeEntry, error) {
	filter := bson.M{}
	if f.StudentID != "" {
		filter["student_id"] = f.StudentID
	}
	if f.ClassID != "" {
		filter["class_id"] = f.ClassID
	}
	if f.SubjectID != "" {
		filter["subject_id"] = f.SubjectID
	}
	if dateFilter := dateRange(f.Period); dateFilter != nil {
		filter["date"] = dateFilter
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := m.gradesCol.Find(ctx, filter, findOptions)
	if err != nil {
		log.Printf("Error querying grade entries: %v", err)
		return nil, status.Error(codes.Internal, "failed to read grade entries")
	}
	defer cursor.Close(ctx)

	var entries []shared.GradeEntry
	if err := cursor.All(ctx, &entries); err != nil {
		log.Printf("Error decoding grade entries: %v", err)
		return nil, status.Error(codes.Internal, "failed to decode grade entries")
	}
	return entries, nil
}

// ReadAttendanceEntries returns attendance entries matching the filter,
// oldest first.
func (m *Mongo) ReadAttendanceEntries(ctx context.Context, f shared.Filter) ([]shared.AttendanceEntry, error) {
	filter := bson.M{}
	if f.StudentID != "" {
		filter["student_id"] = f.StudentID
	}
	if f.ClassID != "" {
		filter["class_id"] = f.ClassID
	}
	if dateFilter := dateRange(f.Period); dateFilter != nil {
		filter["date"] = dateFilter
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := m.attendanceCol.Find(ctx, filter, findOptions)
	if err != nil {
		log.Printf("Error querying attendance entries: %v", err)
		return nil, status.Error(codes.Internal, "failed to read attendance entries")
	}
	defer cursor.Close(ctx)

	var entries []shared.AttendanceEntry
	if err := cursor.All(ctx, &entries); err != nil {
		log.Printf("Error decoding attendance entries: %v", err)
		return nil, status.Error(codes.Internal, "failed to decode attendance entries")
	}
	return entries, nil
}

// EnrolledSubjects resolves the subjects a student takes in a class. The
// period parameter is accepted for interface symmetry; enrollment records
// are not themselves date-scoped in the directory schema.
func (m *Mongo) EnrolledSubjects(ctx context.Context, studentID, classID string, period shared.Period) ([]shared.SubjectRef, error) {
	var enrollment shared.Enrollment
	err := m.enrollmentsCol.FindOne(ctx, bson.M{
		"student_id": studentID,
		"class_id":   classID,
		"status":     shared.StatusEnrolled,
	}).Decode(&enrollment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, status.Errorf(codes.NotFound, "no enrollment for student %s in class %s", studentID, classID)
		}
		log.Printf("Error finding enrollment for student %s: %v", studentID, err)
		return nil, status.Error(codes.Internal, "failed to read enrollment")
	}

	if len(enrollment.SubjectIDs) == 0 {
		return []shared.SubjectRef{}, nil
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := m.subjectsCol.Find(ctx, bson.M{"_id": bson.M{"$in": enrollment.SubjectIDs}}, findOptions)
	if err != nil {
		log.Printf("Error querying subjects: %v", err)
		return nil, status.Error(codes.Internal, "failed to read subjects")
	}
	defer cursor.Close(ctx)

	var subjects []shared.SubjectRef
	if err := cursor.All(ctx, &subjects); err != nil {
		log.Printf("Error decoding subjects: %v", err)
		return nil, status.Error(codes.Internal, "failed to decode subjects")
	}
	return subjects, nil
}

// dateRange builds the inclusive BSON date filter for a period, or nil when
// the period is unbounded.
func dateRange(p shared.Period) bson.M {
	if p.IsZero() {
		return nil
	}
	filter := bson.M{}
	if !p.Start.IsZero() {
		filter["$gte"] = p.Start
	}
	if !p.End.IsZero() {
		filter["$lte"] = p.End
	}
	return filter
}
