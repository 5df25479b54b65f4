package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"schoolreports/backend/internal/shared"
)

// Sample academic period and reference IDs used across the seed data.
const (
	ClassID1 = "class-7a"
	ClassID2 = "class-7b"

	MathID     = "subj-math"
	EnglishID  = "subj-english"
	ScienceID  = "subj-science"
	HistoryID  = "subj-history"
	StudentID1 = "student-001"
	StudentID2 = "student-002"
	StudentID3 = "student-003"
	StudentID4 = "student-004"
)

var termStart = time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)

// GradeSeed describes one grade entry to insert.
type GradeSeed struct {
	StudentID string
	SubjectID string
	ClassID   string
	Raw       float64
	Max       float64
	EntryType string
	DayOffset int
}

// AttendanceSeed describes one attendance entry to insert.
type AttendanceSeed struct {
	StudentID string
	ClassID   string
	Status    string
	DayOffset int
}

func main() {
	log.Println("INFO: Starting seeder...")

	shared.LoadEnv("")
	cfg, err := shared.LoadServiceConfig("seeder")
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to MongoDB: %v", err)
	}
	defer shared.DisconnectMongoDB(client)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	seedSubjects(ctx, db)
	seedEnrollments(ctx, db)
	seedGrades(ctx, db)
	seedAttendance(ctx, db)

	log.Println("INFO: Seeding complete.")
}

func seedSubjects(ctx context.Context, db *mongo.Database) {
	subjects := []shared.SubjectRef{
		{SubjectID: MathID, Name: "Mathematics", Code: "MATH7", CreditWeight: 3},
		{SubjectID: EnglishID, Name: "English", Code: "ENG7", CreditWeight: 2},
		{SubjectID: ScienceID, Name: "Science", Code: "SCI7", CreditWeight: 3},
		{SubjectID: HistoryID, Name: "History", Code: "HIS7", CreditWeight: 1},
	}

	col := db.Collection("subjects")
	for _, s := range subjects {
		upsert(ctx, col, s.SubjectID, s)
	}
	log.Printf("INFO: Seeded %d subjects", len(subjects))
}

func seedEnrollments(ctx context.Context, db *mongo.Database) {
	allSubjects := []string{MathID, EnglishID, ScienceID, HistoryID}
	enrollments := []shared.Enrollment{
		{ID: "enr-001", StudentID: StudentID1, ClassID: ClassID1, SubjectIDs: allSubjects, Status: shared.StatusEnrolled, EnrolledAt: termStart},
		{ID: "enr-002", StudentID: StudentID2, ClassID: ClassID1, SubjectIDs: allSubjects, Status: shared.StatusEnrolled, EnrolledAt: termStart},
		{ID: "enr-003", StudentID: StudentID3, ClassID: ClassID1, SubjectIDs: []string{MathID, EnglishID}, Status: shared.StatusEnrolled, EnrolledAt: termStart},
		{ID: "enr-004", StudentID: StudentID4, ClassID: ClassID2, SubjectIDs: allSubjects, Status: shared.StatusEnrolled, EnrolledAt: termStart},
	}

	col := db.Collection("enrollments")
	for _, e := range enrollments {
		upsert(ctx, col, e.ID, e)
	}
	log.Printf("INFO: Seeded %d enrollments", len(enrollments))
}

func seedGrades(ctx context.Context, db *mongo.Database) {
	seeds := []GradeSeed{
		{StudentID1, MathID, ClassID1, 45, 50, "quiz", 7},
		{StudentID1, MathID, ClassID1, 88, 100, "exam", 30},
		{StudentID1, EnglishID, ClassID1, 18, 20, "homework", 10},
		{StudentID1, ScienceID, ClassID1, 55, 50, "project", 21}, // extra credit
		{StudentID2, MathID, ClassID1, 30, 50, "quiz", 7},
		{StudentID2, MathID, ClassID1, 62, 100, "exam", 30},
		{StudentID2, EnglishID, ClassID1, 15, 20, "homework", 10},
		{StudentID3, MathID, ClassID1, 40, 50, "quiz", 7},
		{StudentID3, EnglishID, ClassID1, 12, 20, "homework", 10},
		{StudentID4, MathID, ClassID2, 48, 50, "quiz", 7},
		{StudentID4, ScienceID, ClassID2, 70, 100, "exam", 30},
	}

	col := db.Collection("grade_entries")
	for i, g := range seeds {
		entry := shared.GradeEntry{
			ID:        fmt.Sprintf("grade-%03d", i+1),
			StudentID: g.StudentID,
			SubjectID: g.SubjectID,
			ClassID:   g.ClassID,
			RawScore:  g.Raw,
			MaxScore:  g.Max,
			EntryType: g.EntryType,
			Date:      termStart.AddDate(0, 0, g.DayOffset),
			CreatedAt: time.Now(),
		}
		upsert(ctx, col, entry.ID, entry)
	}
	log.Printf("INFO: Seeded %d grade entries", len(seeds))
}

func seedAttendance(ctx context.Context, db *mongo.Database) {
	var seeds []AttendanceSeed
	// Four school weeks for class 7A; student-002 misses a few days.
	for day := 0; day < 20; day++ {
		offset := day + (day/5)*2 // skip weekends
		seeds = append(seeds, AttendanceSeed{StudentID1, ClassID1, shared.StatusPresent, offset})

		status := shared.StatusPresent
		switch day {
		case 3:
			status = shared.StatusAbsent
		case 8:
			status = shared.StatusLate
		case 15:
			status = shared.StatusExcused
		}
		seeds = append(seeds, AttendanceSeed{StudentID2, ClassID1, status, offset})
	}

	col := db.Collection("attendance_entries")
	for i, a := range seeds {
		entry := shared.AttendanceEntry{
			ID:        fmt.Sprintf("att-%03d", i+1),
			StudentID: a.StudentID,
			ClassID:   a.ClassID,
			Date:      termStart.AddDate(0, 0, a.DayOffset),
			Status:    a.Status,
		}
		upsert(ctx, col, entry.ID, entry)
	}
	log.Printf("INFO: Seeded %d attendance entries", len(seeds))
}

func upsert(ctx context.Context, col *mongo.Collection, id string, doc interface{}) {
	opts := options.Replace().SetUpsert(true)
	if _, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		log.Fatalf("FATAL: Failed to seed %s/%s: %v", col.Name(), id, err)
	}
}
