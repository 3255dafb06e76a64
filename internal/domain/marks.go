package domain

import "time"

const DefaultTotalMarks = 100

type SubjectMark struct {
	SubjectName string  `json:"subjectName" bson:"subject_name"`
	Marks       float64 `json:"marks" bson:"marks"`
	TotalMarks  float64 `json:"totalMarks" bson:"total_marks"`
}

// MarksEntry agrupa las notas enviadas por un usuario en una sola carga.
type MarksEntry struct {
	ID        string        `json:"id" bson:"_id"`
	UserID    string        `json:"userId" bson:"user_id"`
	Subjects  []SubjectMark `json:"subjects" bson:"subjects"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}
