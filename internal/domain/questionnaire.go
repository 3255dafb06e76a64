package domain

import "time"

// Questionnaire guarda las respuestas de evaluacion junto a un resumen del estudiante.
type Questionnaire struct {
	ID           string         `json:"id" bson:"_id"`
	UserID       string         `json:"userId" bson:"user_id"`
	StudentName  string         `json:"studentName" bson:"student_name"`
	Age          string         `json:"age" bson:"age"`
	AcademicInfo string         `json:"academicInfo" bson:"academic_info"`
	Interests    string         `json:"interests" bson:"interests"`
	Answers      map[string]any `json:"answers" bson:"answers"`
	CreatedAt    time.Time      `json:"createdAt" bson:"created_at"`
}
