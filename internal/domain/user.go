package domain

import (
	"fmt"
	"strings"
	"time"
)

// User es el registro de credenciales y perfil del estudiante.
// PasswordHash nunca se serializa hacia el cliente.
type User struct {
	ID                  string    `json:"id" bson:"_id"`
	Email               string    `json:"email" bson:"email"`
	PasswordHash        string    `json:"-" bson:"password_hash,omitempty"`
	FirstName           string    `json:"firstName" bson:"first_name"`
	LastName            string    `json:"lastName" bson:"last_name"`
	Age                 string    `json:"age,omitempty" bson:"age"`
	SchoolName          string    `json:"schoolName,omitempty" bson:"school_name"`
	Standard            string    `json:"standard,omitempty" bson:"standard"`
	Interests           string    `json:"interests,omitempty" bson:"interests"`
	AcademicPerformance string    `json:"academicPerformance,omitempty" bson:"academic_performance"`
	StudentName         string    `json:"studentName,omitempty" bson:"student_name"`
	AcademicInfo        string    `json:"academicInfo,omitempty" bson:"academic_info"`
	CreatedAt           time.Time `json:"createdAt" bson:"created_at"`
}

// UserSummary es la vista reducida que acompaña al token en signup/login.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       string `json:"age,omitempty"`
	Interests string `json:"interests,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Interests: u.Interests,
	}
}

// FullName une nombre y apellido ignorando partes vacias.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// DeriveAcademicInfo arma la descripcion academica a partir del grado y rendimiento.
func DeriveAcademicInfo(standard, performance string) string {
	performance = strings.TrimSpace(performance)
	if performance == "" {
		performance = "Not specified"
	}
	return fmt.Sprintf("%sth Grade - %s", strings.TrimSpace(standard), performance)
}
