package models

import (
	"sort"
	"time"

	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
)

// Subject is the root of the Subject -> Unit -> Lecture -> Lesson hierarchy
type Subject struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	StudentYearID string    `json:"studentYearId,omitempty"`
	Image         *string   `json:"image,omitempty"`
	Price         float64   `json:"price"`
	Order         int       `json:"order"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Unit belongs to a Subject
type Unit struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subjectId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"isActive"`
	Lectures    []Lecture `json:"lectures,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Lecture belongs to a Unit
type Lecture struct {
	ID          string    `json:"id"`
	UnitID      string    `json:"unitId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"isActive"`
	Lessons     []Lesson  `json:"lessons,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Lesson belongs to a Lecture
type Lesson struct {
	ID          string           `json:"id"`
	LectureID   string           `json:"lectureId"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Type        enums.LessonType `json:"type"`
	VideoURL    string           `json:"videoUrl,omitempty"`
	DocumentURL string           `json:"documentUrl,omitempty"`
	Duration    int              `json:"duration"`
	Order       int              `json:"order"`
	IsFree      bool             `json:"isFree"`
	Price       float64          `json:"price"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// SortUnitsByOrder sorts units by their order field in place. Ties keep
// their backend order; duplicate order values are not rejected.
func SortUnitsByOrder(units []Unit) {
	sort.SliceStable(units, func(i, j int) bool { return units[i].Order < units[j].Order })
}

// SortLessonsByOrder sorts lessons by their order field in place
func SortLessonsByOrder(lessons []Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })
}

// SortStudentYearsByOrder sorts student years by their order field in place
func SortStudentYearsByOrder(years []StudentYear) {
	sort.SliceStable(years, func(i, j int) bool { return years[i].Order < years[j].Order })
}
