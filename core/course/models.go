package course

import (
	"strings"
	"time"

	"github.com/educonnect/educonnect/core"
)

// Content item types
const (
	ContentVideo    = "video"
	ContentDocument = "document"
	ContentQuiz     = "quiz"
)

var ContentTypes = []string{ContentVideo, ContentDocument, ContentQuiz}

type ContentItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type" validate:"contenttype"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

type Course struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	EducatorID       string        `json:"educatorId"`
	EducatorName     string        `json:"educatorName"`
	Duration         string        `json:"duration"`
	Level            string        `json:"level"`
	Category         string        `json:"category"`
	Thumbnail        string        `json:"thumbnail"`
	EnrolledStudents []string      `json:"enrolledStudents"`
	Content          []ContentItem `json:"content"`
	CreatedAt        time.Time     `json:"createdAt"` // UTC
}

// IsEnrolled reports whether studentID is in the course's enrollment set.
func (c Course) IsEnrolled(studentID string) bool {
	for _, id := range c.EnrolledStudents {
		if id == studentID {
			return true
		}
	}
	return false
}

// clone returns a copy that shares no slices with c.
func (c Course) clone() Course {
	c.EnrolledStudents = append(make([]string, 0, len(c.EnrolledStudents)), c.EnrolledStudents...)
	c.Content = append(make([]ContentItem, 0, len(c.Content)), c.Content...)
	return c
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title        string        `json:"title" validate:"required,notblank"`
	Description  string        `json:"description" validate:"required,notblank"`
	Category     string        `json:"category" validate:"required,notblank"`
	Duration     string        `json:"duration" validate:"required,notblank"`
	Level        string        `json:"level" validate:"required,notblank"`
	Thumbnail    string        `json:"thumbnail" validate:"omitempty,url"`
	EducatorID   string        `json:"educatorId" validate:"required"`
	EducatorName string        `json:"educatorName" validate:"required"`
	Content      []ContentItem `json:"content" validate:"omitempty,dive"`
}

func (nc *NewCourse) Clean() {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.Category = core.CleanString(nc.Category)
	nc.Duration = core.CleanString(nc.Duration)
	nc.Level = core.CleanString(nc.Level)
	nc.Thumbnail = core.CleanString(nc.Thumbnail)
}

func (nc NewCourse) Validate() error { return core.Validate.Struct(nc) }

// UpdateCourse defines what information may be provided to modify an existing Course.
// Nil fields are left untouched. id, educatorId and createdAt can never change.
type UpdateCourse struct {
	Title            *string        `json:"title" validate:"omitempty,notblank"`
	Description      *string        `json:"description" validate:"omitempty,notblank"`
	Category         *string        `json:"category" validate:"omitempty,notblank"`
	Duration         *string        `json:"duration" validate:"omitempty,notblank"`
	Level            *string        `json:"level" validate:"omitempty,notblank"`
	Thumbnail        *string        `json:"thumbnail" validate:"omitempty"`
	EducatorName     *string        `json:"educatorName" validate:"omitempty,notblank"`
	EnrolledStudents []string       `json:"enrolledStudents"`
	Content          *[]ContentItem `json:"content" validate:"omitempty,dive"`
}

func (uc UpdateCourse) Validate() error { return core.Validate.Struct(uc) }

// apply merges the set fields of uc into c.
func (uc UpdateCourse) apply(c Course) Course {
	if uc.Title != nil {
		c.Title = *uc.Title
	}
	if uc.Description != nil {
		c.Description = *uc.Description
	}
	if uc.Category != nil {
		c.Category = *uc.Category
	}
	if uc.Duration != nil {
		c.Duration = *uc.Duration
	}
	if uc.Level != nil {
		c.Level = *uc.Level
	}
	if uc.Thumbnail != nil {
		c.Thumbnail = *uc.Thumbnail
	}
	if uc.EducatorName != nil {
		c.EducatorName = *uc.EducatorName
	}
	if uc.EnrolledStudents != nil {
		c.EnrolledStudents = dedupe(uc.EnrolledStudents)
	}
	if uc.Content != nil {
		c.Content = append(make([]ContentItem, 0, len(*uc.Content)), *uc.Content...)
	}
	return c
}

type Assignment struct {
	ID          string `json:"id"`
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	MaxScore    int    `json:"maxScore"`
	CreatedBy   string `json:"createdBy"`
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	CourseID    string `json:"courseId" validate:"required"`
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	DueDate     string `json:"dueDate"`
	MaxScore    int    `json:"maxScore" validate:"gt=0"`
	CreatedBy   string `json:"createdBy" validate:"required"`
}

func (na *NewAssignment) Clean() {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.DueDate = core.CleanString(na.DueDate)
}

func (na NewAssignment) Validate() error { return core.Validate.Struct(na) }

type Submission struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	StudentID    string    `json:"studentId"`
	StudentName  string    `json:"studentName"`
	Content      string    `json:"content"`
	SubmittedAt  time.Time `json:"submittedAt"` // UTC
	Grade        *int      `json:"grade,omitempty"`
	Feedback     *string   `json:"feedback,omitempty"`
}

func (s Submission) IsGraded() bool { return s.Grade != nil }

func (s Submission) clone() Submission {
	if s.Grade != nil {
		g := *s.Grade
		s.Grade = &g
	}
	if s.Feedback != nil {
		f := *s.Feedback
		s.Feedback = &f
	}
	return s
}

// NewSubmission contains information needed to submit work for an Assignment.
type NewSubmission struct {
	AssignmentID string `json:"assignmentId" validate:"required"`
	StudentID    string `json:"studentId" validate:"required"`
	StudentName  string `json:"studentName" validate:"required"`
	Content      string `json:"content" validate:"required,notblank"`
}

func (ns NewSubmission) Validate() error { return core.Validate.Struct(ns) }

// QueryFilter applies AND operation on its set fields.
// Search does a case-insensitive match on one of Course.Title, Course.Description or Course.Category.
type QueryFilter struct {
	Search     string
	Category   string
	Level      string
	EducatorID string
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = core.CleanString(qf.Category)
	qf.Level = core.CleanString(qf.Level)
}

func (qf QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Category == "" && qf.Level == "" && qf.EducatorID == ""
}

func (qf QueryFilter) match(c Course) bool {
	if qf.Search != "" &&
		!core.ContainsFold(c.Title, qf.Search) &&
		!core.ContainsFold(c.Description, qf.Search) &&
		!core.ContainsFold(c.Category, qf.Search) {
		return false
	}
	if qf.Category != "" && !strings.EqualFold(c.Category, qf.Category) {
		return false
	}
	if qf.Level != "" && !strings.EqualFold(c.Level, qf.Level) {
		return false
	}
	if qf.EducatorID != "" && c.EducatorID != qf.EducatorID {
		return false
	}
	return true
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
