package course

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestCompletionRatio(t *testing.T) {
	assignments := []Assignment{
		{ID: "a1", CourseID: "c1"},
		{ID: "a2", CourseID: "c1"},
		{ID: "a3", CourseID: "c1"},
		{ID: "a4", CourseID: "c1"},
		{ID: "a5", CourseID: "c2"},
	}
	submissions := []Submission{
		{ID: "1", AssignmentID: "a1", StudentID: "s1"},
		{ID: "2", AssignmentID: "a2", StudentID: "s1"},
		{ID: "3", AssignmentID: "a3", StudentID: "s1"},
		{ID: "4", AssignmentID: "a3", StudentID: "s1"}, // resubmission
		{ID: "5", AssignmentID: "a4", StudentID: "s2"},
		{ID: "6", AssignmentID: "a5", StudentID: "s1"},
	}

	tests := []struct {
		name      string
		courseID  string
		studentID string
		want      float64
	}{
		{name: "three of four", courseID: "c1", studentID: "s1", want: .75},
		{name: "other student", courseID: "c1", studentID: "s2", want: .25},
		{name: "no submissions", courseID: "c1", studentID: "s3", want: 0},
		{name: "no assignments", courseID: "c3", studentID: "s1", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionRatio(assignments, submissions, tt.courseID, tt.studentID); got != tt.want {
				t.Errorf("CompletionRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMembershipFilters(t *testing.T) {
	courses := []Course{{ID: "c1"}, {ID: "c3"}}
	assignments := []Assignment{{ID: "a1", CourseID: "c1"}, {ID: "a2", CourseID: "c2"}, {ID: "a3", CourseID: "c3"}}
	submissions := []Submission{{ID: "1", AssignmentID: "a3"}, {ID: "2", AssignmentID: "a2"}, {ID: "3", AssignmentID: "a1"}}

	gotA := AssignmentsForCourses(assignments, courses)
	assert.Equal(t, []Assignment{assignments[0], assignments[2]}, gotA)

	gotS := SubmissionsForAssignments(submissions, gotA)
	assert.Equal(t, []Submission{submissions[0], submissions[2]}, gotS)

	assert.Empty(t, AssignmentsForCourses(assignments, nil))
	assert.Empty(t, SubmissionsForAssignments(nil, gotA))
}

func TestSummaries(t *testing.T) {
	courses := []Course{
		{ID: "c1", EducatorID: "e1", EnrolledStudents: []string{"s1", "s2"}},
		{ID: "c2", EducatorID: "e1", EnrolledStudents: []string{"s1"}},
		{ID: "c3", EducatorID: "e2", EnrolledStudents: []string{"s2"}},
	}
	assignments := []Assignment{
		{ID: "a1", CourseID: "c1"},
		{ID: "a2", CourseID: "c1"},
		{ID: "a3", CourseID: "c3"},
	}
	submissions := []Submission{
		{ID: "1", AssignmentID: "a1", StudentID: "s1", Grade: intPtr(80)},
		{ID: "2", AssignmentID: "a2", StudentID: "s1", Grade: intPtr(90)},
		{ID: "3", AssignmentID: "a1", StudentID: "s2"},
		{ID: "4", AssignmentID: "a3", StudentID: "s2"},
	}

	assert.Equal(t, EducatorStats{Courses: 2, Students: 3, Assignments: 2, PendingSubmissions: 1},
		EducatorSummary(courses, assignments, submissions, "e1"))
	assert.Equal(t, EducatorStats{}, EducatorSummary(courses, assignments, submissions, "nobody"))

	got := StudentSummary(courses, assignments, submissions, "s1")
	assert.Equal(t, 2, got.EnrolledCourses)
	assert.Equal(t, 2, got.Assignments)
	assert.Equal(t, 2, got.Submissions)
	assert.Equal(t, 85.0, got.AverageGrade)
	assert.Equal(t, []CourseProgress{{CourseID: "c1", Ratio: 1}, {CourseID: "c2", Ratio: 0}}, got.Progress)

	got = StudentSummary(courses, assignments, submissions, "s2")
	assert.Equal(t, 0.0, got.AverageGrade)
	assert.Equal(t, []CourseProgress{{CourseID: "c1", Ratio: .5}, {CourseID: "c3", Ratio: 1}}, got.Progress)
}

func TestStore_FilterCourses(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t)

	for _, nc := range []NewCourse{
		{Title: "Intro to Web", Description: "HTML and CSS", Category: "Programming", Duration: "8 weeks", Level: "Beginner", EducatorID: "e1", EducatorName: "Ed"},
		{Title: "Advanced React", Description: "Hooks", Category: "Programming", Duration: "10 weeks", Level: "Advanced", EducatorID: "e1", EducatorName: "Ed"},
		{Title: "UI Fundamentals", Description: "Design principles", Category: "Design", Duration: "6 weeks", Level: "Intermediate", EducatorID: "e2", EducatorName: "Jo"},
	} {
		if _, err := s.CreateCourse(ctx, nc); err != nil {
			t.Fatalf("CreateCourse() failed: %v", err)
		}
	}

	titles := func(cs []Course) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.Title)
		}
		return out
	}

	tests := []struct {
		name string
		qf   QueryFilter
		want []string
	}{
		{name: "empty", qf: QueryFilter{}, want: []string{"Intro to Web", "Advanced React", "UI Fundamentals"}},
		{name: "search title", qf: QueryFilter{Search: "react"}, want: []string{"Advanced React"}},
		{name: "search description", qf: QueryFilter{Search: " css "}, want: []string{"Intro to Web"}},
		{name: "search category", qf: QueryFilter{Search: "DESIGN"}, want: []string{"UI Fundamentals"}},
		{name: "category", qf: QueryFilter{Category: "programming"}, want: []string{"Intro to Web", "Advanced React"}},
		{name: "level and educator", qf: QueryFilter{Level: "advanced", EducatorID: "e1"}, want: []string{"Advanced React"}},
		{name: "no match", qf: QueryFilter{Search: "rust"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(s.FilterCourses(tt.qf)))
		})
	}
}

func TestStore_StudentSubmission(t *testing.T) {
	s, _ := setup(t)
	asgmt := createAssignment(t, s, "c1", 10)
	submit(t, s, asgmt.ID, "s1")
	latest := submit(t, s, asgmt.ID, "s1")

	got, err := s.StudentSubmission(asgmt.ID, "s1")
	assert.NoError(t, err)
	assert.Equal(t, latest.ID, got.ID)

	_, err = s.StudentSubmission(asgmt.ID, "s2")
	assert.Equal(t, ErrNotFound, err)
}

func TestStore_Summaries(t *testing.T) {
	ctx := context.Background()
	s, _ := setup(t)
	crs := createCourse(t, s, "e1")
	_, _ = s.EnrollInCourse(ctx, crs.ID, "s1")
	a1 := createAssignment(t, s, crs.ID, 10)
	createAssignment(t, s, crs.ID, 10)
	sub := submit(t, s, a1.ID, "s1")
	_, _ = s.GradeSubmission(ctx, sub.ID, 8, "")

	assert.Equal(t, EducatorStats{Courses: 1, Students: 1, Assignments: 2}, s.EducatorSummary("e1"))

	got := s.StudentSummary("s1")
	assert.Equal(t, 8.0, got.AverageGrade)
	assert.Equal(t, []CourseProgress{{CourseID: crs.ID, Title: "T", Ratio: .5}}, got.Progress)
}
