package course

// GetEnrolledCourses returns the courses studentID is enrolled in, in creation order.
func (s *Store) GetEnrolledCourses(studentID string) []Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Course, 0)
	for _, c := range s.courses {
		if c.IsEnrolled(studentID) {
			out = append(out, c.clone())
		}
	}
	return out
}

// GetCoursesByEducator returns the courses owned by educatorID, in creation order.
func (s *Store) GetCoursesByEducator(educatorID string) []Course {
	return s.FilterCourses(QueryFilter{EducatorID: educatorID})
}

// FilterCourses returns the courses matching every set field of qf.
// An empty filter returns all courses.
func (s *Store) FilterCourses(qf QueryFilter) []Course {
	qf.Clean()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Course, 0)
	for _, c := range s.courses {
		if qf.match(c) {
			out = append(out, c.clone())
		}
	}
	return out
}

// StudentSubmission returns the latest submission of studentID for assignmentID.
func (s *Store) StudentSubmission(assignmentID, studentID string) (Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.submissions) - 1; i >= 0; i-- {
		sub := s.submissions[i]
		if sub.AssignmentID == assignmentID && sub.StudentID == studentID {
			return sub.clone(), nil
		}
	}
	return Submission{}, ErrNotFound
}

// AssignmentsForCourses keeps the assignments that belong to one of courses.
func AssignmentsForCourses(assignments []Assignment, courses []Course) []Assignment {
	ids := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		ids[c.ID] = struct{}{}
	}
	out := make([]Assignment, 0)
	for _, a := range assignments {
		if _, ok := ids[a.CourseID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// SubmissionsForAssignments keeps the submissions made for one of assignments.
func SubmissionsForAssignments(submissions []Submission, assignments []Assignment) []Submission {
	ids := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		ids[a.ID] = struct{}{}
	}
	out := make([]Submission, 0)
	for _, sub := range submissions {
		if _, ok := ids[sub.AssignmentID]; ok {
			out = append(out, sub)
		}
	}
	return out
}

// CompletionRatio is the share, in [0, 1], of the course's assignments studentID has submitted work for.
// It is 0 for a course without assignments.
func CompletionRatio(assignments []Assignment, submissions []Submission, courseID, studentID string) float64 {
	inCourse := make(map[string]struct{})
	for _, a := range assignments {
		if a.CourseID == courseID {
			inCourse[a.ID] = struct{}{}
		}
	}
	if len(inCourse) == 0 {
		return 0
	}

	done := make(map[string]struct{})
	for _, sub := range submissions {
		if sub.StudentID != studentID {
			continue
		}
		if _, ok := inCourse[sub.AssignmentID]; ok {
			done[sub.AssignmentID] = struct{}{}
		}
	}
	return float64(len(done)) / float64(len(inCourse))
}

type EducatorStats struct {
	Courses            int `json:"courses"`
	Students           int `json:"students"`
	Assignments        int `json:"assignments"`
	PendingSubmissions int `json:"pendingSubmissions"`
}

// EducatorSummary counts what an educator's dashboard shows.
// Students is the sum of enrollments over the educator's courses.
func EducatorSummary(courses []Course, assignments []Assignment, submissions []Submission, educatorID string) EducatorStats {
	var own []Course
	var stats EducatorStats
	for _, c := range courses {
		if c.EducatorID == educatorID {
			own = append(own, c)
			stats.Students += len(c.EnrolledStudents)
		}
	}
	stats.Courses = len(own)

	ownAssignments := AssignmentsForCourses(assignments, own)
	stats.Assignments = len(ownAssignments)
	for _, sub := range SubmissionsForAssignments(submissions, ownAssignments) {
		if !sub.IsGraded() {
			stats.PendingSubmissions++
		}
	}
	return stats
}

type CourseProgress struct {
	CourseID string  `json:"courseId"`
	Title    string  `json:"title"`
	Ratio    float64 `json:"ratio"`
}

type StudentStats struct {
	EnrolledCourses int              `json:"enrolledCourses"`
	Assignments     int              `json:"assignments"`
	Submissions     int              `json:"submissions"`
	AverageGrade    float64          `json:"averageGrade"`
	Progress        []CourseProgress `json:"progress"`
}

// StudentSummary counts what a student's dashboard shows.
// AverageGrade is taken over graded submissions only and is 0 when none is graded.
func StudentSummary(courses []Course, assignments []Assignment, submissions []Submission, studentID string) StudentStats {
	var enrolled []Course
	for _, c := range courses {
		if c.IsEnrolled(studentID) {
			enrolled = append(enrolled, c)
		}
	}
	stats := StudentStats{
		EnrolledCourses: len(enrolled),
		Progress:        make([]CourseProgress, 0, len(enrolled)),
	}

	var graded, total int
	for _, sub := range submissions {
		if sub.StudentID != studentID {
			continue
		}
		stats.Submissions++
		if sub.IsGraded() {
			graded++
			total += *sub.Grade
		}
	}
	if graded > 0 {
		stats.AverageGrade = float64(total) / float64(graded)
	}

	stats.Assignments = len(AssignmentsForCourses(assignments, enrolled))
	for _, c := range enrolled {
		stats.Progress = append(stats.Progress, CourseProgress{
			CourseID: c.ID,
			Title:    c.Title,
			Ratio:    CompletionRatio(assignments, submissions, c.ID, studentID),
		})
	}
	return stats
}

// EducatorSummary computes the dashboard counts of educatorID over the current collections.
func (s *Store) EducatorSummary(educatorID string) EducatorStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return EducatorSummary(s.courses, s.assignments, s.submissions, educatorID)
}

// StudentSummary computes the dashboard counts of studentID over the current collections.
func (s *Store) StudentSummary(studentID string) StudentStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StudentSummary(s.courses, s.assignments, s.submissions, studentID)
}
