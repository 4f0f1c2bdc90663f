package course

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/educonnect/educonnect/core"
)

var ErrNotFound = errors.New("not found")

// PersistError is returned when the substrate rejected a collection write.
// The in-memory collection is left as it was before the failed operation.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string { return fmt.Sprintf("persisting %s: %v", e.Key, e.Err) }
func (e *PersistError) Unwrap() error { return e.Err }

type Options struct {
	IDs    core.IDGenerator
	Now    func() time.Time
	Logger core.Logger
}

// Store owns the course, assignment and submission collections and mirrors each of them,
// whole, to the substrate after every mutation.
type Store struct {
	kv  core.KVStore
	ids core.IDGenerator
	now func() time.Time
	log core.Logger

	mu          sync.RWMutex
	courses     []Course
	assignments []Assignment
	submissions []Submission

	events
}

// Open builds a Store and loads its collections from kv.
func Open(ctx context.Context, kv core.KVStore, opts Options) (*Store, error) {
	s := &Store{
		kv:  kv,
		ids: opts.IDs,
		now: opts.Now,
		log: opts.Logger,
	}
	if s.ids == nil {
		s.ids = core.UUIDGenerator{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = core.NopLogger{}
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory collections with what the substrate holds.
func (s *Store) Reload(ctx context.Context) error {
	courses, err := load[Course](ctx, s.kv, core.KeyCourses)
	if err != nil {
		return err
	}
	assignments, err := load[Assignment](ctx, s.kv, core.KeyAssignments)
	if err != nil {
		return err
	}
	submissions, err := load[Submission](ctx, s.kv, core.KeySubmissions)
	if err != nil {
		return err
	}
	for i := range courses {
		courses[i].EnrolledStudents = dedupe(courses[i].EnrolledStudents)
		if courses[i].Content == nil {
			courses[i].Content = []ContentItem{}
		}
	}

	s.mu.Lock()
	s.courses, s.assignments, s.submissions = courses, assignments, submissions
	s.mu.Unlock()

	s.log.Debug("store loaded", "courses", len(courses), "assignments", len(assignments), "submissions", len(submissions))
	return nil
}

// load decodes the collection stored under key. A missing key is an empty collection.
func load[T any](ctx context.Context, kv core.KVStore, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return []T{}, nil
		}
		return nil, errors.Wrapf(err, "loading %s", key)
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", key)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// write persists next under key and, once the substrate accepted it, makes it the current collection.
// s.mu must be held.
func write[T any](ctx context.Context, s *Store, key string, cur *[]T, next []T) error {
	data, err := json.Marshal(next)
	if err != nil {
		return &PersistError{Key: key, Err: err}
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		s.log.Error("persisting collection failed", "key", key, "error", err)
		return &PersistError{Key: key, Err: err}
	}
	*cur = next
	s.log.Debug("collection persisted", "key", key, "count", len(next))
	return nil
}

func (s *Store) timestamp() time.Time { return s.now().UTC() }

// Courses

func (s *Store) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	nc.Clean()
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}

	crs := Course{
		Title:            nc.Title,
		Description:      nc.Description,
		EducatorID:       nc.EducatorID,
		EducatorName:     nc.EducatorName,
		Duration:         nc.Duration,
		Level:            nc.Level,
		Category:         nc.Category,
		Thumbnail:        nc.Thumbnail,
		EnrolledStudents: []string{},
		Content:          append([]ContentItem{}, nc.Content...),
	}

	s.mu.Lock()
	crs.ID = s.ids.NewID()
	crs.CreatedAt = s.timestamp()
	next := make([]Course, 0, len(s.courses)+1)
	next = append(append(next, s.courses...), crs)
	err := write(ctx, s, core.KeyCourses, &s.courses, next)
	s.mu.Unlock()
	if err != nil {
		return Course{}, err
	}

	s.emit(ChangeEvent{Collection: core.KeyCourses, Op: OpCreated, ID: crs.ID})
	return crs.clone(), nil
}

// UpdateCourse merges the set fields of uc into the course. It reports false when no course has that id;
// the collection is still written back in that case.
func (s *Store) UpdateCourse(ctx context.Context, id string, uc UpdateCourse) (bool, error) {
	if err := uc.Validate(); err != nil {
		return false, err
	}
	return s.mutateCourse(ctx, id, OpUpdated, func(c Course) (Course, bool) {
		return uc.apply(c), true
	})
}

// DeleteCourse removes the course. Its assignments and submissions are kept.
func (s *Store) DeleteCourse(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	var found bool
	next := make([]Course, 0, len(s.courses))
	for _, c := range s.courses {
		if c.ID == id {
			found = true
			continue
		}
		next = append(next, c)
	}
	err := write(ctx, s, core.KeyCourses, &s.courses, next)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}

	if found {
		s.emit(ChangeEvent{Collection: core.KeyCourses, Op: OpDeleted, ID: id})
	}
	return found, nil
}

// EnrollInCourse adds studentID to the course's enrollment set. Enrolling twice is a no-op.
func (s *Store) EnrollInCourse(ctx context.Context, courseID, studentID string) (bool, error) {
	if studentID == "" {
		return false, core.NewValidationError(errors.New("student id is required"),
			core.FieldError{Field: "studentId", Error: requiredText})
	}
	return s.mutateCourse(ctx, courseID, OpEnrolled, func(c Course) (Course, bool) {
		if c.IsEnrolled(studentID) {
			return c, false
		}
		c.EnrolledStudents = append(append(make([]string, 0, len(c.EnrolledStudents)+1), c.EnrolledStudents...), studentID)
		return c, true
	})
}

func (s *Store) UnenrollFromCourse(ctx context.Context, courseID, studentID string) (bool, error) {
	return s.mutateCourse(ctx, courseID, OpUnenrolled, func(c Course) (Course, bool) {
		if !c.IsEnrolled(studentID) {
			return c, false
		}
		ids := make([]string, 0, len(c.EnrolledStudents)-1)
		for _, id := range c.EnrolledStudents {
			if id != studentID {
				ids = append(ids, id)
			}
		}
		c.EnrolledStudents = ids
		return c, true
	})
}

// mutateCourse rewrites the course with the given id through fn, which reports whether it changed anything.
func (s *Store) mutateCourse(ctx context.Context, id, op string, fn func(Course) (Course, bool)) (bool, error) {
	s.mu.Lock()
	var found, changed bool
	next := make([]Course, len(s.courses))
	copy(next, s.courses)
	for i, c := range next {
		if c.ID == id {
			found = true
			next[i], changed = fn(c)
			break
		}
	}
	err := write(ctx, s, core.KeyCourses, &s.courses, next)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}

	if changed {
		s.emit(ChangeEvent{Collection: core.KeyCourses, Op: op, ID: id})
	}
	return found, nil
}

// Assignments

// CreateAssignment does not check that the course exists.
func (s *Store) CreateAssignment(ctx context.Context, na NewAssignment) (Assignment, error) {
	na.Clean()
	if err := na.Validate(); err != nil {
		return Assignment{}, err
	}

	asgmt := Assignment{
		CourseID:    na.CourseID,
		Title:       na.Title,
		Description: na.Description,
		DueDate:     na.DueDate,
		MaxScore:    na.MaxScore,
		CreatedBy:   na.CreatedBy,
	}

	s.mu.Lock()
	asgmt.ID = s.ids.NewID()
	next := make([]Assignment, 0, len(s.assignments)+1)
	next = append(append(next, s.assignments...), asgmt)
	err := write(ctx, s, core.KeyAssignments, &s.assignments, next)
	s.mu.Unlock()
	if err != nil {
		return Assignment{}, err
	}

	s.emit(ChangeEvent{Collection: core.KeyAssignments, Op: OpCreated, ID: asgmt.ID})
	return asgmt, nil
}

// Submissions

// SubmitAssignment records new work. Several submissions by the same student for the same
// assignment are all kept.
func (s *Store) SubmitAssignment(ctx context.Context, ns NewSubmission) (Submission, error) {
	if err := ns.Validate(); err != nil {
		return Submission{}, err
	}

	sub := Submission{
		AssignmentID: ns.AssignmentID,
		StudentID:    ns.StudentID,
		StudentName:  ns.StudentName,
		Content:      ns.Content,
	}

	s.mu.Lock()
	sub.ID = s.ids.NewID()
	sub.SubmittedAt = s.timestamp()
	next := make([]Submission, 0, len(s.submissions)+1)
	next = append(append(next, s.submissions...), sub)
	err := write(ctx, s, core.KeySubmissions, &s.submissions, next)
	s.mu.Unlock()
	if err != nil {
		return Submission{}, err
	}

	s.emit(ChangeEvent{Collection: core.KeySubmissions, Op: OpCreated, ID: sub.ID})
	return sub, nil
}

// GradeSubmission sets grade and feedback, replacing any earlier grade.
// grade must be within [0, maxScore] of the submission's assignment; when the assignment
// no longer exists only the lower bound is checked.
func (s *Store) GradeSubmission(ctx context.Context, submissionID string, grade int, feedback string) (bool, error) {
	if grade < 0 {
		return false, core.NewValidationError(errors.New(gradeMinText),
			core.FieldError{Field: "grade", Error: gradeMinText})
	}

	s.mu.Lock()
	idx := -1
	for i, sub := range s.submissions {
		if sub.ID == submissionID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		if asgmt, ok := s.findAssignment(s.submissions[idx].AssignmentID); ok && grade > asgmt.MaxScore {
			s.mu.Unlock()
			msg := fmt.Sprintf(gradeRangeText, asgmt.MaxScore)
			return false, core.NewValidationError(errors.New(msg), core.FieldError{Field: "grade", Error: msg})
		}
	}

	next := make([]Submission, len(s.submissions))
	copy(next, s.submissions)
	if idx >= 0 {
		g, fb := grade, feedback
		next[idx].Grade = &g
		next[idx].Feedback = &fb
	}
	err := write(ctx, s, core.KeySubmissions, &s.submissions, next)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}

	if idx < 0 {
		return false, nil
	}
	s.emit(ChangeEvent{Collection: core.KeySubmissions, Op: OpGraded, ID: submissionID})
	return true, nil
}

// s.mu must be held.
func (s *Store) findAssignment(id string) (Assignment, bool) {
	for _, a := range s.assignments {
		if a.ID == id {
			return a, true
		}
	}
	return Assignment{}, false
}

// Snapshots

// Courses returns a copy of every course, in creation order.
func (s *Store) Courses() []Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCourses(s.courses)
}

func (s *Store) Assignments() []Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]Assignment, 0, len(s.assignments)), s.assignments...)
}

func (s *Store) Submissions() []Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSubmissions(s.submissions)
}

func (s *Store) GetCourse(id string) (Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.courses {
		if c.ID == id {
			return c.clone(), nil
		}
	}
	return Course{}, ErrNotFound
}

func (s *Store) GetAssignment(id string) (Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.findAssignment(id); ok {
		return a, nil
	}
	return Assignment{}, ErrNotFound
}

func (s *Store) GetSubmission(id string) (Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.submissions {
		if sub.ID == id {
			return sub.clone(), nil
		}
	}
	return Submission{}, ErrNotFound
}

func cloneCourses(courses []Course) []Course {
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.clone())
	}
	return out
}

func cloneSubmissions(subs []Submission) []Submission {
	out := make([]Submission, 0, len(subs))
	for _, sub := range subs {
		out = append(out, sub.clone())
	}
	return out
}
