package main

import (
	"fmt"
	"math"

	"github.com/educonnect/educonnect/core/course"
)

func (cli *commandLine) listCourses(qf course.QueryFilter) error {
	courses := cli.store.FilterCourses(qf)
	if len(courses) == 0 {
		fmt.Fprintln(cli.out, "no courses")
		return nil
	}
	for _, c := range courses {
		fmt.Fprintf(cli.out, "%s\t%s\t%s\t%s\t%s\t%d students\n",
			c.ID, c.Title, c.Category, c.Level, c.EducatorName, len(c.EnrolledStudents))
	}
	return nil
}

func (cli *commandLine) progress(studentID string) error {
	stats := cli.store.StudentSummary(studentID)
	fmt.Fprintf(cli.out, "enrolled: %d  assignments: %d  submissions: %d  average grade: %.1f\n",
		stats.EnrolledCourses, stats.Assignments, stats.Submissions, stats.AverageGrade)
	for _, p := range stats.Progress {
		fmt.Fprintf(cli.out, "%s\t%s\t%d%%\n", p.CourseID, p.Title, int(math.Round(p.Ratio*100)))
	}
	return nil
}
