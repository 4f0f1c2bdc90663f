package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/educonnect/educonnect/core"
	"github.com/educonnect/educonnect/core/course"
	"github.com/educonnect/educonnect/core/seed"
	"github.com/educonnect/educonnect/core/user"
	"github.com/educonnect/educonnect/storage/memkv"
)

var now = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T, seeded bool) (*commandLine, *bytes.Buffer) {
	ctx := context.Background()
	kv := memkv.Open()
	if seeded {
		if _, err := seed.SampleData(ctx, kv, now); err != nil {
			t.Fatalf("setup() failed: %v", err)
		}
	}
	ids := &core.SequenceGenerator{Prefix: "id"}
	store, err := course.Open(ctx, kv, course.Options{IDs: ids})
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	var out bytes.Buffer
	return &commandLine{
		kv:      kv,
		store:   store,
		usrRepo: user.NewRepository(kv, ids),
		logger:  core.NopLogger{},
		out:     &out,
		now:     func() time.Time { return now },
	}, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    []string
	extra      interface{}
}

type extra struct {
	pwd string
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantErrStr) {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func Test_commandLine_help(t *testing.T) {
	cli, out := setup(t, false)

	runCLITests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: []string{"Usage:"}},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "progress without student", args: []string{"progress"}, wantErr: errHelp},
		{name: "adduser without email", args: []string{"adduser", "-name", "Jo"}, wantErr: errHelp},
	})
}

func Test_commandLine_seedAndClear(t *testing.T) {
	cli, out := setup(t, false)

	runCLITests(t, cli, out, []cliTest{
		{name: "empty", args: []string{"courses"}, wantOut: []string{"no courses"}},
		{name: "seed", args: []string{"seed"}, wantOut: []string{"sample data seeded"}},
		{name: "seed again", args: []string{"seed"}, wantOut: []string{"already seeded"}},
		{name: "seeded courses", args: []string{"courses"}, wantOut: []string{
			"course1\tIntroduction to Web Development",
			"course2\tAdvanced React Development",
			"course3\tUI/UX Design Fundamentals",
		}},
		{name: "clear", args: []string{"clear"}, wantOut: []string{"all data cleared"}},
		{name: "cleared courses", args: []string{"courses"}, wantOut: []string{"no courses"}},
	})
	assert.Empty(t, cli.store.Courses())
}

func Test_commandLine_courses(t *testing.T) {
	cli, out := setup(t, true)

	runCLITests(t, cli, out, []cliTest{
		{name: "search", args: []string{"courses", "-search", "design"}, wantOut: []string{"course3"}},
		{name: "educator", args: []string{"courses", "-educator", "educator1"}, wantOut: []string{"course1", "course2", "course3"}},
		{name: "unknown educator", args: []string{"courses", "-educator", "nobody"}, wantOut: []string{"no courses"}},
	})

	out.Reset()
	_ = cli.run([]string{"admin", "courses", "-search", "react"})
	assert.NotContains(t, out.String(), "course1")
}

func Test_commandLine_progress(t *testing.T) {
	ctx := context.Background()
	cli, out := setup(t, true)
	store := cli.store

	if _, err := store.EnrollInCourse(ctx, "course1", "student1"); err != nil {
		t.Fatalf("EnrollInCourse() failed: %v", err)
	}
	var asgmts []course.Assignment
	for i := 0; i < 4; i++ {
		a, err := store.CreateAssignment(ctx, course.NewAssignment{
			CourseID: "course1", Title: "HW", Description: "Do it", MaxScore: 100, CreatedBy: "educator1",
		})
		if err != nil {
			t.Fatalf("CreateAssignment() failed: %v", err)
		}
		asgmts = append(asgmts, a)
	}
	for _, a := range asgmts[:3] {
		sub, err := store.SubmitAssignment(ctx, course.NewSubmission{
			AssignmentID: a.ID, StudentID: "student1", StudentName: "Alex Chen", Content: "done",
		})
		if err != nil {
			t.Fatalf("SubmitAssignment() failed: %v", err)
		}
		if _, err := store.GradeSubmission(ctx, sub.ID, 90, ""); err != nil {
			t.Fatalf("GradeSubmission() failed: %v", err)
		}
	}

	runCLITests(t, cli, out, []cliTest{
		{name: "student", args: []string{"progress", "-student", "student1"}, wantOut: []string{
			"enrolled: 1  assignments: 4  submissions: 3  average grade: 90.0",
			"course1\tIntroduction to Web Development\t75%",
		}},
		{name: "not enrolled", args: []string{"progress", "-student", "student2"}, wantOut: []string{"enrolled: 0"}},
	})
}

func Test_commandLine_addUser(t *testing.T) {
	cli, out := setup(t, true)

	runCLITests(t, cli, out, []cliTest{
		{name: "no password", args: []string{"adduser", "-name", "Jo Doe", "-email", "jo@test.cd"}, wantErr: errHelp},
		{name: "bad role", args: []string{"adduser", "-name", "Jo Doe", "-email", "jo@test.cd", "-role", "admin"}, extra: extra{pwd: "s3cure-pass"}, wantErrStr: "role: invalid role"},
		{name: "short password", args: []string{"adduser", "-name", "Jo Doe", "-email", "jo@test.cd"}, extra: extra{pwd: "short"}, wantErrStr: "password"},
		{name: "taken email", args: []string{"adduser", "-name", "Sarah", "-email", "SARAH@educonnect.com"}, extra: extra{pwd: "s3cure-pass"}, wantErrStr: "email: " + user.ErrEmailExists.Error()},
		{name: "student", args: []string{"adduser", "-name", "Jo Doe", "-email", "jo@test.cd"}, extra: extra{pwd: "s3cure-pass"}, wantOut: []string{"created student"}},
		{name: "educator", args: []string{"adduser", "-name", "Ed U", "-email", "ed@test.cd", "-role", "educator"}, extra: extra{pwd: "s3cure-pass"}, wantOut: []string{"created educator"}},
	})

	id, err := cli.usrRepo.Authenticate(context.Background(), "jo@test.cd", "s3cure-pass")
	assert.NoError(t, err)
	assert.Equal(t, "Jo Doe", id.Name)
}

func Test_commandLine_resetPassword(t *testing.T) {
	ctx := context.Background()
	cli, out := setup(t, true)

	usr, err := cli.usrRepo.GetUserByEmail(ctx, "alex@student.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() failed: %v", err)
	}

	runCLITests(t, cli, out, []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "alex@student.com"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "n3w-passw0rd"}, wantErr: user.ErrNotFound},
		{name: "weak password", args: []string{"resetpassword", "-email", "alex@student.com"}, extra: extra{pwd: "lol"}, wantErrStr: "password"},
		{name: "reset", args: []string{"resetpassword", "-email", "alex@student.com"}, extra: extra{pwd: "n3w-passw0rd"}},
	})

	refreshed, err := cli.usrRepo.GetUserByID(ctx, usr.ID)
	if err != nil {
		t.Fatalf("GetUserByID() failed: %v", err)
	}
	if bytes.Equal(refreshed.PasswordHash, usr.PasswordHash) {
		t.Error("failed to update new password")
	}
	_, err = cli.usrRepo.Authenticate(ctx, "alex@student.com", "n3w-passw0rd")
	assert.NoError(t, err)
}
