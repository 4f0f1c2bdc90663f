package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/educonnect/educonnect/core"
	"github.com/educonnect/educonnect/core/course"
	"github.com/educonnect/educonnect/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	kv      core.KVStore
	store   *course.Store
	usrRepo *user.Repository
	logger  core.Logger
	out     io.Writer
	now     func() time.Time
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  seed - write the sample users and courses unless already seeded")
	fmt.Fprintln(cli.out, "  clear - remove all stored data, the seeded flag included")
	fmt.Fprintln(cli.out, "  courses [-search TEXT] [-educator ID] - list courses")
	fmt.Fprintln(cli.out, "  progress -student ID - show a student's course progress")
	fmt.Fprintln(cli.out, "  adduser -name NAME -email EMAIL -role educator|student - create a user")
	fmt.Fprintln(cli.out, "  resetpassword -email EMAIL - reset user's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	coursesCmd := flag.NewFlagSet("courses", flag.ExitOnError)
	coursesSearch := coursesCmd.String("search", "", "Case-insensitive text to look for in title, description or category.")
	coursesEducator := coursesCmd.String("educator", "", "Only list courses of this educator id.")

	progressCmd := flag.NewFlagSet("progress", flag.ExitOnError)
	progressStudent := progressCmd.String("student", "", "The student's id.")

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserRole := addUserCmd.String("role", user.RoleStudent, "educator or student.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "clear":
		return cli.clear()
	case "courses":
		if err := coursesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listCourses(course.QueryFilter{Search: *coursesSearch, EducatorID: *coursesEducator})
	case "progress":
		if err := progressCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *progressStudent == "" {
			progressCmd.Usage()
			return errHelp
		}
		return cli.progress(*progressStudent)
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserName == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserEmail, *addUserRole, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
