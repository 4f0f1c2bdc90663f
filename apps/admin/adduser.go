package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/educonnect/educonnect/core"
	"github.com/educonnect/educonnect/core/user"
)

// addUser creates a user.User
func (cli *commandLine) addUser(name, email, role, pwd string) error {
	usr, err := cli.usrRepo.CreateUser(context.Background(), user.NewUser{
		Name:     name,
		Email:    email,
		Role:     role,
		Password: pwd,
	})
	if err != nil {
		if msgs := core.ValidationMessages(err); msgs != nil {
			fields := make([]string, 0, len(msgs))
			for field := range msgs {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			var sb strings.Builder
			for _, field := range fields {
				fmt.Fprintf(&sb, "\n  %s: %s", field, msgs[field])
			}
			cli.logger.Warn("user rejected", "email", email, "fields", msgs)
			return fmt.Errorf("invalid user:%s", sb.String())
		}
		return err
	}
	cli.logger.Info("user created", usr.Identity())
	fmt.Fprintf(cli.out, "created %s %s (%s)\n", usr.Role, usr.ID, usr.Email)
	return nil
}
