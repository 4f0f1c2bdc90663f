package main

import (
	"context"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	usr, err := cli.usrRepo.ResetPassword(context.Background(), email, pwd)
	if err != nil {
		return err
	}
	cli.logger.Info("password reset", usr.Identity())
	return nil
}
