package main

import (
	"context"
	"fmt"

	"github.com/educonnect/educonnect/core/seed"
)

// seed writes the sample data and reloads the store from it.
func (cli *commandLine) seed() error {
	ctx := context.Background()
	seeded, err := seed.SampleData(ctx, cli.kv, cli.now())
	if err != nil {
		return err
	}
	if !seeded {
		fmt.Fprintln(cli.out, "already seeded")
		return nil
	}
	cli.logger.Info("sample data seeded")
	fmt.Fprintln(cli.out, "sample data seeded")
	return cli.store.Reload(ctx)
}

func (cli *commandLine) clear() error {
	ctx := context.Background()
	if err := seed.ClearAll(ctx, cli.kv); err != nil {
		return err
	}
	cli.logger.Info("all data cleared")
	fmt.Fprintln(cli.out, "all data cleared")
	return cli.store.Reload(ctx)
}
