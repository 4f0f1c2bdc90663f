package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/educonnect/educonnect/core"
	"github.com/educonnect/educonnect/core/course"
	"github.com/educonnect/educonnect/core/seed"
	"github.com/educonnect/educonnect/core/user"
	logsvc "github.com/educonnect/educonnect/services/logger"
	"github.com/educonnect/educonnect/storage"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx := context.Background()

	wd, err := os.Getwd()
	if err != nil {
		log.Println(err)
		return 1
	}
	conf, err := core.LoadConfig(wd)
	if err != nil {
		log.Println(err)
		return 1
	}

	logger, err := logsvc.New(conf)
	if err != nil {
		log.Println(err)
		return 1
	}
	if zl, ok := logger.(*logsvc.ZapLogger); ok {
		defer zl.Sync()
	}

	// set up the substrate
	kv, err := storage.OpenKV(ctx, conf.Storage)
	if err != nil {
		logger.Error("opening storage failed", "driver", conf.Storage.Driver, "error", err)
		return 1
	}
	defer kv.Close()

	args := os.Args
	// seed and clear manage the flag themselves
	if conf.SeedOnStart && (len(args) < 2 || (args[1] != "seed" && args[1] != "clear")) {
		if _, err := seed.SampleData(ctx, kv, time.Now()); err != nil {
			logger.Error("seeding failed", "error", err)
			return 1
		}
	}

	ids := core.NewIDGenerator(conf.IDScheme)
	store, err := course.Open(ctx, kv, course.Options{IDs: ids, Logger: logger})
	if err != nil {
		logger.Error("loading store failed", "error", err)
		return 1
	}

	// start CLI
	cli := commandLine{
		kv:      kv,
		store:   store,
		usrRepo: user.NewRepository(kv, ids),
		logger:  logger,
		out:     os.Stdout,
		now:     time.Now,
	}
	if err := cli.run(args); err != nil {
		if err != errHelp {
			logger.Error("command failed", "command", args[1], "error", err)
		}
		return 1
	}
	return 0
}
