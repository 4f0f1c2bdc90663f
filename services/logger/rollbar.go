package logsvc

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/educonnect/educonnect/core"
	"github.com/educonnect/educonnect/core/user"
)

type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.Log.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	if host, err := os.Hostname(); err == nil {
		rollbar.SetServerHost(host)
	}
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// prepare turns msg and key/value args into rollbar's msg | error, extras form.
// The first error value is reported as the error, the first user.Identity as the person.
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var (
		usrSet bool
		err    error
	)
	extras := make(map[string]interface{}, len(args)/2)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		// set acting User
		if id, ok := arg.(user.Identity); ok {
			if !usrSet { // only set one User
				rollbar.SetPerson(id.ID, id.Name, "")
				usrSet = true
			}
			continue
		}

		key := fmt.Sprint(arg)
		if i+1 >= len(args) {
			extras["extra"] = arg
			break
		}
		i++
		val := args[i]
		if e, ok := val.(error); ok && err == nil {
			err = e
		}
		if id, ok := val.(user.Identity); ok && !usrSet {
			rollbar.SetPerson(id.ID, id.Name, "")
			usrSet = true
		}
		extras[key] = val
	}
	if !usrSet {
		rollbar.ClearPerson()
	}

	newArgs := make([]interface{}, 0, 3)
	if err != nil {
		newArgs = append(newArgs, err)
		extras["message"] = msg
	} else {
		newArgs = append(newArgs, msg)
	}
	if len(extras) > 0 {
		newArgs = append(newArgs, extras)
	}
	return newArgs
}

func (l RollbarLogger) print(level, msg string, args []interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	for i := 0; i < len(args); i++ {
		if id, ok := args[i].(user.Identity); ok {
			fmt.Fprintf(&b, " user=%s", id.ID)
			continue
		}
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%+v", args[i], args[i+1])
			i++
		} else {
			fmt.Fprintf(&b, " %+v", args[i])
		}
	}
	l.std.Println(b.String())
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.print("DEBUG", msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.print("INFO", msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.print("WARN", msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.print("ERROR", msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}
