package cmd

import (
	"fmt"

	"github.com/smira/commander"
)

// FatalError is type for panicking to abort execution with non-zero
// exit code and meaningful explanation
type FatalError struct {
	ReturnCode int
	Message    string
}

// Fatal panics and aborts execution with exit code 1 (2 for usage errors)
func Fatal(err error) {
	returnCode := 1
	if err == commander.ErrFlagError || err == commander.ErrCommandError {
		returnCode = 2
	}
	panic(&FatalError{ReturnCode: returnCode, Message: err.Error()})
}

// Run runs single command starting from root cmd with args, optionally initializing context
func Run(cmd *commander.Command, cmdArgs []string, initContext bool) (returnCode int) {
	defer func() {
		if r := recover(); r != nil {
			fatal, ok := r.(*FatalError)
			if !ok {
				panic(r)
			}
			fmt.Println("ERROR:", fatal.Message)
			returnCode = fatal.ReturnCode
		}
	}()

	returnCode = 0

	flags, args, err := cmd.ParseFlags(cmdArgs)
	if err != nil {
		Fatal(err)
	}

	if initContext {
		err = InitContext(flags, args)
		if err != nil {
			Fatal(err)
		}
	}

	err = cmd.Dispatch(args)
	if err != nil {
		Fatal(err)
	}

	return
}
