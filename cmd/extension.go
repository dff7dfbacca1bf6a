package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

const (
	EnvUser    = "ADVISOR_USER"
	EnvStore   = "ADVISOR_STORE"
	EnvDataDir = "ADVISOR_DATA_DIR"
	EnvVerbose = "ADVISOR_VERBOSE"
)

// extensionEnv returns the environment of an extension: the current one plus
// the effective global settings.
func extensionEnv() []string {
	c := Config()
	env := os.Environ()
	env = append(env, EnvUser+"="+c.User)
	env = append(env, EnvStore+"="+c.Store)
	env = append(env, EnvDataDir+"="+c.DataDir)
	env = append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
	return env
}

// RunExtension attempts to find and execute an external ias-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "ias-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
