package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// EnvConfig passes the -config flag to extensions.
const EnvConfig = "CGT_CONFIG"

// RunExtension attempts to find and execute an external cgt-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "cgt-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv(os.Environ())

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the environment of extensions: env and the global flags.
func extensionEnv(env []string) []string {
	config := *configFile
	if config == "" {
		config = defaultConfigFile
	}
	return append(env, EnvConfig+"="+config)
}
