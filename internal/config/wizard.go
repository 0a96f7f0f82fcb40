package config

import (
	"fmt"
	"os/exec"
	"strconv"

	"github.com/manifoldco/promptui"
)

// interpreterCandidates are checked on PATH to suggest a default interpreter.
var interpreterCandidates = []string{"python3", "python", "python3.12", "python3.11"}

// detectInterpreter returns the first interpreter candidate found on PATH.
func detectInterpreter() string {
	for _, name := range interpreterCandidates {
		if _, err := exec.LookPath(name); err == nil {
			return name
		}
	}
	return DefaultPython()
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to vecscope! Let's configure your setup.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Interpreter.
	suggested := detectInterpreter()
	pythonPrompt := promptui.Prompt{
		Label:   "Python interpreter (used to run database adapters)",
		Default: suggested,
	}
	python, err := pythonPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("interpreter selection: %w", err)
	}
	cfg.PythonPath = python

	if _, err := exec.LookPath(python); err != nil {
		fmt.Printf("Warning: %s was not found on PATH. Loads will fail until it is installed.\n", python)
	}

	// 2. Search depth.
	depthPrompt := promptui.Prompt{
		Label:   "Maximum directory search depth",
		Default: strconv.Itoa(DefaultMaxDepth),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return fmt.Errorf("must be a non-negative integer")
			}
			return nil
		},
	}
	depthStr, err := depthPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("depth selection: %w", err)
	}
	cfg.MaxDepth, _ = strconv.Atoi(depthStr)

	// 3. Strict validation.
	strictPrompt := promptui.Select{
		Label: "Validate adapter output shape (count and dimension consistency)",
		Items: []string{
			"lenient — accept whatever the adapter returns (default)",
			"strict  — reject records that disagree with the declared shape",
		},
	}
	strictIdx, _, err := strictPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("validation selection: %w", err)
	}
	cfg.Strict = strictIdx == 1

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
