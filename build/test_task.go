package main

import (
	"os"
	"os/exec"

	"github.com/goyek/goyek/v2"
)

// Vet runs go vet over the module
var Vet = goyek.Define(goyek.Task{
	Name:  "vet",
	Usage: "Run go vet on all packages",
	Action: func(a *goyek.A) {
		runGo(a, "vet", "./...")
	},
})

// Test runs the unit tests
var Test = goyek.Define(goyek.Task{
	Name:  "test",
	Usage: "Run all tests (use -run to filter, -test-verbose for verbose output)",
	Deps:  goyek.Deps{Vet},
	Action: func(a *goyek.A) {
		args := []string{"test"}
		if *testVerbose {
			args = append(args, "-v")
		}
		if *testRun != "" {
			args = append(args, "-run", *testRun)
		}
		args = append(args, "./...")
		runGo(a, args...)
	},
})

func runGo(a *goyek.A, args ...string) {
	a.Logf("go %v", args)
	cmd := exec.CommandContext(a.Context(), "go", args...)
	cmd.Dir = moduleRoot(a)
	cmd.Stdout = a.Output()
	cmd.Stderr = a.Output()
	cmd.Env = os.Environ()
	if err := cmd.Run(); err != nil {
		a.Fatalf("go %s failed: %v", args[0], err)
	}
}
