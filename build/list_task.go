package main

import (
	"fmt"

	"github.com/goyek/goyek/v2"
)

// List prints the registered tasks; it runs when no task is named.
var List = goyek.Define(goyek.Task{
	Name:  "list",
	Usage: "List all available tasks",
	Action: func(a *goyek.A) {
		out := a.Output()
		fmt.Fprintln(out, "Usage: go run ./build [flags] <task>...")
		fmt.Fprintln(out)
		for _, task := range goyek.Tasks() {
			fmt.Fprintf(out, "  %-16s %s\n", task.Name(), task.Usage())
		}
	},
})
