package main

import (
	"fmt"
	"os"

	"github.com/atelierhq/atelier/internal/state"
	"github.com/atelierhq/atelier/pkg/cmd/root"
)

func main() {
	s, err := state.NewState(os.Getenv("ATELIER_WORKSPACE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer s.Close()

	cmd, err := root.NewCmdRoot(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
