package cmd

import (
	"fmt"
)

// Init creates a new page store
func Init(env *Env) {
	s := env.Store()
	if err := s.Init(); err != nil {
		HandleError(err)
	}

	fmt.Fprintf(env.Stdout, "Initialized %s\n", s.Path())
}
