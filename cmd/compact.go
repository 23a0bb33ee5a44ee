package cmd

import (
	"fmt"
	"os"
)

// Compact compacts the store to reclaim unused space
func Compact(env *Env) {
	path := env.Config.StorePath

	info, err := os.Stat(path)
	if err != nil {
		HandleError(err)
	}
	sizeBefore := info.Size()

	if err := env.Store().Compact(); err != nil {
		HandleError(err)
	}

	info, err = os.Stat(path)
	if err != nil {
		HandleError(err)
	}

	fmt.Fprintf(env.Stdout, "Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(info.Size()))
}
