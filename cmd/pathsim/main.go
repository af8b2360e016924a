// Command pathsim runs grid exploration simulations headless or serves them
// over HTTP.
//
//	pathsim run --map maze.txt --radius 4 --render
//	pathsim serve --addr :8080
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "pathsim:", err)
		stop()
		os.Exit(1)
	}
}
