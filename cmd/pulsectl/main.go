package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &cli{}
	err := newRootCmd(c).ExecuteContext(ctx)
	if cerr := c.close(); cerr != nil {
		fmt.Fprintln(os.Stderr, "closing entry store:", cerr)
		if err == nil {
			err = cerr
		}
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}
