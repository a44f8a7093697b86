package main

import (
	"context"
	"os"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk/native"
)

func main() {
	cmd := newRootCommand(native.Load)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
