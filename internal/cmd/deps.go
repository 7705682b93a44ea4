package cmd

import (
	"context"
	"os"
	"time"

	"github.com/salmonumbrella/menav-bookmarks/internal/server"
)

var (
	envGet  = os.Getenv
	nowFunc = time.Now
	// runServer blocks serving srv until ctx is done.
	runServer = func(ctx context.Context, srv *server.Server, addr string) error {
		return srv.Run(ctx, addr)
	}
)
