// Package server assembles the PocketOS process: settings store, app
// catalog, assistant client, device, render stream and HTTP API.
//
//	srv, err := server.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//	return srv.Run(ctx)
package server
