/*
Package device assembles the handset from its domain managers and exposes
one concurrency-safe API over them.

All state lives on a single scheduler.Loop. Exported methods enter the loop
with Do, timers fire on it, and assistant replies re-enter it when their
goroutine completes, so observers never see a half-applied transition.

Usage:

	d, err := device.New(device.Options{Store: store, AI: client, Sink: hub})
	if err != nil {
		return err
	}
	defer d.Close()

	d.Start(ctx)
	d.LockClick(false)
	d.ShowApp("notes")
*/
package device
