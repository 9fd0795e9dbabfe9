/*
Package resilience provides a circuit breaker for calls to remote services.

The assistant backends are the only remote dependency of the device. When
they fail repeatedly the breaker opens and further requests fail fast with
ErrCircuitOpen until Timeout elapses; a single trial request then decides
whether to close again.

	Closed --[failures]-> Open --[timeout]-> Half-Open --[success]-> Closed
	                                             |
	                                         [failure]
	                                             v
	                                           Open

Usage:

	breaker := resilience.New("ai-chat", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
	})

	reply, err := resilience.Call(ctx, breaker, func(ctx context.Context) (string, error) {
		return client.Chat(ctx, prompt)
	})

Cancellation of the caller's context does not count as an upstream failure.
*/
package resilience
