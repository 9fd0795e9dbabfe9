// Package scheduler provides the single logical thread the device core runs on.
//
// Every user event and every timer callback executes under one Loop, so core
// components never see concurrent mutation. Timers are held in Slots: a Slot
// owns at most one live timer, re-arming it cancels the previous one, and a
// generation check makes a superseded callback unobservable even when the
// underlying timer already fired.
//
// Clocks:
//   - RealClock: wall-clock timers backed by the time package
//   - FakeClock: manually advanced clock for deterministic tests
//
// Example Usage:
//
//	loop := scheduler.NewLoop(scheduler.RealClock{})
//	peek := loop.NewSlot("peek")
//	loop.Do(func() {
//	    peek.After(5*time.Second, clearPeek)
//	})
package scheduler
