// Package notification implements the notification shade list and the
// lock-screen peek, which shows the most recent post for PeekDuration.
package notification
