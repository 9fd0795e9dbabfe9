/*
Package lockscreen manages lock-screen customization: the typography preset,
background effect, orientation and widget row, plus named profiles.

Every successful Apply persists the whole merged config under the
lockScreenConfig key. Profiles are persisted together under
lockScreenProfiles as a JSON object keyed by name.

Partial updates merge at the top level only:

	// Only "music" stays active; the previous widget flags are dropped.
	m.Apply(ctx, lockscreen.Partial{ActiveWidgets: map[string]bool{"music": true}})
*/
package lockscreen
