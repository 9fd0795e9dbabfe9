/*
Package power implements the device power lifecycle.

	Off --toggle--> Locked --click--> Unlocked
	 ^                |  ^               |
	 +----toggle------+  +-----lock------+
	Locked/Unlocked --shutdown--> SystemMessage --2s--> Off
	Locked/Unlocked --restart---> SystemMessage --2s--> Booting --3s--> Locked

Holding the power button for PowerHoldDuration opens the power menu instead
of toggling the screen. Holding the lock screen for LockHoldDuration opens
the customize sheet and swallows the click that would have unlocked.
*/
package power
