/*
Package navigation implements the app history and the screen-power state.

History is most-recent-last, capped at MaxHistory, and never holds the same
id twice in a row. Showing homeScreen resets it to a single entry. The
recentAppsView and allAppsView listings are pushed like apps so back works
from them, but they are skipped when popping and never appear in Recents.
*/
package navigation
