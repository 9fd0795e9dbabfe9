// Package render describes visual changes as events for the external render
// layer. The device emits one Event per visible change; sinks deliver them.
package render
