// Package utils holds input validation shared by the catalog loader and
// the lock-screen profile store.
package utils
