// Package workers holds the app's background loops. The session purge
// worker is the only one today; the Workers aggregate keeps main
// indifferent to how many there are.
package workers

// Worker is a background loop that can be started. Run must not block:
// implementations launch their loop on a goroutine and return, and stop
// when the context they were built around is cancelled.
type Worker interface {
	Run()
}
