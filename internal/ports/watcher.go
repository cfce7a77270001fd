package ports

// Watcher monitors a term list directory for changes so loaded matchers can be
// reset and lazily reload. The adapter (fsnotify) must filter out anything that
// is not a term list before invoking onChange. Only one Watch call should be
// active at a time.
type Watcher interface {
	// Watch starts monitoring dir. onChange is called with the absolute path
	// of each changed list. The callback may be invoked from any goroutine.
	// Returns an error if the directory doesn't exist or permissions are
	// insufficient.
	Watch(dir string, onChange func(path string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
