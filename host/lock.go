package host

import "sync"

// lockInst is the process-wide mutex serializing all foreign-runtime entry. It
// is lazily constructed so a package that never touches a foreign matrix
// never pays for it, and overridable via SetLock so an embedding application
// can install one shared instance across every tatamigo handle it owns (the
// "global mutex visibility" concern: in environments where per-translation
// -unit statics may not unify, a setter lets the application pick one).
var (
	lockMu   sync.Mutex
	lockInst sync.Locker
)

// SetLock installs l as the shared host lock for the whole process. It must
// be called before any Handle is constructed; changing it afterwards would
// let two extractors race on the foreign runtime.
func SetLock(l sync.Locker) {
	lockMu.Lock()
	defer lockMu.Unlock()
	lockInst = l
}

func currentLock() sync.Locker {
	lockMu.Lock()
	defer lockMu.Unlock()
	if lockInst == nil {
		lockInst = &sync.Mutex{}
	}
	return lockInst
}

// Serialize acquires the host lock, runs fn, and releases it even if fn
// panics. It is the only way the core is permitted to call into Foreign.
func Serialize(fn func() error) error {
	l := currentLock()
	l.Lock()
	defer l.Unlock()
	return fn()
}

// Release and Reacquire let the parallel driver hold the lock across a
// dispatch boundary: release it before fanning workers out, reacquire it (if
// the caller had held it) once they've joined. Workers themselves only ever
// touch the lock through Serialize.
func Release(held bool) {
	if !held {
		return
	}
	currentLock().Unlock()
}

// Reacquire undoes Release; held must be the same value passed to Release.
func Reacquire(held bool) {
	if !held {
		return
	}
	currentLock().Lock()
}
