package zoomsdk

import (
	"runtime"
	"sync"

	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
)

// OSThread runs closures on one dedicated, locked OS thread. The native
// engine expects every call to come from the thread that initialized it.
type OSThread struct {
	commands chan func()
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startOne sync.Once
}

// NewOSThread creates a thread runner. Call Start before Execute.
func NewOSThread() *OSThread {
	return &OSThread{
		commands: make(chan func(), 10),
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start launches the locked goroutine. Calling it again is a no-op.
func (t *OSThread) Start() {
	t.startOne.Do(func() {
		go t.loop()
	})
}

func (t *OSThread) loop() {
	defer close(t.exited)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log.Debug("OS thread started and locked")

	for {
		select {
		case cmd := <-t.commands:
			cmd()
		case <-t.done:
			log.Debug("OS thread stopping")
			return
		}
	}
}

// Execute runs fn on the locked thread and waits for it to return.
// Work queued when the thread stops is not run and reports ErrThreadStopped.
func (t *OSThread) Execute(fn func()) error {
	select {
	case <-t.done:
		return ErrThreadStopped
	default:
	}

	finished := make(chan struct{})
	cmd := func() {
		defer close(finished)
		fn()
	}

	select {
	case t.commands <- cmd:
	case <-t.done:
		return ErrThreadStopped
	}

	select {
	case <-finished:
		return nil
	case <-t.exited:
		// The loop runs commands inline, so an in-flight fn completed
		// before the loop returned.
		select {
		case <-finished:
			return nil
		default:
			return ErrThreadStopped
		}
	}
}

// Stop terminates the thread. Safe to call more than once.
func (t *OSThread) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
	})
}
