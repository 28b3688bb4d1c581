package wire

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// WatchChildren installs a SIGCHLD handler that reaps every exited
// child with a non-blocking Wait4 loop. It touches no compositor state,
// only the process table, so running the reap loop on its own
// goroutine does not reintroduce any concurrency concern for
// compositor logic proper.
func WatchChildren() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGCHLD)
	go func() {
		for range ch {
			reapAll()
		}
	}()
}

func reapAll() {
	var ws unix.WaitStatus
	for {
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, nil)
		if pid <= 0 || err != nil {
			return
		}
	}
}
