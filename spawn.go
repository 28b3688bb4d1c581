package wm

import (
	"log"
	"os/exec"
	"syscall"
)

// spawn forks, detaches into its own session, and execs cmd with no
// arguments. Orphaned children are reaped
// by the SIGCHLD handler installed once at startup (wire.WatchChildren),
// never by a blocking wait here.
func (s *State) spawn(cmd string) {
	c := exec.Command(cmd)
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := c.Start(); err != nil {
		log.Printf("spawn %s: %v", cmd, err)
		return
	}
	// Never wait on the child ourselves; the SIGCHLD handler reaps it.
	_ = c.Process.Release()
}
