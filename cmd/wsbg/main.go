// Command wsbg paints a per-output, per-workspace background onto every
// output of a wlroots-based Wayland compositor, following sway's
// workspace-visibility changes over its IPC socket.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/friedelschoen/wsbg/internal/config"
	"github.com/friedelschoen/wsbg/internal/swayipc"
	"github.com/friedelschoen/wsbg/internal/wloutput"
	"golang.org/x/sys/unix"
)

func main() {
	opts, helpOrVersion, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if helpOrVersion {
		return
	}

	images := config.NewImageStore()
	visibility := &swayipc.Visibility{}

	mgr, err := wloutput.Connect("")
	if err != nil {
		log.Fatalf("wsbg: %v", err)
	}
	mgr.Resolve = func(out config.OutputRef, visibleWorkspace string) *config.ConfigSet {
		return config.Resolve(opts, images, out, visibleWorkspace)
	}
	mgr.VisibleWorkspace = func(outputName string) string {
		for _, e := range visibility.Entries() {
			if e.Output == outputName {
				return e.Workspace
			}
		}
		return ""
	}

	sway, err := connectSway()
	if err != nil {
		log.Printf("wsbg: sway IPC unavailable, workspace-aware backgrounds disabled: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	run(mgr, sway, visibility, images, sig)

	teardown(mgr, sway, images)
}

func connectSway() (*swayipc.Conn, error) {
	path, err := swayipc.SocketPath()
	if err != nil {
		return nil, err
	}
	conn, err := swayipc.Dial(path)
	if err != nil {
		return nil, err
	}
	if err := conn.Send(swayipc.TypeSubscribe, []byte(`["workspace"]`)); err != nil {
		conn.Close()
		return nil, err
	}
	if err := conn.Send(swayipc.TypeGetWorkspaces, nil); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// run interleaves Wayland dispatch with non-blocking sway IPC reads
// behind a single poll() (§4.I), rendering outputs whose buffer or
// resolved config changed, until a termination signal arrives. After each
// pass it unloads every decoded image surface.
func run(mgr *wloutput.Manager, sway *swayipc.Conn, visibility *swayipc.Visibility, images *config.ImageStore, sig <-chan os.Signal) {
	for {
		select {
		case <-sig:
			return
		default:
		}

		if err := mgr.Flush(); err != nil {
			log.Printf("wsbg: flush: %v", err)
			return
		}

		fds := []unix.PollFd{{Fd: int32(mgr.Fd()), Events: unix.POLLIN}}
		if sway != nil {
			fds = append(fds, unix.PollFd{Fd: int32(sway.Fd()), Events: unix.POLLIN})
		}

		n, err := unix.Poll(fds, 1000)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			log.Printf("wsbg: poll: %v", err)
			return
		}
		if n == 0 {
			continue
		}

		if fds[0].Revents&unix.POLLIN != 0 {
			if err := mgr.Dispatch(); err != nil {
				log.Printf("wsbg: wayland connection lost: %v", err)
				return
			}
		}

		if sway != nil && fds[1].Revents&unix.POLLIN != 0 {
			handleSwayEvents(sway, visibility, mgr)
		}

		for _, img := range images.Images() {
			img.Unload()
		}
	}
}

func handleSwayEvents(sway *swayipc.Conn, visibility *swayipc.Visibility, mgr *wloutput.Manager) {
	msgs, err := sway.Recv()
	if err != nil {
		log.Printf("wsbg: sway IPC: %v", err)
		return
	}
	for _, msg := range msgs {
		switch msg.Type {
		case swayipc.TypeGetWorkspaces:
			entries, err := swayipc.DecodeWorkspaces(msg.Payload)
			if err != nil {
				log.Printf("wsbg: %v", err)
				continue
			}
			changed := visibility.ApplySnapshot(entries)
			mgr.ReconcileVisibility(changed)
		case swayipc.EventWorkspace:
			change, current, err := swayipc.DecodeWorkspaceEvent(msg.Payload)
			if err != nil {
				log.Printf("wsbg: %v", err)
				continue
			}
			changed := visibility.ApplyEvent(change, current)
			mgr.ReconcileVisibility(changed)
		}
	}
}

// teardown releases resources in reverse dependency order: outputs
// (which hold buffer references) before the options/workspaces that
// named them, before the images those options referenced.
func teardown(mgr *wloutput.Manager, sway *swayipc.Conn, images *config.ImageStore) {
	if err := mgr.Close(); err != nil {
		log.Printf("wsbg: close wayland connection: %v", err)
	}
	if sway != nil {
		sway.Close()
	}
	for _, img := range images.Images() {
		img.Unload()
	}
}
