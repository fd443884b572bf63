package instance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseAndString(t *testing.T) {
	for _, line := range []string{"New", "Open /home/me/notes.txt", "Open /tmp/with space.txt"} {
		cmd, err := Parse(line)
		if err != nil {
			t.Fatalf("unexpected parse error for %q: %v", line, err)
		}
		if cmd.String() != line {
			t.Fatalf("unexpected wire form: %q", cmd.String())
		}
	}
	for _, line := range []string{"", "Open ", "Close x", "new"} {
		if _, err := Parse(line); !errors.Is(err, ErrUnknownCommand) {
			t.Fatalf("expected ErrUnknownCommand for %q, got %v", line, err)
		}
	}
}

func TestCommandsFromArgs(t *testing.T) {
	cmds, err := CommandsFromArgs(nil)
	if err != nil || len(cmds) != 1 || cmds[0].Kind != New {
		t.Fatalf("expected a single New command, got %+v %v", cmds, err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	cmds, err = CommandsFromArgs([]string{"a.txt", "/abs/b.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmds[0].Kind != Open || cmds[0].Path != filepath.Join(wd, "a.txt") {
		t.Fatalf("expected sender-side resolution, got %+v", cmds[0])
	}
	if !filepath.IsAbs(cmds[1].Path) {
		t.Fatalf("expected absolute path, got %q", cmds[1].Path)
	}
}

func TestAddressIsStablePerApp(t *testing.T) {
	if Address("/tmp", "plainpad") != Address("/tmp", "plainpad") {
		t.Fatalf("expected stable address")
	}
	if Address("/tmp", "plainpad") == Address("/tmp", "other") {
		t.Fatalf("expected distinct address per app id")
	}
}

func shortDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "pp")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestSendReachesPrimary(t *testing.T) {
	addr := Address(shortDir(t), "test")
	if err := Send(addr, []Command{{Kind: New}}); !errors.Is(err, ErrNoPrimary) {
		t.Fatalf("expected ErrNoPrimary before listening, got %v", err)
	}
	srv, err := Listen(addr)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer srv.Close()

	if _, err := Listen(addr); !errors.Is(err, ErrPrimaryRunning) {
		t.Fatalf("expected ErrPrimaryRunning, got %v", err)
	}

	want := []Command{{Kind: New}, {Kind: Open, Path: "/x/y.txt"}}
	if err := Send(addr, want); err != nil {
		t.Fatalf("send: %v", err)
	}
	for i, w := range want {
		select {
		case got := <-srv.Commands():
			if got != w {
				t.Fatalf("unexpected command %d: %+v", i, got)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for command %d", i)
		}
	}
}

func TestListenReplacesStaleSocket(t *testing.T) {
	addr := Address(shortDir(t), "stale")
	if err := os.WriteFile(addr, nil, 0o600); err != nil {
		t.Fatalf("seed stale file: %v", err)
	}
	srv, err := Listen(addr)
	if err != nil {
		t.Fatalf("expected stale socket to be replaced: %v", err)
	}
	if err := srv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(addr); !os.IsNotExist(err) {
		t.Fatalf("expected socket removed on close, got %v", err)
	}
}
