package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"plainpad/internal/app"
	"plainpad/internal/instance"
	"plainpad/internal/platform"
	"plainpad/internal/platform/desktop"
	"plainpad/internal/prefs"
	"plainpad/internal/session"
)

const appID = "plainpad"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", app.Name, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmds, err := instance.CommandsFromArgs(args)
	if err != nil {
		return err
	}

	addr := instance.Address(os.TempDir(), appID)
	if err := instance.Send(addr, cmds); err == nil {
		return nil
	}
	server, err := instance.Listen(addr)
	if errors.Is(err, instance.ErrPrimaryRunning) {
		// another primary won the race
		return instance.Send(addr, cmds)
	}
	if err != nil {
		return err
	}
	defer server.Close()

	prefsPath := prefs.DefaultPath()
	p := prefs.Default()
	if !p.Load(prefsPath) {
		log.Printf("plainpad: using default preferences")
	}

	backend := desktop.New()
	s := session.New(session.Config{
		Prefs:   p,
		Files:   backend.Files(),
		Dialogs: backend.Dialogs(),
	})
	for _, cmd := range cmds {
		if err := s.Dispatch(cmd); err != nil {
			s.Report(err)
		}
	}
	if len(s.Windows()) == 0 {
		s.NewWindow()
	}

	a := app.New(app.Config{
		Session:    s,
		Appearance: backend.Appearance(),
		Commands:   server.Commands(),
	})
	runErr := a.Run(platform.WindowConfig{
		Title:       app.Name,
		WidthPx:     1280,
		HeightPx:    800,
		MinWidthPx:  640,
		MinHeightPx: 480,
	})
	if err := p.Save(prefsPath); err != nil {
		log.Printf("plainpad: save preferences: %v", err)
	}
	return runErr
}
