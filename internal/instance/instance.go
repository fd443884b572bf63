package instance

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/blake2b"
)

var (
	ErrNoPrimary      = errors.New("instance: no primary running")
	ErrPrimaryRunning = errors.New("instance: primary already running")
)

// Address returns the socket path shared by every process of one user and
// application id.
func Address(dir, appID string) string {
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME")
	}
	sum := blake2b.Sum256([]byte(appID + "\x00" + user))
	return filepath.Join(dir, "plainpad-"+hex.EncodeToString(sum[:8])+".sock")
}

// Send delivers cmds to the primary at addr.
func Send(addr string, cmds []Command) error {
	conn, err := net.Dial("unix", addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoPrimary, err)
	}
	defer conn.Close()
	w := bufio.NewWriter(conn)
	for _, cmd := range cmds {
		if _, err := w.WriteString(cmd.String() + "\n"); err != nil {
			return fmt.Errorf("send %s: %w", cmd, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// Server accepts commands from secondary processes. It never touches editor
// state; received commands are queued on Commands for the UI loop.
type Server struct {
	ln       net.Listener
	addr     string
	commands chan Command
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// Listen claims addr. A leftover socket with nobody behind it is replaced.
func Listen(addr string) (*Server, error) {
	ln, err := net.Listen("unix", addr)
	if err != nil {
		if conn, dialErr := net.Dial("unix", addr); dialErr == nil {
			conn.Close()
			return nil, ErrPrimaryRunning
		}
		if rmErr := os.Remove(addr); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return nil, fmt.Errorf("listen %s: %w", addr, err)
		}
		ln, err = net.Listen("unix", addr)
		if err != nil {
			return nil, fmt.Errorf("listen %s: %w", addr, err)
		}
	}
	s := &Server{
		ln:       ln,
		addr:     addr,
		commands: make(chan Command, 64),
		done:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.serve()
	return s, nil
}

func (s *Server) Addr() string { return s.addr }

func (s *Server) Commands() <-chan Command { return s.commands }

func (s *Server) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.ln.Close()
		s.wg.Wait()
		os.Remove(s.addr)
	})
	return err
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("plainpad: accept: %v", err)
			continue
		}
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-s.done:
			conn.Close()
		case <-stop:
		}
	}()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		cmd, err := Parse(scanner.Text())
		if err != nil {
			log.Printf("plainpad: %v", err)
			continue
		}
		select {
		case s.commands <- cmd:
		case <-s.done:
			return
		}
	}
}
