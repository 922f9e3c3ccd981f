// Package sh provides the interactive compass shell.
package sh

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/compass.go/pkg/config"
	"github.com/robotalks/compass.go/pkg/l0/lec315"
	"github.com/robotalks/compass.go/pkg/l1/control"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	AutoConnect bool

	Shell  *ishell.Shell
	Config *config.Config
	Device *lec315.Device
	Port   string

	closer io.Closer
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	configFile string
	portAddr   string

	// commands
	commands = []*ishell.Cmd{
		&OpenCmd,
		&CloseCmd,
		&ListCmd,
		readCmd(),
		setCmd(),
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.StringVar(&configFile, "config", configFile, "Config file (YAML).")
	flag.StringVar(&portAddr, "port", portAddr, "Port address, \"sim\" for an emulated module.")
}

// New creates a new shell.
func New(conf *config.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires an opened device.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Device == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Open opens the device at addr, replacing the current one.
// An empty addr uses the configured port.
func (s *Shell) Open(addr string) error {
	conf := *s.Config
	if addr != "" {
		conf.Port.Address = addr
	}
	dev, closer, err := conf.OpenDevice()
	if err != nil {
		return err
	}
	s.Close()
	s.Device, s.closer, s.Port = dev, closer, conf.Port.Address
	if s.Shell != nil {
		s.Shell.SetPrompt(fmt.Sprintf("%s > ", s.Port))
	}
	return nil
}

// Close closes the current device.
func (s *Shell) Close() {
	if s.Device == nil {
		return
	}
	s.closer.Close()
	s.Device, s.closer, s.Port = nil, nil, ""
	if s.Shell != nil {
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Exec runs a read (arg ignored) or set command by name.
func (s *Shell) Exec(kind, name, arg string) (string, error) {
	if s.Device == nil {
		return "", fmt.Errorf("not connected")
	}
	switch kind {
	case "read", "get":
		return control.Read(s.Device, name)
	case "set":
		ok, err := control.Set(s.Device, name, arg)
		if err != nil {
			return "", err
		}
		return control.Status(ok), nil
	}
	return "", fmt.Errorf("unknown command kind %q", kind)
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Close()
	if s.AutoConnect {
		if s.Interactive {
			s.Shell.Printf("Opening %s ...\n", s.Config.Port.Address)
		}
		if err := s.Open(""); err != nil {
			log.Fatalf("open %q failed: %v", s.Config.Port.Address, err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

func execFunc(kind, name string) func(c *ishell.Context) {
	return MustBeConnected(func(c *ishell.Context) {
		if kind == "set" && len(c.Args) != 1 {
			c.Err(fmt.Errorf("%s %s: VALUE expected", kind, name))
			return
		}
		out, err := ShellFrom(c).Exec(kind, name, strings.Join(c.Args, " "))
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(out)
	})
}

func readCmd() *ishell.Cmd {
	cmd := &ishell.Cmd{
		Name:    "read",
		Aliases: []string{"r", "get"},
		Help:    "read a value from the compass",
	}
	for _, rc := range lec315.ReadCommands {
		cmd.AddCmd(&ishell.Cmd{
			Name: rc.Name,
			Help: fmt.Sprintf("command 0x%02x", rc.Code),
			Func: execFunc("read", rc.Name),
		})
	}
	return cmd
}

func setCmd() *ishell.Cmd {
	cmd := &ishell.Cmd{
		Name: "set",
		Help: "configure the compass",
	}
	for _, sc := range lec315.SetCommands {
		cmd.AddCmd(&ishell.Cmd{
			Name: sc.Name,
			Help: fmt.Sprintf("VALUE, command 0x%02x", sc.Code),
			Func: execFunc("set", sc.Name),
		})
	}
	return cmd
}

var (
	// OpenCmd opens a port.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"connect", "c"},
		Help:    "[ADDRESS]",
		Func: func(c *ishell.Context) {
			var addr string
			if len(c.Args) > 0 {
				addr = c.Args[0]
			}
			if err := ShellFrom(c).Open(addr); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the current port.
	CloseCmd = ishell.Cmd{
		Name:    "close",
		Aliases: []string{"disconnect", "d"},
		Func: func(c *ishell.Context) {
			ShellFrom(c).Close()
		},
	}

	// ListCmd lists the command names.
	ListCmd = ishell.Cmd{
		Name:    "list",
		Aliases: []string{"l"},
		Func: func(c *ishell.Context) {
			for _, rc := range lec315.ReadCommands {
				c.Printf("read %-12s 0x%02x\n", rc.Name, rc.Code)
			}
			for _, sc := range lec315.SetCommands {
				c.Printf("set  %-12s 0x%02x\n", sc.Name, sc.Code)
			}
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	conf, err := config.Load(configFile)
	if err != nil {
		log.Fatalln(err)
	}
	if portAddr != "" {
		conf.Port.Address = portAddr
	}
	New(conf).WithAutoConnect(true).Run(flag.Args()...)
}
