// Package menu implements the interactive billing menu as a small state
// machine driven by an injected line reader.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/example/billid/internal/ports/primary"
)

// State is a menu state.
type State int

const (
	StateMainMenu State = iota
	StateGenerate
	StateGenerateClient
	StateValidate
	StateListServices
	StateListPhases
	StateExit
)

var stateNames = map[State]string{
	StateMainMenu:       "main-menu",
	StateGenerate:       "generate",
	StateGenerateClient: "generate-client",
	StateValidate:       "validate",
	StateListServices:   "list-services",
	StateListPhases:     "list-phases",
	StateExit:           "exit",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Actions is what the menu needs from the output adapter.
// *cli.BillingAdapter satisfies it.
type Actions interface {
	Generate(ctx context.Context, req primary.GenerateIDRequest) (*primary.GenerateIDResponse, error)
	Validate(ctx context.Context, candidate string) (*primary.BillingID, error)
	ListServices(ctx context.Context) error
	ListPhases(ctx context.Context) error
}

type option struct {
	key   string
	label string
	next  State
}

// options is the main menu dispatch table, in display order.
var options = []option{
	{key: "1", label: "Generate new billing code", next: StateGenerate},
	{key: "2", label: "Generate client billing code (acronym + phase)", next: StateGenerateClient},
	{key: "3", label: "Validate an existing code", next: StateValidate},
	{key: "4", label: "List service types", next: StateListServices},
	{key: "5", label: "List project phases", next: StateListPhases},
	{key: "6", label: "Exit", next: StateExit},
}

// Menu is the interactive shell around the billing service.
type Menu struct {
	in             *bufio.Scanner
	out            io.Writer
	actions        Actions
	defaultService string
	state          State
	handlers       map[State]func(ctx context.Context) State
}

// New creates a menu reading answers from in and writing prompts to out.
// defaultService, when set, is used for an empty service answer.
func New(in io.Reader, out io.Writer, actions Actions, defaultService string) *Menu {
	m := &Menu{
		in:             bufio.NewScanner(in),
		out:            out,
		actions:        actions,
		defaultService: strings.ToUpper(defaultService),
		state:          StateMainMenu,
	}
	m.handlers = map[State]func(ctx context.Context) State{
		StateMainMenu:       m.mainMenu,
		StateGenerate:       m.generate,
		StateGenerateClient: m.generateClient,
		StateValidate:       m.validate,
		StateListServices:   m.listServices,
		StateListPhases:     m.listPhases,
	}
	return m
}

// State returns the current state.
func (m *Menu) State() State {
	return m.state
}

// Run drives the menu until the user exits, the input ends or ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, "=== Billing Identification System (Web Technology Services) ===")
	for m.state != StateExit {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.state = m.Step(ctx)
	}
	if err := m.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Fprintln(m.out, "\nExiting the system.")
	return nil
}

// Step runs the handler of the current state and returns the next state.
func (m *Menu) Step(ctx context.Context) State {
	handler, ok := m.handlers[m.state]
	if !ok {
		return StateExit
	}
	return handler(ctx)
}

func (m *Menu) mainMenu(ctx context.Context) State {
	fmt.Fprintln(m.out, "\n--- MENU ---")
	for _, opt := range options {
		fmt.Fprintf(m.out, "%s. %s\n", opt.key, opt.label)
	}

	choice, ok := m.prompt("Choose an option: ")
	if !ok {
		return StateExit
	}
	for _, opt := range options {
		if opt.key == choice {
			return opt.next
		}
	}
	fmt.Fprintln(m.out, "\nInvalid option. Please try again.")
	return StateMainMenu
}

func (m *Menu) generate(ctx context.Context) State {
	fmt.Fprintln(m.out, "\n-- GENERATE NEW CODE --")
	service, ok := m.promptService()
	if !ok {
		return StateExit
	}
	raw, ok := m.prompt("Enter the sequential number (0 to 999999): ")
	if !ok {
		return StateExit
	}
	seq, err := strconv.Atoi(raw)
	if err != nil {
		m.printError(fmt.Errorf("sequential %q is not a number", raw))
		return StateMainMenu
	}

	if _, err := m.actions.Generate(ctx, primary.GenerateIDRequest{ServiceCode: service, Sequential: &seq}); err != nil {
		m.printError(err)
	}
	return StateMainMenu
}

func (m *Menu) generateClient(ctx context.Context) State {
	fmt.Fprintln(m.out, "\n-- GENERATE CLIENT CODE --")
	service, ok := m.promptService()
	if !ok {
		return StateExit
	}
	client, ok := m.prompt("Enter the client or company name: ")
	if !ok {
		return StateExit
	}
	phase, ok := m.prompt("Enter the project phase (E, D, F, M or empty for none): ")
	if !ok {
		return StateExit
	}

	req := primary.GenerateIDRequest{ServiceCode: service, ClientName: client, Phase: phase}
	if client == "" {
		// An empty name still yields the XXXXXX acronym.
		req.Acronym = "XXXXXX"
	}
	if _, err := m.actions.Generate(ctx, req); err != nil {
		m.printError(err)
	}
	return StateMainMenu
}

func (m *Menu) validate(ctx context.Context) State {
	fmt.Fprintln(m.out, "\n-- VALIDATE CODE --")
	candidate, ok := m.prompt("Enter the 12-character code to validate: ")
	if !ok {
		return StateExit
	}
	// The adapter reports rejections itself.
	_, _ = m.actions.Validate(ctx, candidate)
	return StateMainMenu
}

func (m *Menu) listServices(ctx context.Context) State {
	fmt.Fprintln(m.out, "\n-- AVAILABLE SERVICE TYPES --")
	if err := m.actions.ListServices(ctx); err != nil {
		m.printError(err)
	}
	return StateMainMenu
}

func (m *Menu) listPhases(ctx context.Context) State {
	fmt.Fprintln(m.out, "\n-- PROJECT PHASES --")
	if err := m.actions.ListPhases(ctx); err != nil {
		m.printError(err)
	}
	return StateMainMenu
}

func (m *Menu) promptService() (string, bool) {
	label := "Enter the service code (e.g. WS, EC, SW): "
	if m.defaultService != "" {
		label = fmt.Sprintf("Enter the service code (e.g. WS, EC, SW) [%s]: ", m.defaultService)
	}
	service, ok := m.prompt(label)
	if ok && service == "" {
		service = m.defaultService
	}
	return strings.ToUpper(service), ok
}

// prompt writes label and reads one trimmed line. ok is false at end of input.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) printError(err error) {
	fmt.Fprintf(m.out, "\n%s ERROR: %s\n", color.New(color.FgRed).Sprint("✗"), err)
}
