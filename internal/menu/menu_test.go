package menu

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/example/billid/internal/adapters/clock"
	cliadapter "github.com/example/billid/internal/adapters/cli"
	"github.com/example/billid/internal/app"
	"github.com/example/billid/internal/ports/primary"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	goleak.VerifyTestMain(m)
}

func newTestMenu(input string, defaultService string) (*Menu, *bytes.Buffer) {
	var out bytes.Buffer
	service := app.NewBillingService(clock.FixedYear{Year: 2025}, zap.NewNop())
	adapter := cliadapter.NewBillingAdapter(service, &out, "text")
	return New(strings.NewReader(input), &out, adapter, defaultService), &out
}

func TestMenu_GenerateThenExit(t *testing.T) {
	m, out := newTestMenu("1\nws\n1\n6\n", "")

	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, StateExit, m.State())
	assert.Contains(t, out.String(), "✓ CODE GENERATED: WS250000018G")
	assert.Contains(t, out.String(), "Exiting the system.")
}

func TestMenu_GenerateUsesDefaultService(t *testing.T) {
	m, out := newTestMenu("1\n\n1\n6\n", "ws")

	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "[WS]")
	assert.Contains(t, out.String(), "WS250000018G")
}

func TestMenu_GenerateErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "non numeric sequential", input: "1\nWS\nabc\n6\n", want: `sequential "abc" is not a number`},
		{name: "out of range", input: "1\nWS\n1000000\n6\n", want: "sequential must be between 0 and 999999"},
		{name: "unknown service", input: "1\nZZ\n1\n6\n", want: "service type 'ZZ' is invalid"},
		{name: "bad phase", input: "2\nSW\nAcme\nQ\n6\n", want: "phase 'Q' is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, out := newTestMenu(tt.input, "")

			require.NoError(t, m.Run(context.Background()))
			assert.Contains(t, out.String(), "✗ ERROR: "+tt.want)
			assert.Contains(t, out.String(), "Exiting the system.")
		})
	}
}

func TestMenu_GenerateClient(t *testing.T) {
	m, out := newTestMenu("2\nSW\nAcme\nE\n6\n", "")

	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "✓ CODE GENERATED: SW25ACMEXXE")
	assert.Contains(t, out.String(), "Client acronym: ACMEXX")
}

func TestMenu_GenerateClient_EmptyName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
	}{
		{name: "no phase", input: "2\nSW\n\n\n6\n", wantID: "SW25XXXXXXTM"},
		{name: "with phase", input: "2\nSW\n\nD\n6\n", wantID: "SW25XXXXXXDT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, out := newTestMenu(tt.input, "")

			require.NoError(t, m.Run(context.Background()))
			assert.Contains(t, out.String(), "✓ CODE GENERATED: "+tt.wantID)
			assert.Contains(t, out.String(), "Client acronym: XXXXXX")
			assert.NotContains(t, out.String(), "✗ ERROR")
		})
	}
}

func TestMenu_Validate(t *testing.T) {
	m, out := newTestMenu("3\nws250000018g\n3\nWS250000018H\n6\n", "")

	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "✓ VALID CODE: WS250000018G")
	assert.Contains(t, out.String(), "✗ INVALID CODE!")
	assert.Contains(t, out.String(), "expected 8G, received 8H")
}

func TestMenu_Listings(t *testing.T) {
	m, out := newTestMenu("4\n5\n6\n", "")

	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "TR     Training and courses")
	assert.Contains(t, out.String(), "Monthly maintenance")
}

func TestMenu_InvalidOptionReprompts(t *testing.T) {
	m, out := newTestMenu("9\n6\n", "")

	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "Invalid option. Please try again.")
	assert.Equal(t, 2, strings.Count(out.String(), "--- MENU ---"))
}

func TestMenu_EOFExits(t *testing.T) {
	for _, input := range []string{"", "1\n", "1\nWS\n", "2\nSW\nAcme\n", "3\n"} {
		m, out := newTestMenu(input, "")

		require.NoError(t, m.Run(context.Background()), "input %q", input)
		assert.Equal(t, StateExit, m.State())
		assert.Contains(t, out.String(), "Exiting the system.")
	}
}

func TestMenu_CancelledContext(t *testing.T) {
	m, _ := newTestMenu("4\n", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

// stubActions records which actions the menu dispatched.
type stubActions struct {
	calls []string
}

func (s *stubActions) Generate(ctx context.Context, req primary.GenerateIDRequest) (*primary.GenerateIDResponse, error) {
	s.calls = append(s.calls, "generate:"+req.ServiceCode)
	return &primary.GenerateIDResponse{}, nil
}

func (s *stubActions) Validate(ctx context.Context, candidate string) (*primary.BillingID, error) {
	s.calls = append(s.calls, "validate:"+candidate)
	return nil, nil
}

func (s *stubActions) ListServices(ctx context.Context) error {
	s.calls = append(s.calls, "services")
	return nil
}

func (s *stubActions) ListPhases(ctx context.Context) error {
	s.calls = append(s.calls, "phases")
	return nil
}

func TestMenu_StepTransitions(t *testing.T) {
	actions := &stubActions{}
	var out bytes.Buffer
	m := New(strings.NewReader("3\nABC\n4\n"), &out, actions, "")

	steps := []State{StateValidate, StateMainMenu, StateListServices, StateMainMenu, StateExit}
	for i, want := range steps {
		m.state = m.Step(context.Background())
		assert.Equal(t, want, m.State(), "step %d", i)
	}
	assert.Equal(t, []string{"validate:ABC", "services"}, actions.calls)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "main-menu", StateMainMenu.String())
	assert.Equal(t, "exit", StateExit.String())
	assert.Equal(t, "state(42)", State(42).String())
}
