package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.loggedIn = true
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) LoginWithGoogle(ctx context.Context) error { return f.record("google", nil) }
func (f *fakeExec) AdoptToken(ctx context.Context, args []string) error {
	return f.record("token", args)
}
func (f *fakeExec) Session(ctx context.Context) error    { return f.record("session", nil) }
func (f *fakeExec) Status(ctx context.Context) error     { return f.record("status", nil) }
func (f *fakeExec) ClearError(ctx context.Context) error { return f.record("clear", nil) }
func (f *fakeExec) Whoami(ctx context.Context) error     { return f.record("whoami", nil) }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Chat(ctx context.Context) error { return f.record("chat", nil) }
func (f *fakeExec) Ask(ctx context.Context, args []string) error {
	return f.record("ask", args)
}
func (f *fakeExec) Upload(ctx context.Context, args []string) error {
	return f.record("upload", args)
}
func (f *fakeExec) Files(ctx context.Context) error  { return f.record("files", nil) }
func (f *fakeExec) Grades(ctx context.Context) error { return f.record("grades", nil) }
func (f *fakeExec) Curriculum(ctx context.Context, args []string) error {
	return f.record("curriculum", args)
}
func (f *fakeExec) Concepts(ctx context.Context, args []string) error {
	return f.record("concepts", args)
}
func (f *fakeExec) Ingest(ctx context.Context) error { return f.record("ingest", nil) }
func (f *fakeExec) Search(ctx context.Context, args []string) error {
	return f.record("search", args)
}
func (f *fakeExec) Grade(ctx context.Context) error { return f.record("grade", nil) }
func (f *fakeExec) Notify(ctx context.Context, args []string) error {
	return f.record("notify", args)
}

// capturePrint swaps printlnFn for a recorder.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrint(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		`concepts "Grade 1" "Term 1" Math add`,
		"ask what is a fraction",
		"files",
		"foobar",
		"logout",
		"exit",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, reader(input))

	assert.Equal(t, []string{"login", "concepts", "ask", "files", "logout"}, exec.calls)
	assert.Equal(t, []string{"Grade 1", "Term 1", "Math", "add"}, exec.args[1])
	assert.Equal(t, []string{"what", "is", "a", "fraction"}, exec.args[2])
}

func TestRunREPL_ProtectedCommandsNeedLogin(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, reader("whoami\nchat\nstatus\nquit\n"))

	assert.Equal(t, []string{"status"}, exec.calls)
	assert.Contains(t, *out, "Please log in first")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := capturePrint(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, reader("help\n"))
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, reader("help\n"))

	assert.Contains(t, *out, anonymousHelp)
	assert.Contains(t, *out, authenticatedHelp)
}

func TestRunREPL_PrintsErrors(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{loggedIn: true, err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, reader("files"))

	assert.Contains(t, *out, "Error: boom")
}

// sessionEnder logs itself out during a command, the way a 401 would.
type sessionEnder struct{ fakeExec }

func (s *sessionEnder) Files(ctx context.Context) error {
	s.loggedIn = false
	return errors.New("Unauthorized")
}

func TestRunREPL_ReportsEndedSession(t *testing.T) {
	out := capturePrint(t)

	exec := &sessionEnder{fakeExec{loggedIn: true}}
	runREPL(context.Background(), exec, func() string { return "" }, reader("files\n"))

	assert.Contains(t, *out, "Your session has ended. Please log in again.")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrint(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, reader("login\n"))
	assert.Empty(t, exec.calls)
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   \n", nil},
		{"ask hi there\n", []string{"ask", "hi", "there"}},
		{`concepts "Grade 1" Term\t1`, []string{"concepts", "Grade 1", `Term\t1`}},
		{`curriculum "Grade 10"`, []string{"curriculum", "Grade 10"}},
		{`token ""`, []string{"token", ""}},
		{`say "unterminated quote`, []string{"say", "unterminated quote"}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, splitArgs(tt.in), tt.in)
	}
}
