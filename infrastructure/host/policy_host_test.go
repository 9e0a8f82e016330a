package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/reglet-dev/reglet-permissions/application/grant"
	"github.com/reglet-dev/reglet-permissions/domain/entities"
	domainerrors "github.com/reglet-dev/reglet-permissions/domain/errors"
	"github.com/reglet-dev/reglet-permissions/domain/policy"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
	"github.com/reglet-dev/reglet-permissions/permtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	mu          sync.Mutex
	interactive bool
	answer      bool
	err         error
	asked       []entities.Descriptor
}

func (p *fakePrompter) IsInteractive() bool { return p.interactive }

func (p *fakePrompter) PromptForDescriptor(_ context.Context, d entities.Descriptor) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asked = append(p.asked, d)
	return p.answer, p.err
}

func (p *fakePrompter) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.asked)
}

func grants(flags ...string) *entities.GrantSet {
	g := &entities.GrantSet{}
	for _, f := range flags {
		switch f {
		case "net":
			g.Net = append(g.Net, entities.AllScopes)
		case "env":
			g.Env = append(g.Env, entities.AllScopes)
		}
	}
	return g
}

func TestPolicyHost_QueryGranted(t *testing.T) {
	h := New(WithGrants(&entities.GrantSet{Net: []string{"*.example.com"}, Env: []string{"HOME"}}))
	ctx := context.Background()

	status, err := h.Query(ctx, entities.Net("api.example.com"))
	require.NoError(t, err)
	assert.Equal(t, entities.StateGranted, status.State)

	status, err = h.Query(ctx, entities.Env("HOME"))
	require.NoError(t, err)
	assert.Equal(t, entities.StateGranted, status.State)
}

func TestPolicyHost_NoPrompterDenies(t *testing.T) {
	h := New(WithGrants(grants("net")))

	status, err := h.Request(context.Background(), entities.Env("PATH"))
	require.NoError(t, err)
	assert.Equal(t, entities.StateDenied, status.State)
}

func TestPolicyHost_QueryReportsPrompt(t *testing.T) {
	p := &fakePrompter{interactive: true}
	h := New(WithPrompter(p))

	status, err := h.Query(context.Background(), entities.Read("/tmp"))
	require.NoError(t, err)
	assert.Equal(t, entities.StatePrompt, status.State)
	assert.Zero(t, p.count(), "query never prompts")
}

func TestPolicyHost_RequestPromptsAndRemembers(t *testing.T) {
	p := &fakePrompter{interactive: true, answer: true}
	h := New(WithPrompter(p))
	ctx := context.Background()

	status, err := h.Request(ctx, entities.Run("git"))
	require.NoError(t, err)
	assert.Equal(t, entities.StateGranted, status.State)

	status, err = h.Request(ctx, entities.Run("git"))
	require.NoError(t, err)
	assert.Equal(t, entities.StateGranted, status.State)
	assert.Equal(t, 1, p.count())

	assert.Equal(t, []string{"git"}, h.Grants().Run)
}

func TestPolicyHost_RememberedDenial(t *testing.T) {
	p := &fakePrompter{interactive: true, answer: false}
	h := New(WithPrompter(p))
	ctx := context.Background()

	status, err := h.Request(ctx, entities.Sys("hostname"))
	require.NoError(t, err)
	assert.Equal(t, entities.StateDenied, status.State)

	status, err = h.Query(ctx, entities.Sys("hostname"))
	require.NoError(t, err)
	assert.Equal(t, entities.StateDenied, status.State)
	assert.Equal(t, 1, p.count())
	assert.True(t, h.Grants().IsEmpty())
}

func TestPolicyHost_PromptModes(t *testing.T) {
	tests := []struct {
		name        string
		mode        PromptMode
		interactive bool
		want        entities.PermissionState
		prompts     int
	}{
		{"auto interactive", PromptAuto, true, entities.StateGranted, 1},
		{"auto non-interactive", PromptAuto, false, entities.StateDenied, 0},
		{"always non-interactive", PromptAlways, false, entities.StateGranted, 1},
		{"never interactive", PromptNever, true, entities.StateDenied, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePrompter{interactive: tt.interactive, answer: true}
			h := New(WithPrompter(p), WithPromptMode(tt.mode))

			status, err := h.Request(context.Background(), entities.Write("/tmp/out"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, status.State)
			assert.Equal(t, tt.prompts, p.count())
		})
	}
}

func TestPolicyHost_PrompterError(t *testing.T) {
	boom := errors.New("terminal gone")
	p := &fakePrompter{interactive: true, err: boom}
	h := New(WithPrompter(p))

	_, err := h.Request(context.Background(), entities.Env("TOKEN"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "--allow-env=TOKEN")
}

func TestPolicyHost_InvalidName(t *testing.T) {
	h := New(WithGrants(grants("net")))

	_, err := h.Request(context.Background(), permtest.Descriptor{Kind: "nett"})
	var invalid *domainerrors.InvalidNameError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "nett", invalid.Value)

	_, err = h.Query(context.Background(), permtest.Descriptor{Kind: "nett"})
	require.ErrorAs(t, err, &invalid)
}

func TestPolicyHost_CancelledContext(t *testing.T) {
	h := New(WithGrants(grants("net")))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Request(ctx, entities.Net(""))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPolicyHost_WithGrantsCopies(t *testing.T) {
	g := &entities.GrantSet{Env: []string{"HOME"}}
	h := New(WithGrants(g))
	g.Env = append(g.Env, "PATH")

	status, err := h.Query(context.Background(), entities.Env("PATH"))
	require.NoError(t, err)
	assert.Equal(t, entities.StateDenied, status.State)
}

func TestPolicyHost_ConcurrentRequestsPromptOnce(t *testing.T) {
	p := &fakePrompter{interactive: true, answer: true}
	h := New(WithPrompter(p))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := h.Request(context.Background(), entities.Net("example.com"))
			assert.NoError(t, err)
			assert.Equal(t, entities.StateGranted, status.State)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, p.count())
}

func TestPolicyHost_WithOrchestrator(t *testing.T) {
	h := New(
		WithGrants(&entities.GrantSet{Net: []string{entities.AllScopes}, Read: []string{"/etc/**"}}),
		WithPolicy(policy.NewPolicy(
			policy.WithSymlinkResolution(false),
			policy.WithDenialHandler(&policy.NopDenialHandler{}),
		)),
	)
	ctx := context.Background()

	granted, err := grant.Grant(ctx, h, []entities.Descriptor{
		entities.Net(""),
		entities.Read("/etc/hosts"),
		entities.Env("HOME"),
	})
	require.NoError(t, err)
	assert.Equal(t, []entities.Descriptor{entities.Net(""), entities.Read("/etc/hosts")}, granted)

	err = grant.GrantOrThrow(ctx, h, []entities.Descriptor{entities.Env("HOME"), entities.Run("")})
	require.Error(t, err)
	assert.Equal(t,
		"The following permissions have not been granted:\n  --allow-env=HOME\n  --allow-run",
		err.Error())
}

// trackingPolicy records which grant sets are still cached by the wrapped policy.
type trackingPolicy struct {
	ports.Policy
	mu   sync.Mutex
	live map[*entities.GrantSet]struct{}
}

func (p *trackingPolicy) Check(d entities.Descriptor, grants *entities.GrantSet) bool {
	p.mu.Lock()
	p.live[grants] = struct{}{}
	p.mu.Unlock()
	return p.Policy.Check(d, grants)
}

func (p *trackingPolicy) Forget(grants *entities.GrantSet) {
	p.mu.Lock()
	delete(p.live, grants)
	p.mu.Unlock()
	p.Policy.Forget(grants)
}

func TestPolicyHost_PromptGrantsReleaseOldTables(t *testing.T) {
	tracker := &trackingPolicy{
		Policy: policy.NewPolicy(policy.WithDenialHandler(&policy.NopDenialHandler{})),
		live:   make(map[*entities.GrantSet]struct{}),
	}
	p := &fakePrompter{interactive: true, answer: true}
	h := New(WithPrompter(p), WithPolicy(tracker))
	ctx := context.Background()

	for i := range 200 {
		status, err := h.Request(ctx, entities.Env(fmt.Sprintf("VAR_%d", i)))
		require.NoError(t, err)
		require.Equal(t, entities.StateGranted, status.State)
	}

	assert.Equal(t, 200, p.count())
	assert.LessOrEqual(t, len(tracker.live), 1)
	assert.Len(t, h.Grants().Env, 200)
}
