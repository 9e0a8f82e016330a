package prompter_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/infrastructure/prompter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCliPrompter_PromptForDescriptor(t *testing.T) {
	d := entities.Net("example.com")

	t.Run("Grant", func(t *testing.T) {
		in := bytes.NewBufferString("y\n")
		out := &bytes.Buffer{}
		p := prompter.NewCliPrompter(in, out)

		granted, err := p.PromptForDescriptor(context.Background(), d)
		require.NoError(t, err)
		assert.True(t, granted)
		assert.Contains(t, out.String(), "Permission request: Network access to: example.com")
		assert.Contains(t, out.String(), "flag: --allow-net=example.com")
	})

	t.Run("Deny", func(t *testing.T) {
		p := prompter.NewCliPrompter(bytes.NewBufferString("n\n"), &bytes.Buffer{})

		granted, err := p.PromptForDescriptor(context.Background(), d)
		require.NoError(t, err)
		assert.False(t, granted)
	})

	t.Run("Empty answer denies", func(t *testing.T) {
		p := prompter.NewCliPrompter(bytes.NewBufferString("\n"), &bytes.Buffer{})

		granted, err := p.PromptForDescriptor(context.Background(), d)
		require.NoError(t, err)
		assert.False(t, granted)
	})

	t.Run("Last line without newline", func(t *testing.T) {
		p := prompter.NewCliPrompter(bytes.NewBufferString("yes"), &bytes.Buffer{})

		granted, err := p.PromptForDescriptor(context.Background(), d)
		require.NoError(t, err)
		assert.True(t, granted)
	})

	t.Run("EOF", func(t *testing.T) {
		p := prompter.NewCliPrompter(bytes.NewBufferString(""), &bytes.Buffer{})

		_, err := p.PromptForDescriptor(context.Background(), d)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("Canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := prompter.NewCliPrompter(bytes.NewBufferString("y\n"), &bytes.Buffer{})

		_, err := p.PromptForDescriptor(ctx, d)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCliPrompter_SequentialAnswers(t *testing.T) {
	p := prompter.NewCliPrompter(bytes.NewBufferString("y\nn\nyes\n"), &bytes.Buffer{})

	var answers []bool
	for _, d := range []entities.Descriptor{entities.Read(""), entities.Env("HOME"), entities.Sys("")} {
		granted, err := p.PromptForDescriptor(context.Background(), d)
		require.NoError(t, err)
		answers = append(answers, granted)
	}
	assert.Equal(t, []bool{true, false, true}, answers)
}

func TestCliPrompter_IsInteractive(t *testing.T) {
	assert.False(t, prompter.NewCliPrompter(&bytes.Buffer{}, nil).IsInteractive())
	assert.True(t, prompter.NewCliPrompter(&bytes.Buffer{}, nil, prompter.WithInteractive(true)).IsInteractive())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Read any file", prompter.Describe(entities.Read("")))
	assert.Equal(t, "Run subprocess: git", prompter.Describe(entities.Run("git")))
	assert.Equal(t, "Access system information: hostname", prompter.Describe(entities.Sys("hostname")))
}

func TestCliPrompter_ShowsRisk(t *testing.T) {
	out := &bytes.Buffer{}
	p := prompter.NewCliPrompter(bytes.NewBufferString("n\nn\n"), out)

	_, err := p.PromptForDescriptor(context.Background(), entities.Run("bash"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "risk: High: Executes a shell or interpreter (High Risk)")

	out.Reset()
	_, err = p.PromptForDescriptor(context.Background(), entities.Env("HOME"))
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "risk:")
}

func TestRisk(t *testing.T) {
	assert.Empty(t, prompter.Risk(entities.Read("/tmp/a")))
	assert.Equal(t, "Medium: Network access", prompter.Risk(entities.Net("example.com")))
}
