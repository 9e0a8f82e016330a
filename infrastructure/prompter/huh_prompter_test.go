package prompter

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHuhPrompter_WritesToStderr(t *testing.T) {
	for _, accessible := range []bool{false, true} {
		p := NewHuhPrompter(accessible)
		assert.Same(t, os.Stderr, p.output)
		assert.NotSame(t, os.Stdout, p.output)
	}
}
