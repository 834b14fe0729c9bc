package terminal

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendingmachine/pkg/domain/service"
)

func TestPromptLine(t *testing.T) {
	out := &bytes.Buffer{}
	console := NewConsole(strings.NewReader("A1\r\n2\nlast"), out, false)

	line, err := console.PromptLine("Enter the product code to purchase")
	require.NoError(t, err)
	assert.Equal(t, "A1", line)
	assert.Contains(t, out.String(), "Enter the product code to purchase: ")

	line, err = console.PromptLine("Enter quantity")
	require.NoError(t, err)
	assert.Equal(t, "2", line)

	line, err = console.PromptLine("Confirm")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = console.PromptLine("Again")
	assert.True(t, errors.Is(err, io.EOF))
}

func TestRenderTable(t *testing.T) {
	out := &bytes.Buffer{}
	console := NewConsole(strings.NewReader(""), out, false)

	console.RenderTable("Available Products", []string{"Code", "Name"}, [][]string{{"A1", "Soda"}, {"C3", "Candy"}})

	text := out.String()
	assert.Contains(t, text, "Available Products")
	assert.Equal(t, 1, linesContaining(text, "Code", "Name"))
	assert.Equal(t, 1, linesContaining(text, "A1", "Soda"))
	assert.Equal(t, 1, linesContaining(text, "C3", "Candy"))
	assert.Zero(t, linesContaining(text, "A1", "Candy"))
}

func TestRenderMessage(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		out := &bytes.Buffer{}
		NewConsole(strings.NewReader(""), out, false).RenderMessage(service.SeverityError, "Invalid PIN.")
		assert.Equal(t, "Invalid PIN.\n", out.String())
	})

	t.Run("Colored", func(t *testing.T) {
		out := &bytes.Buffer{}
		NewConsole(strings.NewReader(""), out, true).RenderMessage(service.SeverityError, "Invalid PIN.")
		assert.True(t, strings.HasPrefix(out.String(), "\x1b[31m"))
		assert.Contains(t, out.String(), "Invalid PIN.\x1b[0m")
	})
}

func TestRenderBanner(t *testing.T) {
	out := &bytes.Buffer{}
	NewConsole(strings.NewReader(""), out, false).RenderBanner("Vending Machine")

	assert.Equal(t, strings.Repeat("=", 23)+"\n    Vending Machine\n"+strings.Repeat("=", 23)+"\n", out.String())
}

func linesContaining(text string, parts ...string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		matched := true
		for _, part := range parts {
			if !strings.Contains(line, part) {
				matched = false
				break
			}
		}
		if matched {
			count++
		}
	}
	return count
}

var _ service.Terminal = (*Console)(nil)
