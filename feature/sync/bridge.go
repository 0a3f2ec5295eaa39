package sync

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ScriptBridge writes commands to a script, one per line, for the engine to replay.
type ScriptBridge struct {
	w     io.Writer
	count int
}

// NewScriptBridge creates a bridge writing to w.
func NewScriptBridge(w io.Writer) *ScriptBridge {
	return &ScriptBridge{w: w}
}

// Execute writes a single command.
func (b *ScriptBridge) Execute(ctx context.Context, command string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := io.WriteString(b.w, command+"\n"); err != nil {
		return "", fmt.Errorf("failed to write command: %w", err)
	}
	b.count++
	return "", nil
}

// ExecuteBatch writes all commands in one write.
func (b *ScriptBridge) ExecuteBatch(ctx context.Context, commands []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(commands) == 0 {
		return nil
	}
	if _, err := io.WriteString(b.w, strings.Join(commands, "\n")+"\n"); err != nil {
		return fmt.Errorf("failed to write %d commands: %w", len(commands), err)
	}
	b.count += len(commands)
	return nil
}

// Count returns the number of commands written.
func (b *ScriptBridge) Count() int {
	return b.count
}
