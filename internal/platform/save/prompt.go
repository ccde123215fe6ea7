package save

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/qagen/qagen/internal/platform/artifact"
)

// AskFunc matches survey.AskOne so tests can answer prompts.
type AskFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// PromptSaver asks the user where to save, suggesting dir/<file name>.
type PromptSaver struct {
	fs          afs.Service
	dir         string
	interactive bool
	ask         AskFunc
}

// NewPromptSaver creates a prompt-driven saver. When interactive is false
// every Save returns ErrUnsupported so a Fallback can take over.
func NewPromptSaver(fs afs.Service, dir string, interactive bool) *PromptSaver {
	return &PromptSaver{fs: fs, dir: dir, interactive: interactive, ask: survey.AskOne}
}

// WithAsk replaces the prompt function.
func (s *PromptSaver) WithAsk(ask AskFunc) *PromptSaver {
	s.ask = ask
	return s
}

func (s *PromptSaver) Save(ctx context.Context, a *artifact.Artifact) error {
	if !s.interactive {
		return ErrUnsupported
	}

	var dest string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Save %s (%s) as:", a.Description, strings.Join(a.Extensions, ", ")),
		Default: filepath.Join(s.dir, a.FileName),
	}
	if err := s.ask(prompt, &dest); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrCancelled
		}
		return fmt.Errorf("prompt for destination: %w", err)
	}
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return ErrCancelled
	}
	return upload(ctx, s.fs, url.Normalize(dest, file.Scheme), a)
}
