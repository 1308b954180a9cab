package service

import "context"

// TextGenerator is a single-shot text completion: one system instruction, one user message, raw text back.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}
