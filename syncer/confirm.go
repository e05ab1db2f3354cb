package syncer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"ecadmin/apiclient"
)

// DeletePrompt is shown before every destructive operation.
const DeletePrompt = "Are you sure? You won't be able to revert this!"

// Confirmer はユーザーに確認を求めます。error は確認ダイアログが閉じられたことを表します。
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Always answers every prompt with v.
func Always(v bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) { return v, nil })
}

// LineConfirmer は端末で y/N を尋ねます。
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

func (l *LineConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(l.out, "%s [y/N]: ", prompt)
	line, err := l.in.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// RunConfirmed は確認が取れたときだけ Run します。
// A refusal or a dismissed prompt returns false without calling op, touching the
// busy flag or notifying.
func (c *Coordinator) RunConfirmed(ctx context.Context, confirmer Confirmer, prompt, tag string, op Op, onSuccess func(apiclient.Result), onFailure func(error)) bool {
	ok, err := confirmer.Confirm(ctx, prompt)
	if err != nil || !ok {
		return false
	}
	return c.Run(ctx, tag, op, onSuccess, onFailure)
}
