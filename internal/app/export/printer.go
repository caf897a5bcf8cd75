package export

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/filestorage"
)

// PrintJob is a PDF sent to a print device
type PrintJob struct {
	ID       uuid.UUID
	FileName string
	PDF      []byte
	Pages    int
}

// Printer is a print device
type Printer interface {
	Print(ctx context.Context, job PrintJob) error
	Name() string
}

// SpoolPrinter drops jobs into a spool directory for an external print daemon
type SpoolPrinter struct {
	storage filestorage.FileStorage
	dir     string
}

// NewSpoolPrinter creates a printer writing into dir of storage
func NewSpoolPrinter(storage filestorage.FileStorage, dir string) *SpoolPrinter {
	return &SpoolPrinter{storage: storage, dir: dir}
}

func (p *SpoolPrinter) Name() string { return "spool:" + p.dir }

func (p *SpoolPrinter) Print(ctx context.Context, job PrintJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.storage.SaveBytes(p.dir, job.FileName, job.PDF); err != nil {
		return fmt.Errorf("%w: spool %s: %v", apperrors.ErrPrintFailed, job.FileName, err)
	}
	return nil
}

// CommandPrinter pipes jobs into a command such as `lp -d office`
type CommandPrinter struct {
	command []string
}

// NewCommandPrinter creates a printer running command. The PDF is written to its stdin.
func NewCommandPrinter(command []string) *CommandPrinter {
	return &CommandPrinter{command: command}
}

func (p *CommandPrinter) Name() string {
	if len(p.command) == 0 {
		return "command"
	}
	return "command:" + path.Base(p.command[0])
}

func (p *CommandPrinter) Print(ctx context.Context, job PrintJob) error {
	if len(p.command) == 0 {
		return fmt.Errorf("%w: no print command configured", apperrors.ErrPrintFailed)
	}

	cmd := exec.CommandContext(ctx, p.command[0], p.command[1:]...)
	cmd.Stdin = bytes.NewReader(job.PDF)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s: %s", apperrors.ErrPrintFailed, p.command[0], msg)
	}
	return nil
}
