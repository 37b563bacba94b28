// Package ffmpegtranscoder converts raw captures with an external ffmpeg
// process.
package ffmpegtranscoder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/playblast/pkg/adapters/logger"
	"github.com/user/playblast/pkg/ports"
)

// DefaultExtension is the extension of the delivery format.
const DefaultExtension = ".mp4"

// Options configures a Transcoder.
type Options struct {
	// EncoderPath is used for jobs that don't name an encoder. Empty
	// means FindFFmpeg's search order.
	EncoderPath string

	// Extension of the target format. Default DefaultExtension.
	Extension string

	Logger ports.Logger

	// OnLine, if set, receives every output line of the encoder as it
	// arrives, in addition to the logger.
	OnLine func(line string)
}

// Transcoder implements ports.Transcoder by running
// `ffmpeg -i <input> <output> -y`.
type Transcoder struct {
	encoderPath string
	ext         string
	log         ports.Logger
	onLine      func(string)
}

// New creates a Transcoder.
func New(opts Options) *Transcoder {
	t := &Transcoder{
		encoderPath: opts.EncoderPath,
		ext:         opts.Extension,
		log:         opts.Logger,
		onLine:      opts.OnLine,
	}
	if t.ext == "" {
		t.ext = DefaultExtension
	}
	if t.log == nil {
		t.log = logger.NewNoop()
	}
	t.log = t.log.WithComponent("transcode")
	return t
}

// Locate resolves name the way Convert resolves a job's encoder.
func (t *Transcoder) Locate(name string) (string, error) {
	if name == "" {
		name = t.encoderPath
	}
	return FindFFmpeg(name)
}

var _ ports.EncoderLocator = (*Transcoder)(nil)

// DeriveOutputPath returns output when it already carries ext, and
// otherwise input with its extension replaced by ext.
func DeriveOutputPath(input, output, ext string) string {
	if output != "" && strings.EqualFold(filepath.Ext(output), ext) {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

// Args returns the encoder argument list for a conversion, without the
// binary itself.
func Args(input, output string) []string {
	return []string{"-i", input, output, "-y"}
}

// Convert runs the encoder over job.InputPath. The combined output of the
// process is relayed line by line while it runs. A non-zero exit status
// is returned in the result; the error is reserved for failures to run
// the encoder at all and for cancellation.
func (t *Transcoder) Convert(ctx context.Context, job ports.TranscodeJob) (ports.TranscodeResult, error) {
	if job.InputPath == "" {
		return ports.TranscodeResult{}, ErrNoInput
	}

	encoderPath := job.EncoderPath
	if encoderPath == "" {
		encoderPath = t.encoderPath
	}
	encoder, err := FindFFmpeg(encoderPath)
	if err != nil {
		return ports.TranscodeResult{}, err
	}

	result := ports.TranscodeResult{
		OutputPath: DeriveOutputPath(job.InputPath, job.OutputPath, t.ext),
		ExitCode:   -1,
	}

	if f, err := os.Open(job.InputPath); err != nil {
		t.log.Warn("Input file is not accessible: %s", err)
	} else {
		f.Close()
	}

	args := Args(job.InputPath, result.OutputPath)
	t.log.Debug("Running encoder: %s", strings.Join(append([]string{encoder}, args...), " "))

	cmd := exec.CommandContext(ctx, encoder, args...)
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	cmd.WaitDelay = 5 * time.Second

	started := time.Now()
	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return result, fmt.Errorf("%w: %w", ErrStartFailed, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		t.relay(pr)
	}()

	waitErr := cmd.Wait()
	pw.Close()
	<-done
	result.Duration = time.Since(started)

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return result, fmt.Errorf("wait for encoder: %w", waitErr)
		}
		result.ExitCode = exitErr.ExitCode()
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	} else {
		result.ExitCode = 0
	}

	t.log.Debug("Encoder exited with status %d", result.ExitCode)
	return result, nil
}

// relay forwards output lines until r is exhausted.
func (t *Transcoder) relay(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t.log.Debug("%s", line)
		if t.onLine != nil {
			t.onLine(line)
		}
	}
	// Keep the process from blocking on a full pipe if scanning stopped early.
	_, _ = io.Copy(io.Discard, r)
}

// scanLines splits on LF, CRLF and bare CR; ffmpeg rewrites its progress
// line with CR.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			advance++
		} else if data[i] == '\r' && i+1 == len(data) && !atEOF {
			// Need more data to know whether this is CRLF.
			return 0, nil, nil
		}
		return advance, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ ports.Transcoder = (*Transcoder)(nil)
