// Package compress implements the per-event pipeline: map the source path,
// materialize the target directory and stream a gzip copy of the file.
package compress

import (
	"compress/gzip"
	"io"
	"log/slog"

	"github.com/raoulx24/files2gz/internal/fs"
	"github.com/raoulx24/files2gz/internal/mirror"
)

// copyBufferSize bounds the memory used per transfer; sources of any size
// are streamed through it.
const copyBufferSize = 128 * 1024

// Pipeline processes file-creation events. Handle touches no state shared
// between invocations, so distinct events may run concurrently.
type Pipeline struct {
	mapper *mirror.Mapper
	fs     fs.FS
	log    *slog.Logger
}

// New creates a pipeline. A nil filesystem selects the OS default.
func New(mapper *mirror.Mapper, filesystem fs.FS, log *slog.Logger) *Pipeline {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Pipeline{
		mapper: mapper,
		fs:     filesystem,
		log:    log,
	}
}

// Handle compresses one newly created file into the target tree. Failures
// are logged with the offending path and dropped; they never propagate, so
// one bad file cannot take the watch loop down.
func (p *Pipeline) Handle(path string) {
	mapped, err := p.mapper.Map(path)
	if err != nil {
		p.log.Error("mapping source path", "path", path, "error", err)
		return
	}

	created, err := p.fs.EnsureDir(mapped.TargetDir)
	if err != nil {
		p.log.Error("creating target directory", "dir", mapped.TargetDir, "error", err)
		return
	}
	if created {
		p.log.Info("created directory", "dir", mapped.TargetDir)
	}

	if err := p.transfer(path, mapped.TargetFile); err != nil {
		p.log.Error("compressing file", "path", mapped.Rel, "error", err)
		return
	}

	p.log.Info("compressed file", "path", mapped.Rel)
}

// transfer streams src through gzip into dst. The destination is written in
// place; on failure a partial file may remain and is logged as such.
func (p *Pipeline) transfer(src, dst string) error {
	in, err := p.fs.Open(src)
	if err != nil {
		return classify(src, err)
	}
	defer in.Close()

	out, err := p.fs.Create(dst)
	if err != nil {
		return classify(src, err)
	}

	gz := gzip.NewWriter(out)
	buf := make([]byte, copyBufferSize)

	_, err = io.CopyBuffer(gz, in, buf)
	if err == nil {
		err = gz.Close()
	} else {
		gz.Close()
	}
	if err == nil {
		// Flush before reporting success so a crash right after cannot
		// leave a directory entry without its bytes.
		err = out.Sync()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		p.log.Error("partial file left at destination", "path", dst)
		return classify(src, err)
	}
	return nil
}
