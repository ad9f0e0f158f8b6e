package logfilewriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/uber/bp-engine/src/bpengine/internal/fs"
	"github.com/uber/bp-engine/src/bpengine/internal/serverinfofile"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const _fmtOutputKey = "output:%s"

// Params define the dependencies for SetupOutputWriter.
type Params struct {
	fx.In

	FS             fs.FS
	Lifecycle      fx.Lifecycle
	ServerInfoFile serverinfofile.ServerInfoFile
}

// SetupOutputWriter creates a writer for human readable output of a single component, kept apart from the daemon log.
// The file path is published in the server info file so editors can tail it.
func SetupOutputWriter(p Params, name string) (io.Writer, error) {
	logsDirPath := filepath.Join(os.TempDir(), name)
	if err := p.FS.MkdirAll(logsDirPath); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	logFile, err := p.FS.TempFile(logsDirPath, "*.log")
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}

	if err := p.ServerInfoFile.UpdateField(fmt.Sprintf(_fmtOutputKey, name), logFile.Name()); err != nil {
		logFile.Close()
		return nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(logFile),
		zap.InfoLevel,
	)
	outputLogger := zap.New(core).Sugar()

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			outputLogger.Sync()
			logFile.Close()
			return p.FS.Remove(logFile.Name())
		},
	})

	return &loggerWriter{logger: outputLogger}, nil
}

type loggerWriter struct {
	logger *zap.SugaredLogger
}

// Write logs every non-empty line of p as its own entry.
func (o *loggerWriter) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(string(p), "\n") {
		if len(line) > 0 {
			o.logger.Info(line)
		}
	}
	return len(p), nil
}
