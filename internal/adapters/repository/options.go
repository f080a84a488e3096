package repository

import "os"

// Default interaction log file settings.
const (
	defaultLogFileMode os.FileMode = 0o644
	defaultLogDirMode  os.FileMode = 0o755
)

// SinkOption applies a configuration option to the JSONLSink.
type SinkOption func(*JSONLSink)

// WithFileMode sets the permissions used when the log file is created.
func WithFileMode(mode os.FileMode) SinkOption {
	return func(s *JSONLSink) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}

// WithSyncEachWrite fsyncs the log after every record.
func WithSyncEachWrite(enabled bool) SinkOption {
	return func(s *JSONLSink) {
		s.syncEachWrite = enabled
	}
}
