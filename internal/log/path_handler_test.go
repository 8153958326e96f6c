package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// newTestLogger returns a logger writing through a PathHandler with a fixed
// home directory, plus the buffer collecting its output.
func newTestLogger(home string) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewPathHandler(handler, WithHomeDir(home))), &buf
}

// TestPathHandlerMasksHomePaths tests that path attribute values under the
// home directory are rewritten to their ~/ form.
func TestPathHandlerMasksHomePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "path under home is masked",
			value: "/home/alice/photos/a.jpg",
			want:  "~/photos/a.jpg",
		},
		{
			name:  "home itself is masked",
			value: "/home/alice",
			want:  "~",
		},
		{
			name:  "deeply nested path is masked",
			value: "/home/alice/exports/2024/gallery/b-150x150.jpg",
			want:  "~/exports/2024/gallery/b-150x150.jpg",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := newTestLogger("/home/alice")
			logger.Info("test", "path", tt.value)

			output := buf.String()
			if !strings.Contains(output, tt.want) {
				t.Errorf("expected output to contain %q, got %q", tt.want, output)
			}
			if strings.Contains(output, "/home/alice") {
				t.Errorf("expected home directory to be masked, got %q", output)
			}
		})
	}
}

// TestPathHandlerLeavesOtherValues tests that values outside the home
// directory pass through unchanged.
func TestPathHandlerLeavesOtherValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{"path outside home", "/var/exports/photos/a.jpg"},
		{"prefix but not child", "/home/alicedata/a.jpg"},
		{"relative path", "photos/a.jpg"},
		{"plain value", "sunset-150x150.jpg"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := newTestLogger("/home/alice")
			logger.Info("test", "value", tt.value)

			if !strings.Contains(buf.String(), tt.value) {
				t.Errorf("expected output to contain unmasked %q, got %q", tt.value, buf.String())
			}
		})
	}
}

// TestPathHandlerMasksGroupedAttrs tests that masking recurses into groups.
func TestPathHandlerMasksGroupedAttrs(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger("/home/alice")
	logger.Info("test", slog.Group("copy",
		slog.String("src", "/home/alice/photos/a.jpg"),
		slog.String("dst", "/mnt/backup/a.jpg"),
	))

	output := buf.String()
	if !strings.Contains(output, "~/photos/a.jpg") {
		t.Errorf("expected grouped src to be masked, got %q", output)
	}
	if !strings.Contains(output, "/mnt/backup/a.jpg") {
		t.Errorf("expected grouped dst to pass through, got %q", output)
	}
}

// TestPathHandlerWithAttrs tests that attributes added via WithAttrs are
// masked as well.
func TestPathHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	base := NewPathHandler(handler, WithHomeDir("/home/alice"))

	logger := slog.New(base.WithAttrs([]slog.Attr{
		slog.String("root", "/home/alice/photos"),
	}))
	logger.Info("test")

	if !strings.Contains(buf.String(), "~/photos") {
		t.Errorf("expected WithAttrs value to be masked, got %q", buf.String())
	}
}

// TestPathHandlerEmptyHomeDisablesMasking tests the fallback when no home
// directory is known.
func TestPathHandlerEmptyHomeDisablesMasking(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger("")
	logger.Info("test", "path", "/home/alice/photos/a.jpg")

	if !strings.Contains(buf.String(), "/home/alice/photos/a.jpg") {
		t.Errorf("expected value to pass through with empty home, got %q", buf.String())
	}
}

// TestPathHandlerEnabled tests level delegation to the wrapped handler.
func TestPathHandlerEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := slog.New(NewPathHandler(handler, WithHomeDir("/home/alice")))

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug record to be dropped, got %q", buf.String())
	}

	logger.Warn("visible")
	if buf.Len() == 0 {
		t.Error("expected warn record to be written")
	}
}

// TestNewLogger tests verbosity level selection.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("verbose logger writes debug records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("debug message")
		if !strings.Contains(buf.String(), "debug message") {
			t.Errorf("expected debug output in verbose mode, got %q", buf.String())
		}
	})

	t.Run("quiet logger drops info records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Info("info message")
		if buf.Len() != 0 {
			t.Errorf("expected info to be dropped in quiet mode, got %q", buf.String())
		}
	})
}

// TestNewJSONLogger tests that the JSON variant emits JSON with masking.
func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true)

	logger.Info("test", "key", "value")

	output := buf.String()
	if !strings.Contains(output, `"msg":"test"`) {
		t.Errorf("expected JSON output, got %q", output)
	}
}
