package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
)

func setVersionHelper(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestVersionHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFMPEG_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestVersionExtractsBanner(t *testing.T) {
	setVersionHelper(t, "banner")

	got := Version(context.Background(), nil)
	if got != "6.0-static" {
		t.Fatalf("unexpected version: %q", got)
	}
}

func TestVersionMissIsNonFatal(t *testing.T) {
	setVersionHelper(t, "garbage")

	if got := Version(context.Background(), nil); got != "" {
		t.Fatalf("expected empty version on banner miss, got %q", got)
	}
}

func TestVersionRequiresBannerAtStartOfOutput(t *testing.T) {
	// The pattern anchors at the start of the combined output; a preceding
	// line defeats the match entirely.
	setVersionHelper(t, "preceded")

	if got := Version(context.Background(), nil); got != "" {
		t.Fatalf("expected miss when banner is not the first line, got %q", got)
	}
}

func TestVersionProbeFailureIsNonFatal(t *testing.T) {
	setVersionHelper(t, "fail")

	if got := Version(context.Background(), nil); got != "" {
		t.Fatalf("expected empty version on probe failure, got %q", got)
	}
}

func TestVersionHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "banner":
		fmt.Println("ffmpeg version 6.0-static Copyright (c) 2000-2023 the FFmpeg developers")
		fmt.Println("built with gcc 12")
		os.Exit(0)
	case "garbage":
		fmt.Println("no banner here")
		os.Exit(0)
	case "preceded":
		fmt.Println("preamble")
		fmt.Println("ffmpeg version 6.0 Copyright (c) 2000-2023 the FFmpeg developers")
		os.Exit(0)
	case "fail":
		fmt.Fprintln(os.Stderr, "ffmpeg: not found")
		os.Exit(127)
	default:
		os.Exit(0)
	}
}
