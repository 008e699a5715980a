package ffmpeg

import "log/slog"

// Request describes a single transcode invocation. It is assembled once
// from resolved configuration and never mutated afterwards.
type Request struct {
	// Niced runs the engine under nice at lowest scheduler priority.
	Niced bool
	// InputFile is the media file to transcode. Required.
	InputFile string
	// OutputFile is the destination path. When empty, a name is generated
	// from the input path and codec parameters.
	OutputFile string
	// Codec is the video codec library, e.g. libx264.
	Codec   string
	Profile string
	Level   string
	Preset  string
	// CRF is the constant rate factor, passed through unmodified.
	CRF string
	// Tune is the optional -tune value; empty omits the flag.
	Tune string
	// Extra holds raw engine arguments split on whitespace and appended
	// verbatim. Tokens containing embedded whitespace cannot be expressed.
	Extra string
	// SubprocessOut is where engine output goes: a file path, or "-" to
	// inherit the supervisor's stdout.
	SubprocessOut string
	// Interactive leaves the engine's stdin reading enabled. When false,
	// -nostdin is appended so the engine never consumes terminal input.
	Interactive bool
}

// LogValue renders the full request for debug output.
func (r Request) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("niced", r.Niced),
		slog.String("input_file", r.InputFile),
		slog.String("output_file", r.OutputFile),
		slog.String("codec", r.Codec),
		slog.String("profile", r.Profile),
		slog.String("level", r.Level),
		slog.String("preset", r.Preset),
		slog.String("crf", r.CRF),
		slog.String("tune", r.Tune),
		slog.String("extra", r.Extra),
		slog.String("subprocess_out", r.SubprocessOut),
		slog.Bool("interactive", r.Interactive),
	)
}
