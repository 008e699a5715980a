package ffmpeg

import (
	"fmt"
	"strings"
)

// Binary is the transcoding engine executable invoked for every run.
const Binary = "ffmpeg"

// BuildArgs constructs the complete engine argument vector for a request,
// including the program name as the first element (nice when Niced is set).
// It also returns the resolved output path, generating one when the request
// leaves OutputFile empty.
//
// The base flag order is fixed: the engine is order-sensitive for codec and
// filter flags, so callers must not reorder the result.
func BuildArgs(req Request, engineVersion string) (args []string, outputPath string) {
	args = make([]string, 0, 32)

	if req.Niced {
		args = append(args, "nice")
	}

	args = append(args,
		Binary,
		"-hide_banner",
		"-n",
		"-i", req.InputFile,
		"-map", "0",
		"-codec:a", "copy",
		"-codec:s", "copy",
		"-codec:v", req.Codec,
		"-profile:v", req.Profile,
		"-level", req.Level,
		"-preset", req.Preset,
		"-crf", req.CRF,
	)

	if req.Tune != "" {
		args = append(args, "-tune", req.Tune)
	}

	// Extra is split on whitespace with no quoting or escaping, so a token
	// containing embedded whitespace cannot be represented. Existing callers
	// rely on the verbatim split.
	if req.Extra != "" {
		args = append(args, strings.Fields(req.Extra)...)
	}

	if !req.Interactive {
		args = append(args, "-nostdin")
	}

	outputPath = req.OutputFile
	if outputPath == "" {
		outputPath = OutputName(req, engineVersion)
	}
	args = append(args, outputPath)

	return args, outputPath
}

// OutputName derives the conventional generated output file name:
//
//	<stem> - ffmpeg:<ver>_c:<codec>_p:<profile>_l:<level>_r:<preset>_f:<crf>[_t:<tune>].mkv
//
// The stem is the input path with its last four characters stripped (a dot
// plus a three-character extension). Inputs with other extension lengths
// come out mis-truncated; the behavior is kept for compatibility with
// tooling that parses these names.
func OutputName(req Request, engineVersion string) string {
	stem := ""
	if n := len(req.InputFile); n > 4 {
		stem = req.InputFile[:n-4]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - ffmpeg:%s_c:%s_p:%s_l:%s_r:%s_f:%s",
		stem, engineVersion, req.Codec, req.Profile, req.Level, req.Preset, req.CRF)
	if req.Tune != "" {
		fmt.Fprintf(&b, "_t:%s", req.Tune)
	}
	b.WriteString(".mkv")
	return b.String()
}
