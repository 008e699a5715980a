package config

const (
	defaultCodecLibrary  = "libx264"
	defaultCodecProfile  = "High"
	defaultCodecLevel    = "6.2"
	defaultCodecPreset   = "9"
	defaultCodecCRF      = "17"
	defaultSubprocessOut = "-"
	defaultLogDir        = "~/.local/share/fftranscode/logs"
	defaultHistoryDB     = "~/.local/share/fftranscode/history.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults. The codec
// values mirror the tool's traditional ffmpeg invocation: libx264 at High
// profile, level 6.2, preset 9, CRF 17.
func Default() Config {
	return Config{
		Codec: Codec{
			Library: defaultCodecLibrary,
			Profile: defaultCodecProfile,
			Level:   defaultCodecLevel,
			Preset:  defaultCodecPreset,
			CRF:     defaultCodecCRF,
		},
		Run: Run{
			Niced:         true,
			Interactive:   false,
			SubprocessOut: defaultSubprocessOut,
		},
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
