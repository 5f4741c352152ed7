package config

// Cleanup modes accepted by cleanup.mode.
const (
	CleanupOff       = "off"
	CleanupImmediate = "immediate"
	CleanupBatch     = "batch"
)

const (
	defaultLanguage         = "de"
	defaultAudioDownloadDir = "~/.local/share/ytsplit/audio"
	defaultSplitDir         = "~/.local/share/ytsplit/splits"
	defaultLogDir           = "~/.local/share/ytsplit/logs"
	defaultTrashDir         = "~/.local/share/ytsplit/trash"
	defaultFadeSeconds      = 0.5
	defaultAudioCodec       = "libmp3lame"
	defaultAudioBitrate     = "192k"
	defaultRetries          = "10"
	defaultFragmentRetries  = "10"
	defaultRetrySleep       = "linear=1::5"
	defaultCleanupMode      = CleanupBatch
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Language: defaultLanguage,
		// VideoDownloadDir stays empty so normalization can derive it from
		// the audio dir when the config file does not set one.
		Paths: Paths{
			AudioDownloadDir: defaultAudioDownloadDir,
			SplitDir:         defaultSplitDir,
			LogDir:           defaultLogDir,
		},
		Timecode: Timecode{
			DefaultFade:          defaultFadeSeconds,
			FilenameIncludeRange: true,
			FilenameIncludeFade:  true,
		},
		Audio: Audio{
			Codec:   defaultAudioCodec,
			Bitrate: defaultAudioBitrate,
		},
		Downloader: Downloader{
			Retries:         defaultRetries,
			FragmentRetries: defaultFragmentRetries,
			RetrySleep:      defaultRetrySleep,
		},
		Cleanup: Cleanup{
			Mode:     defaultCleanupMode,
			TrashDir: defaultTrashDir,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
