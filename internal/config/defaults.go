package config

const (
	defaultListDir       = "~/lists"
	defaultFileExtension = ".list"
	defaultDatabasePath  = "~/.local/share/cinelist/cinelist.db"
	defaultCacheDir      = "~/.local/share/cinelist/cache"
	defaultLogDir        = "~/.local/share/cinelist/logs"
	defaultCommitEvery   = 10000
	defaultProgressEvery = 100000
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ListDir:       defaultListDir,
			FileExtension: defaultFileExtension,
			DatabasePath:  defaultDatabasePath,
			CacheDir:      defaultCacheDir,
			LogDir:        defaultLogDir,
		},
		Ingest: Ingest{
			CommitEvery:   defaultCommitEvery,
			ProgressEvery: defaultProgressEvery,
			CacheEnabled:  true,
			CacheOnly:     false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
