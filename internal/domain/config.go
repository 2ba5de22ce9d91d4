package domain

type Config struct {
	Version       string
	ConfigPath    string
	Language      string      `yaml:"language"`
	Filters       FilterPrefs `yaml:"filters"`
	LogPath       string      `yaml:"logPath"`
	LogLevel      string      `yaml:"logLevel"`
	LogMaxSize    int         `yaml:"logMaxSize"` // in megabytes
	LogMaxBackups int         `yaml:"logMaxBackups"`
}

// FilterPrefs is read on every request-building call and only ever mutated
// through config.AppConfig.UpdateFilters.
type FilterPrefs struct {
	CoverQuality string `yaml:"coverQuality"`
	DataSaver    bool   `yaml:"dataSaver"`
	Port443Only  bool   `yaml:"port443Only"`

	Safe         bool `yaml:"safe"`
	Suggestive   bool `yaml:"suggestive"`
	Erotica      bool `yaml:"erotica"`
	Pornographic bool `yaml:"pornographic"`

	Japanese bool `yaml:"japanese"`
	Chinese  bool `yaml:"chinese"`
	Korean   bool `yaml:"korean"`
}

// DefaultFilterPrefs biases toward general audiences: mature tiers start
// disabled, all origin languages start enabled.
func DefaultFilterPrefs() FilterPrefs {
	return FilterPrefs{
		CoverQuality: "",
		DataSaver:    false,
		Port443Only:  false,
		Safe:         true,
		Suggestive:   true,
		Erotica:      false,
		Pornographic: false,
		Japanese:     true,
		Chinese:      true,
		Korean:       true,
	}
}
