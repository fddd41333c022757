package config

const (
	defaultAnnotationSuffix  = ".ann"
	defaultOutputSuffix      = ".conll"
	defaultTokenizerStrategy = "regex"
	defaultSegmentEntities   = 1000
	defaultRunLogDir         = "~/.local/share/annconv"
	defaultLogFormat         = "auto"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Annotations: Annotations{
			Suffix: defaultAnnotationSuffix,
		},
		Output: Output{
			Suffix: defaultOutputSuffix,
		},
		Tokenizer: Tokenizer{
			Strategy: defaultTokenizerStrategy,
		},
		Segment: Segment{
			MaxEntities: defaultSegmentEntities,
		},
		RunLog: RunLog{
			Enabled: true,
			Dir:     defaultRunLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
