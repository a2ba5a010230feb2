package urlkit

// Config configures a Builder.
type Config struct {
	// Prefix is prepended to every route declared on the builder.
	Prefix string
	// Name is a display label, it does not take part in path building.
	Name string
	// SearchParams supplies the query source used by Parse when no
	// explicit source is given.
	SearchParams SearchParamsHook
	// Logger receives validation and parse diagnostics.
	Logger Logger
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	SearchParams: EmptySource,
	Logger:       &defaultLogger{},
}

func configDefault(config ...Config) Config {
	if len(config) == 0 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.SearchParams == nil {
		cfg.SearchParams = ConfigDefault.SearchParams
	}

	if cfg.Logger == nil {
		cfg.Logger = ConfigDefault.Logger
	}

	return cfg
}
