package config

// Redis connection part of configuration
type Redis struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Postgres connection part of configuration
type Postgres struct {
	DSN string `yaml:"dsn"`
}

// Assistant documentation answering configuration
type Assistant struct {
	Token string `yaml:"token"`
	Model string `yaml:"model"`
}

// Private part of configuration
type Private struct {
	Token     string    `yaml:"token"`
	Prefix    string    `yaml:"prefix"`
	Redis     Redis     `yaml:"redis"`
	Postgres  Postgres  `yaml:"postgres"`
	Assistant Assistant `yaml:"assistant"`
}

// Server specific part of configuration
type Server struct {
	GuildID string `yaml:"id"`
	Prefix  string `yaml:"prefix"`
}

// Root of configuration
type Root struct {
	Servers []Server `yaml:"servers"`
	Private Private  `yaml:"private"`
}
