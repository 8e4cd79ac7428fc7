package config

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"
