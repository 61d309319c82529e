// Package config manages user-level settings stored at ~/.initt/config.yaml.
// Values may also come from INITT_* environment variables, which take
// precedence over the file.
package config
