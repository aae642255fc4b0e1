// Package config loads service configuration from the environment and wires
// the dependency container used to build services.
package config

import "time"

type DB struct {
	Url string `envconfig:"URL"`
}

type HTTP struct {
	Addr         string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
}

type Log struct {
	Level  int    `envconfig:"LEVEL" default:"0"`
	Format string `envconfig:"FORMAT" default:"json"`
}

// App is the root configuration for the security service.
type App struct {
	Env  string `envconfig:"ENV" default:"development"`
	DB   DB     `envconfig:"DB"`
	HTTP HTTP   `envconfig:"HTTP"`
	Log  Log    `envconfig:"LOG"`
}
