// Package config loads environment variables into tagged structs.
//
// Values come from the process environment, completed by a .env file in the
// working directory when one exists. Variables already set in the
// environment win over the file.
//
//	type Config struct {
//		Addr  string `env:"HTTP_ADDR" envDefault:":8080"`
//		Token string `env:"MESTO_TOKEN,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config
