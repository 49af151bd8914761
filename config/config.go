package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/roomgrid/grid"
	"github.com/zucenko/roomgrid/layout"
)

type Settings struct {
	Port          string
	Layout        layout.Config
	TriggerChance float64
	LogLevel      log.Level
}

func Defaults() Settings {
	cfg := layout.Config{
		Count:         3,
		Rows:          3,
		Columns:       3,
		Spacing:       20,
		DensityFactor: 0.05,
		Seed:          time.Now().UnixNano(),
	}
	return Settings{
		Port:          "8080",
		Layout:        cfg,
		TriggerChance: 0.5,
		LogLevel:      log.InfoLevel,
	}
}

// Load reads an optional .env file and then the environment. Unset variables keep their defaults.
func Load(files ...string) (Settings, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("no env file loaded: %v", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Settings, error) {
	s := Defaults()
	if v := getenv("PORT"); v != "" {
		s.Port = v
	}
	var err error
	set := func(name string, parse func(string) error) {
		if err != nil {
			return
		}
		if v := getenv(name); v != "" {
			if e := parse(v); e != nil {
				err = fmt.Errorf("%s=%q: %w", name, v, e)
			}
		}
	}
	atoi := func(dst *int) func(string) error {
		return func(v string) (e error) {
			*dst, e = strconv.Atoi(v)
			return
		}
	}
	atof := func(dst *float64) func(string) error {
		return func(v string) (e error) {
			*dst, e = strconv.ParseFloat(v, 64)
			return
		}
	}

	set("GRID_ROWS", atoi(&s.Layout.Rows))
	set("GRID_COLUMNS", atoi(&s.Layout.Columns))
	set("GRID_SPACING", atof(&s.Layout.Spacing))
	set("GRID_DENSITY", atof(&s.Layout.DensityFactor))
	set("LAYOUT_COUNT", atoi(&s.Layout.Count))
	set("LAYOUT_SEED", func(v string) (e error) {
		s.Layout.Seed, e = strconv.ParseInt(v, 10, 64)
		return
	})
	set("TRIGGER_CHANCE", atof(&s.TriggerChance))
	set("LOG_LEVEL", func(v string) (e error) {
		s.LogLevel, e = log.ParseLevel(v)
		return
	})
	if err != nil {
		return s, err
	}
	if s.TriggerChance < 0 || s.TriggerChance > 1 {
		return s, fmt.Errorf("TRIGGER_CHANCE %v out of [0,1]: %w", s.TriggerChance, grid.ErrConfiguration)
	}
	return s, s.Layout.Validate()
}
