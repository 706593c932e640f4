package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings is the merged configuration from flags, environment, and the
// optional config file, in that order of priority.
type settings struct {
	Evaluator    string
	Precision    uint
	Width        int
	Separator    string
	Spaces       bool
	Excel        bool
	Translations map[string]string
	Given        []string
	Format       string
	In           string
	Lines        bool
	Echo         bool
	Verbose      bool
}

// flagKeys maps flag names to config keys where they differ.
var flagKeys = map[string]string{
	"prec":      "precision",
	"fmt":       "format",
	"translate": "translations",
	"n":         "lines",
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for _, name := range []string{"evaluator", "prec", "width", "separator", "spaces", "excel", "translate", "given", "fmt", "in", "n", "echo", "verbose"} {
		key := name
		if k, ok := flagKeys[name]; ok {
			key = k
		}
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

func loadSettings(cmd *cobra.Command, log *logrus.Logger) (*settings, error) {
	v := viper.New()
	v.SetDefault("evaluator", "double")
	v.SetDefault("precision", 64)
	v.SetDefault("width", 8)
	v.SetDefault("separator", ",")
	v.SetEnvPrefix("INFIX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	file, _ := cmd.Flags().GetString("config")
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.WithField("file", v.ConfigFileUsed()).Debug("loaded config")
	}

	s := settings{
		Evaluator:    strings.ToLower(v.GetString("evaluator")),
		Precision:    v.GetUint("precision"),
		Width:        v.GetInt("width"),
		Separator:    v.GetString("separator"),
		Spaces:       v.GetBool("spaces"),
		Excel:        v.GetBool("excel"),
		Translations: v.GetStringMapString("translations"),
		Given:        v.GetStringSlice("given"),
		Format:       v.GetString("format"),
		In:           v.GetString("in"),
		Lines:        v.GetBool("lines"),
		Echo:         v.GetBool("echo"),
		Verbose:      v.GetBool("verbose"),
	}
	if s.Precision == 0 {
		return nil, fmt.Errorf("precision must be positive")
	}
	if s.Width <= 0 {
		return nil, fmt.Errorf("width (%d) must be positive", s.Width)
	}
	if n := len([]rune(s.Separator)); n > 1 {
		return nil, fmt.Errorf("separator %q must be a single character", s.Separator)
	}
	return &s, nil
}

// separator returns the configured separator, or 0 for the grammar default.
func (s *settings) separator() rune {
	for _, r := range s.Separator {
		return r
	}
	return 0
}

// givens splits the name=value variable definitions.
func (s *settings) givens() ([][2]string, error) {
	r := make([][2]string, 0, len(s.Given))
	for _, g := range s.Given {
		name, value, ok := strings.Cut(g, "=")
		if !ok {
			return nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, g)
		}
		r = append(r, [2]string{strings.TrimSpace(name), strings.TrimSpace(value)})
	}
	return r, nil
}
