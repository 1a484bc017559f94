package options

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/env"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/log"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

type SetBy int

const (
	SetByDefault SetBy = iota
	SetByFlag
	SetByEnv
	SetManually
)

const WorkingDirOpt = "working-dir"

// Options contains parsed flags and ENV variables.
type Options struct {
	*viper.Viper
	naming     *env.NamingConvention
	setBy      map[string]SetBy
	workingDir string
}

func New() *Options {
	naming := env.NewNamingConvention(env.Prefix)
	return &Options{
		Viper:  viper.New(),
		naming: naming,
		setBy:  make(map[string]SetBy),
	}
}

// Load values from flags, ENVs and ".env" files from the working directory.
// Priority: flag > OS ENV > ".env" file > flag default.
func (o *Options) Load(ctx context.Context, logger log.Logger, osEnvs *env.Map, fs filesystem.Fs, flags *pflag.FlagSet) error {
	if err := o.BindPFlags(flags); err != nil {
		return errors.Errorf("cannot bind flags: %w", err)
	}

	// Working dir
	workingDir := ""
	if f := flags.Lookup(WorkingDirOpt); f != nil {
		workingDir = f.Value.String()
	}
	if workingDir == "" {
		// nolint: forbidigo
		wd, err := os.Getwd()
		if err != nil {
			return errors.Errorf("cannot get working dir from OS: %w", err)
		}
		workingDir = wd
	}
	o.workingDir = strings.TrimRight(workingDir, string(os.PathSeparator))

	// Load ".env" files, OS ENVs take precedence
	envs := env.LoadDotEnv(ctx, logger, osEnvs, fs, []string{o.workingDir})

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			o.setBy[f.Name] = SetByFlag
			return
		}
		if value, found := envs.Lookup(o.naming.FlagToEnv(f.Name)); found && value != "" {
			o.Viper.Set(f.Name, value)
			o.setBy[f.Name] = SetByEnv
		}
	})

	return nil
}

// Set value manually, for example from an interactive dialog.
func (o *Options) Set(key string, value any) {
	o.Viper.Set(key, value)
	o.setBy[key] = SetManually
}

func (o *Options) KeySetBy(key string) SetBy {
	return o.setBy[key]
}

func (o *Options) WorkingDir() string {
	return o.workingDir
}

// MissingRequired returns an error with one bullet per each empty key.
func (o *Options) MissingRequired(keys ...string) error {
	if errs := o.Missing(keys...); errs.Len() > 0 {
		return errors.PrefixError(errs, "invalid parameters")
	}
	return nil
}

// Missing returns one error per each empty key.
func (o *Options) Missing(keys ...string) errors.MultiError {
	errs := errors.NewMultiError()
	for _, key := range keys {
		if o.GetString(key) != "" {
			continue
		}
		errs.Append(errors.Errorf(
			`missing %s, please use "--%s" flag or ENV variable "%s"`,
			strcase.ToDelimited(key, ' '),
			key,
			o.naming.FlagToEnv(key),
		))
	}
	return errs
}

// Dump options for debugging, secrets are hidden.
func (o *Options) Dump() string {
	keys := o.AllKeys()
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Parsed options:")
	for _, key := range keys {
		value := fmt.Sprintf("%v", o.Get(key))
		if isSecret(key) && value != "" {
			value = "*****"
		}
		b.WriteString(fmt.Sprintf("\n  %s = %q", key, value))
	}
	return b.String()
}

func isSecret(key string) bool {
	return strings.Contains(key, "secret") || strings.Contains(key, "token") || strings.Contains(key, "password")
}
