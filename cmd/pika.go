package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/hashicorp/hcl"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leftmike/pika/catalog"
	"github.com/leftmike/pika/flags"
	"github.com/leftmike/pika/repl"
	"github.com/leftmike/pika/sql"
)

var (
	pikaCmd = &cobra.Command{
		Use:               "pika",
		Short:             "Render qualified SQL identifiers",
		Long:              "Pika quotes and qualifies database, schema, and table names for SQL.",
		SilenceUsage:      true,
		PersistentPreRunE: pikaPreRun,
		PersistentPostRun: pikaPostRun,
	}

	logFile   = "pika.log"
	logLevel  = "info"
	logStderr = false
	logWriter io.WriteCloser

	configFile = "pika.hcl"
	noConfig   = false

	dialect     = "ansi"
	catalogFile = ""

	cfgVars   = map[string]*pflag.Flag{}
	cfg       = map[string]interface{}{}
	flgs      = flags.Default()
	usedFlags = map[string]struct{}{}
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		DisableLevelTruncation: true,
	})

	fs := pikaCmd.PersistentFlags()

	fs.StringVar(&logFile, "log-file", logFile, "`file` to use for logging")
	cfgVars["log-file"] = fs.Lookup("log-file")

	fs.StringVar(&logLevel, "log-level", logLevel,
		"log level: trace, debug, info, warn, error, fatal, or panic")
	cfgVars["log-level"] = fs.Lookup("log-level")

	fs.BoolVarP(&logStderr, "log-stderr", "s", logStderr, "log to standard error")

	fs.StringVar(&configFile, "config-file", configFile, "`file` to load config from")
	fs.BoolVar(&noConfig, "no-config", noConfig, "don't load config file")

	fs.StringVar(&dialect, "dialect", dialect, "`dialect` to quote identifiers for")
	cfgVars["dialect"] = fs.Lookup("dialect")

	fs.StringVar(&catalogFile, "catalog-file", catalogFile, "`file` to keep the catalog in")
	cfgVars["catalog-file"] = fs.Lookup("catalog-file")
}

func Execute() error {
	return pikaCmd.Execute()
}

func pikaPreRun(cmd *cobra.Command, args []string) error {
	cmd.Flags().Visit(
		func(flg *pflag.Flag) {
			usedFlags[flg.Name] = struct{}{}
		})

	if configFile != "" && !noConfig {
		err := loadConfig()
		if err != nil {
			return fmt.Errorf("pika: %s", err)
		}
	}

	if !logStderr && logFile != "" {
		var err error
		logWriter, err = os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			logWriter = nil
			return fmt.Errorf("pika: %s", err)
		}
		log.SetOutput(logWriter)
	}

	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("pika: %s", err)
	}
	log.SetLevel(ll)

	log.WithField("pid", os.Getpid()).Info("pika starting")
	return nil
}

func pikaPostRun(cmd *cobra.Command, args []string) {
	log.WithField("pid", os.Getpid()).Info("pika done")

	if logWriter != nil {
		logWriter.Close()
	}
}

func loadConfig() error {
	b, err := ioutil.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) && !usedConfigFile() {
			return nil
		}
		return err
	}

	err = hcl.Decode(&cfg, string(b))
	if err != nil {
		return err
	}

	for name, val := range cfg {
		if flg, ok := cfgVars[name]; ok {
			if flg == nil {
				continue
			}
			if _, ok := usedFlags[flg.Name]; ok {
				continue
			}
			err := flg.Value.Set(fmt.Sprintf("%v", val))
			if err != nil {
				return fmt.Errorf("%s: %s", name, err)
			}
		} else if f, ok := flags.LookupFlag(name); ok {
			b, ok := val.(bool)
			if !ok {
				return fmt.Errorf("%s: expected boolean value; got %v", name, val)
			}
			flgs[f] = b
		} else {
			return fmt.Errorf("%s is not a config variable", name)
		}
	}

	return nil
}

func usedConfigFile() bool {
	_, ok := usedFlags["config-file"]
	return ok
}

func newSession() (*repl.Session, error) {
	d, err := sql.LookupDialect(dialect)
	if err != nil {
		return nil, fmt.Errorf("pika: %s", err)
	}
	if flgs.GetFlag(flags.AsKeyword) {
		d = d.WithAsKeyword(true)
	}

	ses := &repl.Session{
		Dialect: d,
		Flags:   flgs,
	}
	if catalogFile != "" {
		ses.Catalog, err = catalog.Open(catalogFile, log.StandardLogger())
		if err != nil {
			return nil, fmt.Errorf("pika: %s", err)
		}
	}

	log.WithFields(log.Fields{
		"dialect": d,
		"catalog": catalogFile,
	}).Debug("session started")
	return ses, nil
}

func closeSession(ses *repl.Session) {
	if ses.Catalog != nil {
		err := ses.Catalog.Close()
		if err != nil {
			log.WithField("catalog", catalogFile).Error(err)
		}
	}
}
