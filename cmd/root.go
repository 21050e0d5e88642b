package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talent-matcher/internal/filtering"
	"github.com/spigell/talent-matcher/internal/logger"
	"github.com/spigell/talent-matcher/internal/matching"
	"github.com/spigell/talent-matcher/internal/pool"
)

const (
	app       = "talent-matcher"
	envPrefix = "TALENT_MATCHER"
)

type Config struct {
	Pool        string          `mapstructure:"pool"`
	ExcludeFile string          `mapstructure:"exclude-file"`
	Matching    *MatchingConfig `mapstructure:"matching"`
	Filters     *FiltersConfig  `mapstructure:"filters"`
}

type MatchingConfig struct {
	ExperienceCap int     `mapstructure:"experience-cap"`
	LocationBonus float64 `mapstructure:"location-bonus"`
	Workers       int     `mapstructure:"workers"`
}

type FiltersConfig struct {
	MinScore float64 `mapstructure:"min-score"`
	Limit    int     `mapstructure:"limit"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-matcher ranks candidates for a job posting (and jobs for a candidate)",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("pool", "p", "", "a YAML or JSON file with jobs and candidates")
	rootCmd.PersistentFlags().Int("experience-cap", matching.DefaultExperienceCap, "years of experience that earn full experience credit")
	rootCmd.PersistentFlags().Float64("location-bonus", 0, "score added when job and candidate locations match")
	rootCmd.PersistentFlags().Int("workers", 0, "goroutines used to score large pools (0 scores sequentially)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("pool", rootCmd.PersistentFlags().Lookup("pool"))
	viper.BindPFlag("matching.experience-cap", rootCmd.PersistentFlags().Lookup("experience-cap"))
	viper.BindPFlag("matching.location-bonus", rootCmd.PersistentFlags().Lookup("location-bonus"))
	viper.BindPFlag("matching.workers", rootCmd.PersistentFlags().Lookup("workers"))
}

func setDefaults() {
	viper.SetDefault("pool", "")
	viper.SetDefault("exclude-file", "")
	viper.SetDefault("matching.experience-cap", matching.DefaultExperienceCap)
	viper.SetDefault("matching.location-bonus", 0.0)
	viper.SetDefault("matching.workers", 0)
	viper.SetDefault("filters.min-score", 0.0)
	viper.SetDefault("filters.limit", filtering.DefaultLimit)
}

func initConfig() {
	// A missing .env is fine, a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{ExperienceCap: matching.DefaultExperienceCap}
	}
	if config.Filters == nil {
		config.Filters = &FiltersConfig{Limit: filtering.DefaultLimit}
	}

	return config, nil
}

func (c *MatchingConfig) Params() matching.Params {
	return matching.Params{
		ExperienceCap: c.ExperienceCap,
		LocationBonus: c.LocationBonus,
		Workers:       c.Workers,
	}
}

// session holds what every matching command needs.
type session struct {
	runID  string
	logger *zap.Logger
	config *Config
	pool   *pool.Pool
	engine *matching.Engine
}

// newSession builds the logger, reads the config, loads the pool and creates the engine.
// Any failure is fatal.
func newSession(command string) *session {
	base, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	runID := uuid.NewString()
	l := logger.WithRunFields(base, runID, "", "")

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Info("starting the talent-matcher", zap.String("command", command), zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if strings.TrimSpace(config.Pool) == "" {
		l.Fatal("pool file is required",
			zap.String("hint", "use --pool, the 'pool' key in the configuration file or "+envPrefix+"_POOL"),
		)
	}

	p, err := pool.Load(config.Pool)
	if err != nil {
		l.Fatal("loading the pool", zap.String("path", config.Pool), zap.Error(err))
	}

	l.Info("pool loaded",
		zap.Int("jobs", len(p.Jobs)),
		zap.Int("active_jobs", len(p.ActiveJobs())),
		zap.Int("candidates", len(p.Candidates)),
	)

	engine, err := matching.NewEngine(config.Matching.Params())
	if err != nil {
		l.Fatal("creating the matching engine", zap.Error(err))
	}

	return &session{
		runID:  runID,
		logger: l,
		config: config,
		pool:   p,
		engine: engine,
	}
}

// bindFilterFlags binds the result filter flags of the command being run.
// Several commands define them, so binding happens before run rather than in init.
func bindFilterFlags(cmd *cobra.Command) {
	viper.BindPFlag("filters.min-score", cmd.Flags().Lookup("min-score"))
	viper.BindPFlag("filters.limit", cmd.Flags().Lookup("limit"))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
