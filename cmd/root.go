package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

var (
	cfgFile string
	envFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "pbsm [path]",
		Short: "Extract transactions from DBS/POSB statements",
		Long: `pbsm classifies DBS/POSB statement PDFs (PayLah! wallet, credit card,
cashback, accounts) and extracts their transactions.`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				viper.Set("target", args[0])
				runExtract(extractCmd, []string{})
				return
			}
			cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.pbsm.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with wallet, card and NAS settings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	logger.Init(verbose)
}

// initConfig layers the embedded defaults, an optional config file and the
// environment (including a .env file) into the global viper instance.
func initConfig() {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := gotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", envFile, err)
				os.Exit(1)
			}
		}
	}

	v := viper.GetViper()
	config.BindEnv(v)
	if err := config.ReadDefaults(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading embedded configuration: %v\n", err)
		os.Exit(1)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		v.AddConfigPath(".")
		v.AddConfigPath(home)
		v.SetConfigName(".pbsm")
		v.SetConfigType("yaml")
	}

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfig decodes the global viper state.
func loadConfig() *config.Config {
	cfg, err := config.Load(viper.GetViper())
	cobra.CheckErr(err)
	return cfg
}
