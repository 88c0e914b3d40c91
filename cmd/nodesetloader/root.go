package main

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "nodesetloader",
	Short: "Ingest an OPC UA NodeSet XML document and emit its nodes in dependency order",
	Long: `nodesetloader ingests an OPC UA NodeSet XML document: it resolves NodeIds,
aliases and namespace indices, classifies hierarchical reference types,
topologically sorts the resulting address space, and emits every node to
a consumer in dependency order.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if level, err := log.ParseLevel(viper.GetString("log-level")); err == nil {
			log.SetLevel(level)
		}
	},
}

// Execute runs the root command, exiting with a non-zero status on any
// fatal error — file-open or XML scan failure, per the exit code
// contract.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nodesetloader.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".nodesetloader")
	}

	viper.SetEnvPrefix("NODESETLOADER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	}
}
