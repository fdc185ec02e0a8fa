package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"fashionhub/common/log"
	"fashionhub/service"
	"fashionhub/service/profile"
)

const (
	greetingBanner = `FashionHub appearance & access service`
)

var (
	serviceProfile *profile.Profile
	mode           string
	port           int
	data           string

	rootCmd = &cobra.Command{
		Use:   "fashionhub",
		Short: "The storefront's appearance and access backend",
		Run: func(_cmd *cobra.Command, _args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			s, err := service.NewService(ctx, serviceProfile)
			if err != nil {
				cancel()
				log.Error("failed to create service", zap.Error(err))
				return
			}

			println(greetingBanner)
			fmt.Printf("Version %s has been started on port %d\n", serviceProfile.Version, serviceProfile.Port)
			if err := s.Run(ctx); err != nil {
				log.Error("failed to run service", zap.Error(err))
			}
		},
	}
)

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("port", 8081)

	rootCmd.PersistentFlags().StringVarP(&mode, "mode", "m", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 8081, "port of server")
	rootCmd.PersistentFlags().StringVarP(&data, "data", "d", "", "data directory")

	if err := viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data")); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("fashionhub")
	viper.AutomaticEnv()

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	var err error
	serviceProfile, err = profile.GetProfile()
	if err != nil {
		fmt.Printf("failed to get profile, error: %+v\n", err)
		os.Exit(1)
	}

	if err := log.Initializes(serviceProfile.Mode); err != nil {
		fmt.Printf("failed to initialize logger, error: %+v\n", err)
		os.Exit(1)
	}

	fmt.Printf(`---
Server profile
dsn: %s
port: %d
mode: %s
version: %s
---
`, serviceProfile.DSN, serviceProfile.Port, serviceProfile.Mode, serviceProfile.Version)
}

func main() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
