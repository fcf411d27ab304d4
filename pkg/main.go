package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/Eliott67/TwINSA/pkg/internal"
	"github.com/Eliott67/TwINSA/pkg/internal/cache"
	"github.com/Eliott67/TwINSA/pkg/internal/http"
	"github.com/Eliott67/TwINSA/pkg/internal/services"
	"github.com/Eliott67/TwINSA/pkg/internal/store"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.CyanString(" _____      ___ _   _ ____    _\n|_   _|_ _ |_ _| \\ | / ___|  / \\\n  | |\\ \\ /\\ / /| ||  \\| \\___ \\ / _ \\\n  | | \\ V  V / | || |\\  |___) / ___ \\\n  |_|  \\_/\\_/ |___|_| \\_|____/_/   \\_\\"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiCyan).Add(color.Bold).Sprintf("TwINSA"), pkg.AppVersion)
	fmt.Printf("The tiny social network\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Prepare the in-process cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Load the flat-file stores
	if err := store.Open(
		viper.GetString("database.accounts_path"),
		viper.GetString("database.posts_path"),
	); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when loading data files.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 5m", services.DoAutoSnapshot)
	quartz.Start()

	// Server
	go http.NewServer().Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
	store.Flush()
}
