package main

import (
	"io"
	"os"

	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load a .env file if there is one. All configuration is done
	// through environment variables.
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Tokens cannot be verified without a secret, refuse to start
	// without one
	if _, ok := os.LookupEnv("JWT_SECRET"); !ok {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		dataDir := "data"
		err := os.MkdirAll(dataDir, os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		dsn = "data/expenses.db"
	}

	err := models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, err := router.Config()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(r.Group("/"))

	// gin reads the PORT environment variable, defaulting to 8080
	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
