package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/senka-oj/senka"
	"github.com/senka-oj/senka/api"
	"github.com/senka-oj/senka/internal/config"
	"github.com/senka-oj/senka/sudoapi"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	confPath = flag.String("config", "./config.toml", "Config path")
)

func main() {
	flag.Parse()

	if err := config.Load(*confPath); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := initLogger(config.Common.LogDir, config.Common.Debug); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := Senka(); err != nil {
		zap.S().Fatal(err)
	}
}

func Senka() error {
	zap.S().Infof("Starting Senka %s", senka.Version)

	if config.Common.Debug {
		zap.S().Warn("Debug mode activated, expect worse performance")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	base, err := sudoapi.InitializeBaseAPI(ctx)
	if err != nil {
		return err
	}
	defer base.Close()

	r := chi.NewRouter()

	corsConfig := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Language", "X-Judge-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(corsConfig.Handler)

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(20 * time.Second))

	r.Mount("/api", api.New(base).Handler())

	server := &http.Server{
		Addr:    net.JoinHostPort("localhost", strconv.Itoa(config.Common.Port)),
		Handler: r,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Error(err)
			cancel()
		}
	}()

	zap.S().Info("Successfully started")
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	<-ctx.Done()

	zap.S().Info("Shutting Down")
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := server.Shutdown(shutCtx); err != nil && !errors.Is(err, context.Canceled) {
		zap.S().Error(err)
	}

	return nil
}

func initLogger(logDir string, debug bool) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	var encConf zapcore.EncoderConfig
	if debug {
		encConf = zap.NewDevelopmentEncoderConfig()
	} else {
		encConf = zap.NewProductionEncoderConfig()
	}
	encConf.EncodeTime = zapcore.TimeEncoder(func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339))
	})
	encConf.EncodeLevel = zapcore.CapitalColorLevelEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encConf), zapcore.AddSync(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(encConf), zapcore.AddSync(&lumberjack.Logger{
			Filename: path.Join(logDir, "server.log"),
			MaxSize:  200, // MB
			Compress: true,
		}), level),
	)
	logg := zap.New(core, zap.AddCaller())

	zap.ReplaceGlobals(logg)
	slog.SetDefault(slog.New(senka.GetSlogHandler(debug, os.Stdout)))

	return nil
}
