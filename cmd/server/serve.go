package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peekweb/internal/apiclient"
	"peekweb/internal/config"
	"peekweb/internal/logger"
	"peekweb/internal/router"
	"peekweb/internal/session"
	"peekweb/web"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type Options struct {
	EnvFile string
	Port    string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.EnvFile, "env", "e", "", "load environment from the given dotenv file")
	flagSet.StringVarP(&o.Port, "port", "p", "", "listen port, overrides PORT")
}

func NewServeCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	var files []string
	if opts.EnvFile != "" {
		files = append(files, opts.EnvFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Port != "" {
		cfg.Port = opts.Port
	}

	if err := logger.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	store, err := session.NewStore(cfg)
	if err != nil {
		return err
	}

	api := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithRateLimit(cfg.APIQPS, cfg.APIBurst),
	)

	templates, err := fs.Sub(web.Files, "templates")
	if err != nil {
		return err
	}
	static, err := fs.Sub(web.Files, "static")
	if err != nil {
		return err
	}

	r, err := router.New(router.Deps{
		Config:    cfg,
		API:       api,
		Store:     store,
		Templates: templates,
		Static:    static,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.WithField("api", cfg.APIBaseURL).Infof("%s server starting on :%s", cfg.SiteName, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("listen: %v", err)
		}
	}()

	// 监听 Ctrl+C 和 SIGTERM，优雅退出
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs

	logger.Log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
