package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/umputun/jobsrc/app/persistence"
	"github.com/umputun/jobsrc/app/sources"
	"github.com/umputun/jobsrc/app/uploads"
	"github.com/umputun/jobsrc/app/web"
)

var opts struct {
	DB      string `long:"db" env:"JOBSRC_DB" default:"jobsrc.db" description:"sqlite database file"`
	Uploads string `long:"uploads" env:"JOBSRC_UPLOADS" default:"public/uploads" description:"uploads directory"`
	Dbg     bool   `long:"dbg" env:"JOBSRC_DEBUG" description:"debug mode"`

	Web struct {
		Address   string  `long:"address" env:"ADDRESS" default:":8080" description:"web server listen address"`
		BaseURL   string  `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy, e.g. /jobsrc"`
		RateLimit float64 `long:"rate-limit" env:"RATE_LIMIT" default:"10" description:"max mutating requests per second per ip"`
	} `group:"web" namespace:"web" env-namespace:"JOBSRC_WEB"`

	Auth struct {
		JWTSecret string `long:"jwt-secret" env:"JWT_SECRET" description:"HMAC secret for bearer tokens"`
		Users     string `long:"users" env:"USERS" description:"yaml file with user name to bcrypt hash pairs"`
	} `group:"auth" namespace:"auth" env-namespace:"JOBSRC_AUTH"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging to file"`
		Filename        string `long:"filename" env:"FILENAME" default:"jobsrc.log" description:"log file name"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max log file size in megabytes"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"10" description:"max number of old log files to keep"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"30" description:"max days to keep old log files"`
		EnabledCompress bool   `long:"compress" env:"COMPRESS" description:"compress rotated log files"`
	} `group:"log" namespace:"log" env-namespace:"JOBSRC_LOG"`
}

var revision = "unknown"

func main() {
	fmt.Printf("jobsrc %s\n", revision)

	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}
	logOut := setupLogs()

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel) // handle SIGQUIT, SIGINT and SIGTERM

	err := run(ctx)
	if err != nil {
		log.Printf("[ERROR] %v", err)
	}
	if cerr := closeLogs(logOut); cerr != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

// run wires store, sources manager, uploads and web server, blocks until ctx is canceled
func run(ctx context.Context) error {
	store, err := persistence.NewSQLiteStore(opts.DB)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	fileServer, err := uploads.New(opts.Uploads)
	if err != nil {
		return fmt.Errorf("failed to make uploads server: %w", err)
	}
	log.Printf("[INFO] serving uploads from %s", fileServer.Root())

	users, err := loadUsers(opts.Auth.Users)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	srv, err := web.New(web.Config{
		Sources:   &sources.Manager{Store: store},
		Uploads:   fileServer.Handler(),
		BaseURL:   validateBaseURL(opts.Web.BaseURL),
		Version:   revision,
		JWTSecret: opts.Auth.JWTSecret,
		Users:     users,
		RateLimit: opts.Web.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to make web server: %w", err)
	}
	return srv.Run(ctx, opts.Web.Address)
}

// loadUsers reads yaml map of user name to bcrypt hash, empty file name means no basic auth users
func loadUsers(fileName string) (map[string]string, error) {
	if fileName == "" {
		return map[string]string{}, nil
	}
	data, err := os.ReadFile(fileName) //nolint:gosec // file name comes from cli
	if err != nil {
		return nil, fmt.Errorf("can't read users file %s: %w", fileName, err)
	}
	users := map[string]string{}
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("can't parse users file %s: %w", fileName, err)
	}
	for name, hash := range users {
		if !strings.HasPrefix(hash, "$2") {
			return nil, fmt.Errorf("user %q has no bcrypt hash", name)
		}
	}
	log.Printf("[INFO] loaded %d users from %s", len(users), fileName)
	return users, nil
}

// validateBaseURL normalizes base url, drops trailing slash and treats "/" as empty
func validateBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL != "" && !strings.HasPrefix(baseURL, "/") {
		baseURL = "/" + baseURL
	}
	return baseURL
}

// setupLogs configures lgr and returns the writer logs go to, rotated file if enabled, stdout otherwise
func setupLogs() io.Writer {
	var out io.Writer = os.Stdout
	if opts.Log.Enabled {
		out = &lumberjack.Logger{
			Filename:   opts.Log.Filename,
			MaxSize:    opts.Log.MaxSize,
			MaxBackups: opts.Log.MaxBackups,
			MaxAge:     opts.Log.MaxAge,
			Compress:   opts.Log.EnabledCompress,
		}
	}

	logOpts := []log.Option{log.Msec, log.LevelBraces, log.Out(out), log.Err(out)}
	if opts.Dbg {
		logOpts = append(logOpts, log.Debug, log.CallerFile, log.CallerFunc)
	}
	if opts.Auth.JWTSecret != "" {
		logOpts = append(logOpts, log.Secret(opts.Auth.JWTSecret))
	}
	log.Setup(logOpts...)
	return out
}

// closeLogs flushes and closes the log file made by setupLogs, stdout is left open
func closeLogs(w io.Writer) error {
	if w == io.Writer(os.Stdout) {
		return nil
	}
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			log.Printf("[INFO] got %v, shutting down", sig)
			cancel()
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGTERM)
}
