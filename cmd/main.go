package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"daydash/internal/agenda"
	"daydash/internal/config"
	"daydash/internal/google"
	"daydash/internal/icloud"
	"daydash/internal/journal"
	"daydash/internal/quote"
	"daydash/internal/store"
)

func main() {
	// Load .env first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "daydash",
		Usage: "Personal dashboard: today's calendar, checklist, journal and quote.",
		Commands: []*cli.Command{
			authCommand(),
			todayCommand(),
			calendarsCommand(),
			reconnectCommand(),
			quoteCommand(),
			journalCommand(),
			checklistCommand(),
			publishCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	return config.Load(config.DefaultPath).FromEnv()
}

func setupLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// stdinConsent prompts for the authorization code on stdin, the desktop
// out-of-band flow.
func stdinConsent(authURL string) (string, error) {
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)
	fmt.Print("Enter Authorization Code: ")
	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}

// buildService wires the calendar stack. consent may be nil for commands
// that must not prompt.
func buildService(logger *slog.Logger, cfg config.Config, consent google.ConsentFunc) *agenda.Service {
	oauthConfig, err := google.LoadClientConfig(os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"), cfg.CredentialsFile)
	if err != nil {
		if errors.Is(err, google.ErrMissingClientConfig) {
			logger.Warn("Google client configuration missing; calendar features are disabled until it is set up", "error", err)
		} else {
			logger.Warn("Could not load Google client configuration", "error", err)
		}
		oauthConfig = nil
	}

	auth := google.NewAuthenticator(logger, google.NewTokenStore(cfg.TokenFile), oauthConfig, consent)
	client := google.NewClient(auth, logger)

	var display *time.Location
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			logger.Warn("Invalid timezone in config, using local", "timezone", cfg.Timezone, "error", err)
		} else {
			display = loc
		}
	}

	return agenda.NewService(logger, auth, client, agenda.NewResolver(cfg.Timezone), display)
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authorize access to Google Calendar and store the token.",
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			cfg := loadConfig()

			oauthConfig, err := google.LoadClientConfig(os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"), cfg.CredentialsFile)
			if err != nil {
				return fmt.Errorf("google client configuration: %w", err)
			}

			auth := google.NewAuthenticator(logger, google.NewTokenStore(cfg.TokenFile), oauthConfig, stdinConsent)
			if err := auth.Ensure(c.Context); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}
			logger.Info("Authorized and saved token", "file", cfg.TokenFile)
			return nil
		},
	}
}

func todayCommand() *cli.Command {
	return &cli.Command{
		Name:  "today",
		Usage: "Show today's dashboard: greeting, quote, events, schedule and checklist.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "calendar", Usage: "Calendar ID to fetch (defaults to config)."},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			cfg := loadConfig()
			now := time.Now()

			fmt.Printf("%s, %s!\n", agenda.Greeting(now), cfg.UserName)
			fmt.Printf("Today is %s\n\n", now.Format("Monday, January 2, 2006"))

			quotes := quote.NewService(logger, ".", cfg.QuoteKeyFile)
			text, source := quotes.Daily(now)
			fmt.Printf("Quote of the Day: %s  [%s]\n\n", text, source)

			service := buildService(logger, cfg, stdinConsent)
			calendarID := c.String("calendar")
			if calendarID == "" {
				calendarID = cfg.CalendarID
			}

			events := service.FetchTodayEvents(c.Context, calendarID)
			if len(events) == 0 {
				fmt.Println("No Google Calendar events for today!")
			} else {
				fmt.Println("From Google Calendar:")
				for _, ev := range events {
					fmt.Printf("  %s  %s\n", ev.TimeRange, ev.Title)
					if ev.Location != "" {
						fmt.Printf("      %s\n", ev.Location)
					}
					if ev.Description != "" && len(ev.Description) < 100 {
						fmt.Printf("      %s\n", ev.Description)
					}
				}
			}

			data := store.Open(logger, store.DefaultPath)
			if len(data.Schedule) > 0 {
				fmt.Println("\nManual Events:")
				for _, entry := range data.Schedule {
					fmt.Printf("  %s  %s\n", entry.Time, entry.Title)
					if entry.Location != "" {
						fmt.Printf("      %s\n", entry.Location)
					}
				}
			}

			fmt.Println("\nDaily Progress:")
			for category := range data.Checklist {
				done, total := data.Progress(category)
				fmt.Printf("  %s: %d/%d completed\n", category, done, total)
			}
			return nil
		},
	}
}

func calendarsCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendars",
		Usage: "List the calendars available to the account.",
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			service := buildService(logger, loadConfig(), stdinConsent)

			calendars := service.ListCalendars(c.Context)
			if len(calendars) == 0 {
				fmt.Println("No calendars available.")
				return nil
			}
			for _, cal := range calendars {
				fmt.Printf("%s\t%s\n", cal.ID, cal.DisplayName)
			}
			return nil
		},
	}
}

func reconnectCommand() *cli.Command {
	return &cli.Command{
		Name:  "reconnect",
		Usage: "Drop the stored credential; the next fetch re-authorizes.",
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			service := buildService(logger, loadConfig(), nil)
			if err := service.Reconnect(); err != nil {
				return fmt.Errorf("reconnect: %w", err)
			}
			fmt.Println("Calendar disconnected. Run 'auth' or 'today' to reconnect.")
			return nil
		},
	}
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Print today's quote.",
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			cfg := loadConfig()
			text, source := quote.NewService(logger, ".", cfg.QuoteKeyFile).Daily(time.Now())
			fmt.Printf("%s  [%s]\n", text, source)
			return nil
		},
	}
}

func journalCommand() *cli.Command {
	return &cli.Command{
		Name:  "journal",
		Usage: "Work with today's journal file.",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print today's journal.",
				Action: func(c *cli.Context) error {
					cfg := loadConfig()
					content, err := journal.New(cfg.JournalPath).LoadToday(time.Now())
					if err != nil {
						return err
					}
					fmt.Println(content)
					return nil
				},
			},
			{
				Name:      "append",
				Usage:     "Append a line to today's journal.",
				ArgsUsage: "<text>",
				Action: func(c *cli.Context) error {
					cfg := loadConfig()
					j := journal.New(cfg.JournalPath)
					now := time.Now()
					content, err := j.LoadToday(now)
					if err != nil {
						return err
					}
					if content != "" {
						content += "\n"
					}
					content += strings.Join(c.Args().Slice(), " ") + "\n"
					return j.SaveToday(now, content)
				},
			},
			{
				Name:  "timestamp",
				Usage: "Insert the current time into today's journal.",
				Action: func(c *cli.Context) error {
					cfg := loadConfig()
					j := journal.New(cfg.JournalPath)
					now := time.Now()
					content, err := j.LoadToday(now)
					if err != nil {
						return err
					}
					return j.SaveToday(now, journal.WithTimestamp(content, now))
				},
			},
			{
				Name:  "recent",
				Usage: "List the most recent journal files.",
				Action: func(c *cli.Context) error {
					cfg := loadConfig()
					names, err := journal.New(cfg.JournalPath).Recent(5)
					if err != nil {
						return err
					}
					for _, name := range names {
						fmt.Println(name)
					}
					return nil
				},
			},
		},
	}
}

func checklistCommand() *cli.Command {
	return &cli.Command{
		Name:  "checklist",
		Usage: "Manage the daily checklist.",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show every category with progress.",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					data := store.Open(logger, store.DefaultPath)
					for category, items := range data.Checklist {
						done, total := data.Progress(category)
						fmt.Printf("%s (%d/%d completed)\n", category, done, total)
						for i, item := range items {
							mark := " "
							if item.Done {
								mark = "x"
							}
							fmt.Printf("  [%s] %d. %s\n", mark, i, item.Task)
						}
					}
					return nil
				},
			},
			{
				Name:      "toggle",
				Usage:     "Toggle one item.",
				ArgsUsage: "<category> <index>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: checklist toggle <category> <index>")
					}
					index, err := strconv.Atoi(c.Args().Get(1))
					if err != nil {
						return fmt.Errorf("index must be a number: %w", err)
					}
					logger := setupLogger()
					data := store.Open(logger, store.DefaultPath)
					data.ToggleItem(c.Args().Get(0), index)
					return data.Save()
				},
			},
			{
				Name:      "add",
				Usage:     "Add an item to a category.",
				ArgsUsage: "<category> <task>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return fmt.Errorf("usage: checklist add <category> <task>")
					}
					logger := setupLogger()
					data := store.Open(logger, store.DefaultPath)
					data.AddItem(c.Args().Get(0), strings.Join(c.Args().Slice()[1:], " "))
					return data.Save()
				},
			},
			{
				Name:  "reset",
				Usage: "Uncheck everything and clear the manual schedule for a new day.",
				Action: func(c *cli.Context) error {
					logger := setupLogger()
					data := store.Open(logger, store.DefaultPath)
					data.ResetDay()
					return data.Save()
				},
			},
		},
	}
}

func publishCommand() *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "Push today's manual schedule to an iCloud calendar over CalDAV.",
		Action: func(c *cli.Context) error {
			logger := setupLogger()
			data := store.Open(logger, store.DefaultPath)
			if len(data.Schedule) == 0 {
				fmt.Println("Nothing to publish.")
				return nil
			}

			username := os.Getenv("ICLOUD_USERNAME")
			password := os.Getenv("ICLOUD_APP_SPECIFIC_PASSWORD")
			calendarName := os.Getenv("ICLOUD_CALENDAR_NAME")
			if username == "" || password == "" || calendarName == "" {
				return fmt.Errorf("set ICLOUD_USERNAME, ICLOUD_APP_SPECIFIC_PASSWORD and ICLOUD_CALENDAR_NAME to publish")
			}

			publisher, err := icloud.NewPublisher(c.Context, logger, username, password, calendarName)
			if err != nil {
				return fmt.Errorf("connect to iCloud: %w", err)
			}
			return publisher.PublishSchedule(c.Context, time.Now(), data.Schedule)
		},
	}
}
