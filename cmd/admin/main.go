// Command admin runs operator tasks against the nibtara database.
//
//	admin migrate [-down N]
//	admin createsuperuser -email E -name N [-password P]
//	admin flushexpiredtokens
//	admin addpretrial -owner E -act A [-details D] [-date YYYY-MM-DD]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Khushiyant/nibtara/config"
	"github.com/Khushiyant/nibtara/db"
	"github.com/Khushiyant/nibtara/internal/auth/dto"
	repo "github.com/Khushiyant/nibtara/internal/auth/repository/postgres"
	"github.com/Khushiyant/nibtara/internal/auth/service"
	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/Khushiyant/nibtara/internal/jobs"
	"github.com/Khushiyant/nibtara/internal/logger"
	"github.com/sirupsen/logrus"
)

const usage = `usage: admin <command> [flags]

commands:
  migrate             apply (or with -down N, roll back) schema migrations
  createsuperuser     create a staff superuser
  flushexpiredtokens  delete refresh tokens past their expiry
  addpretrial         record a case for an existing account
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "migrate":
		err = runMigrate(cfg, log, args)
	case "createsuperuser":
		err = runCreateSuperuser(ctx, cfg, log, args)
	case "flushexpiredtokens":
		err = runFlush(ctx, cfg, log)
	case "addpretrial":
		err = runAddPreTrial(ctx, cfg, log, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		log.WithError(err).Error(os.Args[1] + " failed")
		os.Exit(1)
	}
}

func runMigrate(cfg *config.Config, log logrus.FieldLogger, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	down := fs.Int("down", 0, "number of migrations to roll back")
	_ = fs.Parse(args)

	if *down > 0 {
		return db.MigrateDown(cfg.DBURL, *down, log)
	}
	return db.MigrateUp(cfg.DBURL, log)
}

func runCreateSuperuser(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, args []string) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ExitOnError)
	email := fs.String("email", "", "login email")
	name := fs.String("name", "", "display name")
	password := fs.String("password", os.Getenv("SUPERUSER_PASSWORD"), "password (defaults to $SUPERUSER_PASSWORD)")
	_ = fs.Parse(args)

	repository, closeDB, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	authService := service.NewAuthService(repository, repository, tokenService, service.WithLogger(log))
	registration := service.NewRegistrationService(repository, authService, cfg.BcryptCost, service.WithLogger(log))

	account, err := registration.CreatePrivileged(ctx, dto.CreateAccountInput{Email: *email, Name: *name, Password: *password})
	if err != nil {
		if e, ok := apperrors.As(err); ok && len(e.Fields) > 0 {
			return fmt.Errorf("%s: %v", e.Message, e.Fields)
		}
		return err
	}

	log.WithField("account_id", account.ID).Info("superuser created")
	return nil
}

func runFlush(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) error {
	repository, closeDB, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	_, err = jobs.NewTokenFlusher(repository, log).Flush(ctx)
	return err
}

func runAddPreTrial(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, args []string) error {
	fs := flag.NewFlagSet("addpretrial", flag.ExitOnError)
	owner := fs.String("owner", "", "email of the owning account")
	act := fs.String("act", "", "case act")
	details := fs.String("details", "", "case details")
	date := fs.String("date", "", "registration date, YYYY-MM-DD (default today)")
	_ = fs.Parse(args)

	repository, closeDB, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	account, err := repository.GetByEmail(ctx, service.NormalizeEmail(*owner))
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("no account with email %q", *owner)
	}

	pt, err := service.NewListingService(repository).AddPreTrial(ctx, account, dto.CreatePreTrialInput{
		CaseAct:        *act,
		Details:        *details,
		DateRegistered: *date,
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"pretrial_id": pt.ID, "account_id": account.ID}).Info("pretrial recorded")
	return nil
}

func openRepository(ctx context.Context, cfg *config.Config) (*repo.PostgresRepository, func(), error) {
	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, err
	}
	return repo.NewPostgresRepository(pool), pool.Close, nil
}
