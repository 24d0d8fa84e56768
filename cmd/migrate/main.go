package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/graeme-hill/calcstuff-go/lib/history"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	// logger instance
	log = logrus.New()
)

func main() {
	app := kingpin.New("migrate", "Applies the history database migrations.")
	driver := app.Flag("driver", "Database driver: postgres or sqlite3.").Default("postgres").Enum("postgres", "sqlite3")
	dsn := app.Flag("dsn", "Database connection string.").Required().String()
	down := app.Flag("down", "Revert this many migrations instead of applying.").Int()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	history.SetLogLevel(logrus.InfoLevel)

	ctx := context.Background()
	db, err := sql.Open(*driver, *dsn)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	var count int
	if *down > 0 {
		count, err = history.RevertMigrations(ctx, db, *driver, *down)
	} else {
		count, err = history.RunMigrations(ctx, db, *driver)
	}
	if err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	log.WithFields(logrus.Fields{
		"driver": *driver,
		"count":  count,
		"down":   *down > 0,
	}).Info("done")
}
