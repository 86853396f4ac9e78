package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gnosis/pkg/gnosis"
	"gnosis/pkg/store"

	log "github.com/sirupsen/logrus"
)

const dateFormat = "2006-01-02"

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configPath := flag.String("config", "gnosis.toml", "Path to the config file")
	op := flag.String("op", "", "Operation: get, update, add, series, start, fix (required)")
	stat := flag.String("stat", "", "Statistic name")
	date := flag.String("date", "", "Date as YYYY-MM-DD")
	value := flag.String("value", "", "Value for -op update")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if *op == "" {
		log.Error("You must specify an operation with -op")
		flag.Usage()
		os.Exit(1)
	}

	config, err := store.NewDatastore(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	sheet, save, err := config.OpenSheet()
	if err != nil {
		log.Fatalf("Failed to open sheet backend: %v", err)
	}
	manager, err := gnosis.New(sheet)
	if err != nil {
		log.Fatalf("Failed to initialise stats manager: %v", err)
	}

	if err := run(manager, *op, *stat, *date, *value); err != nil {
		log.Fatalf("Operation %s failed: %v", *op, err)
	}
	if err := save(); err != nil {
		log.Fatalf("Failed to save workbook: %v", err)
	}
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("you must specify a date with -date")
	}
	return time.ParseInLocation(dateFormat, raw, time.UTC)
}

func requireStat(stat string) error {
	if stat == "" {
		return fmt.Errorf("you must specify a statistic with -stat")
	}
	return nil
}

func run(manager *gnosis.Gnosis, op, stat, date, value string) error {
	switch op {
	case "get":
		if err := requireStat(stat); err != nil {
			return err
		}
		d, err := parseDate(date)
		if err != nil {
			return err
		}
		val, err := manager.GetStat(stat, d)
		if err != nil {
			return err
		}
		fmt.Println(val)
	case "update":
		if err := requireStat(stat); err != nil {
			return err
		}
		d, err := parseDate(date)
		if err != nil {
			return err
		}
		return manager.UpdateStat(stat, d, value)
	case "add":
		if err := requireStat(stat); err != nil {
			return err
		}
		return manager.AddStatSeries(stat)
	case "series":
		if err := requireStat(stat); err != nil {
			return err
		}
		series, err := manager.GetStatSeries(stat)
		if err != nil {
			return err
		}
		for _, entry := range series {
			fmt.Printf("%s\t%s\n", entry.Date.Format(dateFormat), entry.Value)
		}
	case "start":
		if err := requireStat(stat); err != nil {
			return err
		}
		start, err := manager.GetStatStart(stat)
		if err != nil {
			return err
		}
		fmt.Println(start.Format(dateFormat))
	case "fix":
		return manager.FixLabels()
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
	return nil
}
