package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pborman/getopt/v2"
	"github.com/thenaterhood/dnsdbq/app"
	"github.com/thenaterhood/dnsdbq/client"
	"github.com/thenaterhood/dnsdbq/format"
	"github.com/thenaterhood/dnsdbq/metrics"
	"github.com/thenaterhood/dnsdbq/models"
)

type options struct {
	ConfigFiles []string
	RRSet       string
	RdataName   string
	RdataIP     string
	RdataHex    string
	Sort        string
	Reverse     bool
	Json        bool
	Limit       int
	Before      string
	After       string
	Verbose     bool
}

var opts options

func init() {
	getopt.FlagLong(&opts.ConfigFiles, "config", 'c', "config file (may be given multiple times)", "PATH")
	getopt.FlagLong(&opts.RRSet, "rrset", 'r', "rrset query <ONAME>[/<RRTYPE>[/<BAILIWICK>]]", "RRSET")
	getopt.FlagLong(&opts.RdataName, "rdataname", 'n', "rdata name query <NAME>[/<RRTYPE>]", "NAME")
	getopt.FlagLong(&opts.RdataIP, "rdataip", 'i', "rdata ip query <IPADDRESS|IPRANGE|IPNETWORK>", "IP")
	getopt.FlagLong(&opts.RdataHex, "rdatahex", 'x', "rdata raw hex query <HEXSTRING>", "HEX")
	getopt.FlagLong(&opts.Sort, "sort", 's', "sort key", "KEY")
	getopt.FlagLong(&opts.Reverse, "reverse", 'R', "reverse sort")
	getopt.FlagLong(&opts.Json, "json", 'j', "output in JSON format")
	getopt.FlagLong(&opts.Limit, "limit", 'l', "limit number of results", "N")
	getopt.FlagLong(&opts.Before, "before", 0, "only output results seen before this time", "TIME")
	getopt.FlagLong(&opts.After, "after", 0, "only output results seen after this time", "TIME")
	getopt.FlagLong(&opts.Verbose, "verbose", 'v', "verbose logging")
}

func fatal(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "dnsdbq: "+msg+"\n", args...)
	os.Exit(1)
}

func usage() {
	getopt.PrintUsage(os.Stderr)
	os.Exit(1)
}

func main() {
	getopt.Parse()
	if len(getopt.Args()) > 0 {
		usage()
	}

	configFiles := opts.ConfigFiles
	if len(configFiles) == 0 {
		configFiles = app.DefaultConfigFiles()
	}

	config, err := app.GetConfig(configFiles)
	if err != nil {
		fatal("%v", err)
	}

	if config.ApiKey == "" {
		fatal("APIKEY not defined in config file or environment")
	}

	logLevel := slog.Level(config.LogLevel)
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}

	stderrLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	appMetrics := metrics.GetMetrics(metrics.MetricsConfig{
		Enable: config.MetricsListen != "",
		Listen: config.MetricsListen,
		Logger: stderrLogger,
	})

	state := app.AppState{
		Log:     stderrLogger,
		Metrics: appMetrics,
	}

	if err := state.Metrics.Start(); err != nil {
		state.Log.Warn("failed to start metrics", "err", err)
	}

	dnsdb := client.New(client.Config{
		Server:  config.Server,
		ApiKey:  config.ApiKey,
		Limit:   opts.Limit,
		Timeout: config.HttpTimeout,
		Logger:  state.Log,
		Metrics: state.Metrics,
	})

	ctx := context.Background()

	var records []models.Record
	var formatter format.Formatter

	switch {
	case opts.RRSet != "":
		oname, rrtype, bailiwick := client.SplitRRSet(opts.RRSet)
		records, err = dnsdb.QueryRRSet(ctx, oname, rrtype, bailiwick)
		formatter = format.RRSetText{}
	case opts.RdataName != "":
		name, rrtype, splitErr := client.SplitRdata(opts.RdataName)
		if splitErr != nil {
			fatal("%v", splitErr)
		}
		records, err = dnsdb.QueryRdataName(ctx, name, rrtype)
		formatter = format.RdataText{}
	case opts.RdataIP != "":
		records, err = dnsdb.QueryRdataIP(ctx, opts.RdataIP)
		formatter = format.RdataText{}
	case opts.RdataHex != "":
		records, err = dnsdb.QueryRdataRaw(ctx, opts.RdataHex)
		formatter = format.RdataText{}
	default:
		usage()
	}

	if err != nil {
		fatal("%v", err)
	}

	if opts.Json {
		formatter = format.JSONLines{}
	}

	if len(records) > 0 {
		if opts.Sort != "" {
			if err := models.Sort(records, opts.Sort, opts.Reverse); err != nil {
				fatal("%v", err)
			}
		}

		if opts.Before != "" {
			cutoff, err := models.ParseTime(opts.Before)
			if err != nil {
				fatal("%v", err)
			}
			records = models.FilterBefore(records, cutoff)
		}

		if opts.After != "" {
			cutoff, err := models.ParseTime(opts.After)
			if err != nil {
				fatal("%v", err)
			}
			records = models.FilterAfter(records, cutoff)
		}
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for _, record := range records {
		if err := formatter.WriteRecord(out, record); err != nil {
			fatal("%v", err)
		}
	}
}
