package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/thenaterhood/dnsdbq/models"
)

// Formatter writes one record, including its trailing record
// separator, to the output stream.
type Formatter interface {
	WriteRecord(w io.Writer, r models.Record) error
}

// RRSetText renders the multi-line presentation used for rrset
// lookups: annotation lines followed by one line per rdata element.
type RRSetText struct{}

// RdataText renders the single-line presentation used for rdata
// lookups.
type RdataText struct{}

// JSONLines echoes records as newline-delimited JSON.
type JSONLines struct{}

var countPrinter = message.NewPrinter(language.English)

func secToText(ts int64) string {
	// The literal -0000 offset is long-standing in this output
	// format; Go's -0700 layout would render +0000 for UTC.
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05") + " -0000"
}

func (RRSetText) WriteRecord(w io.Writer, r models.Record) error {
	var s strings.Builder

	if r.Bailiwick != "" {
		fmt.Fprintf(&s, ";;  bailiwick: %s\n", r.Bailiwick)
	}
	if r.Count != 0 {
		fmt.Fprintf(&s, ";;      count: %s\n", countPrinter.Sprintf("%d", r.Count))
	}
	if r.TimeFirst != 0 {
		fmt.Fprintf(&s, ";; first seen: %s\n", secToText(r.TimeFirst))
	}
	if r.TimeLast != 0 {
		fmt.Fprintf(&s, ";;  last seen: %s\n", secToText(r.TimeLast))
	}
	if r.ZoneTimeFirst != 0 {
		fmt.Fprintf(&s, ";; first seen in zone file: %s\n", secToText(r.ZoneTimeFirst))
	}
	if r.ZoneTimeLast != 0 {
		fmt.Fprintf(&s, ";;  last seen in zone file: %s\n", secToText(r.ZoneTimeLast))
	}

	for _, rdata := range r.Rdata {
		fmt.Fprintf(&s, "%s IN %s %s\n", r.RRName, r.RRType, rdata)
	}

	_, err := fmt.Fprintf(w, "%s\n", s.String())
	return err
}

func (RdataText) WriteRecord(w io.Writer, r models.Record) error {
	for _, rdata := range r.Rdata {
		if _, err := fmt.Fprintf(w, "%s IN %s %s\n", r.RRName, r.RRType, rdata); err != nil {
			return err
		}
	}

	return nil
}

func (JSONLines) WriteRecord(w io.Writer, r models.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
