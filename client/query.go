package client

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/miekg/dns"
)

var numericTypeRe = regexp.MustCompile(`^TYPE\d+$`)

func isRRType(token string) bool {
	upper := strings.ToUpper(token)

	if _, ok := dns.StringToType[upper]; ok {
		return true
	}

	return numericTypeRe.MatchString(upper)
}

// SplitRRSet splits an <ONAME>[/<RRTYPE>[/<BAILIWICK>]] argument. A
// segment only counts as the rrtype if it is a known RRTYPE mnemonic,
// ANY, or the TYPEnnn form; anything else stays part of the owner name.
func SplitRRSet(arg string) (oname, rrtype, bailiwick string) {
	parts := strings.Split(arg, "/")

	for i := 1; i < len(parts); i++ {
		if isRRType(parts[i]) {
			return strings.Join(parts[:i], "/"),
				strings.ToUpper(parts[i]),
				strings.Join(parts[i+1:], "/")
		}
	}

	return arg, "", ""
}

// SplitRdata splits a <NAME>[/<RRTYPE>] argument. A trailing bailiwick
// segment is only meaningful for rrset queries and is rejected here.
func SplitRdata(arg string) (name, rrtype string, err error) {
	name, rrtype, bailiwick := SplitRRSet(arg)
	if bailiwick != "" {
		return "", "", fmt.Errorf("invalid rdata query %q", arg)
	}

	return name, rrtype, nil
}
