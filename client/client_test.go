package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/thenaterhood/dnsdbq/models"
)

func newTestServer(t *testing.T, expectPath, expectQuery string, status int, body string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if expectPath != "" && r.URL.EscapedPath() != expectPath {
			t.Errorf("request path = %s, expected %s", r.URL.EscapedPath(), expectPath)
		}
		if r.URL.RawQuery != expectQuery {
			t.Errorf("request query = %q, expected %q", r.URL.RawQuery, expectQuery)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("Accept header = %q", accept)
		}
		if apiKey := r.Header.Get("X-API-Key"); apiKey != "secret" {
			t.Errorf("X-API-Key header = %q", apiKey)
		}

		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func TestQueryRRSet(t *testing.T) {
	body := `{"count":3,"rrname":"www.example.com.","rrtype":"A","bailiwick":"example.com.","rdata":["192.0.2.1"]}` + "\n" +
		`{"count":7,"rrname":"www.example.com.","rrtype":"A","bailiwick":"example.com.","rdata":["192.0.2.2"]}` + "\n"

	server := newTestServer(t, "/lookup/rrset/name/www.example.com", "", http.StatusOK, body)
	defer server.Close()

	dnsdb := New(Config{Server: server.URL, ApiKey: "secret"})

	records, err := dnsdb.QueryRRSet(context.Background(), "www.example.com", "", "")
	if err != nil {
		t.Fatalf("unexpected error querying: %v", err)
	}

	expected := []models.Record{
		{Count: 3, RRName: "www.example.com.", RRType: "A", Bailiwick: "example.com.", Rdata: models.Rdata{"192.0.2.1"}},
		{Count: 7, RRName: "www.example.com.", RRType: "A", Bailiwick: "example.com.", Rdata: models.Rdata{"192.0.2.2"}},
	}

	if diff := cmp.Diff(expected, records, cmpopts.IgnoreUnexported(models.Record{})); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryRRSetPaths(t *testing.T) {
	testCases := map[string][3]string{
		"/lookup/rrset/name/www.example.com/A":               {"www.example.com", "A", ""},
		"/lookup/rrset/name/www.example.com/A/example.com":   {"www.example.com", "A", "example.com"},
		"/lookup/rrset/name/www.example.com/ANY/example.com": {"www.example.com", "", "example.com"},
		"/lookup/rrset/name/%2A.example.com/MX":              {"*.example.com", "MX", ""},
	}

	for expectPath, args := range testCases {
		t.Run(expectPath, func(t *testing.T) {
			server := newTestServer(t, expectPath, "", http.StatusOK, "")
			defer server.Close()

			dnsdb := New(Config{Server: server.URL, ApiKey: "secret"})
			if _, err := dnsdb.QueryRRSet(context.Background(), args[0], args[1], args[2]); err != nil {
				t.Errorf("unexpected error querying: %v", err)
			}
		})
	}
}

func TestQueryRdataIPReplacesSlash(t *testing.T) {
	server := newTestServer(t, "/lookup/rdata/ip/192.0.2.0,24", "", http.StatusOK, "")
	defer server.Close()

	dnsdb := New(Config{Server: server.URL, ApiKey: "secret"})
	if _, err := dnsdb.QueryRdataIP(context.Background(), "192.0.2.0/24"); err != nil {
		t.Errorf("unexpected error querying: %v", err)
	}
}

func TestQueryRdataName(t *testing.T) {
	server := newTestServer(t, "/lookup/rdata/name/ns1.example.net/NS", "", http.StatusOK,
		`{"count":1,"rrname":"example.com.","rrtype":"NS","rdata":"ns1.example.net."}`+"\n")
	defer server.Close()

	dnsdb := New(Config{Server: server.URL, ApiKey: "secret"})

	records, err := dnsdb.QueryRdataName(context.Background(), "ns1.example.net", "NS")
	if err != nil {
		t.Fatalf("unexpected error querying: %v", err)
	}

	if len(records) != 1 || records[0].Rdata[0] != "ns1.example.net." {
		t.Errorf("unexpected records %v", records)
	}
}

func TestQueryRdataRaw(t *testing.T) {
	server := newTestServer(t, "/lookup/rdata/raw/0123abcd", "", http.StatusOK, "")
	defer server.Close()

	dnsdb := New(Config{Server: server.URL, ApiKey: "secret"})
	if _, err := dnsdb.QueryRdataRaw(context.Background(), "01-23-ab-cd"); err != nil {
		t.Errorf("unexpected error querying: %v", err)
	}
}

func TestQueryLimitParameter(t *testing.T) {
	server := newTestServer(t, "/lookup/rrset/name/example.com", "limit=100", http.StatusOK, "")
	defer server.Close()

	dnsdb := New(Config{Server: server.URL, ApiKey: "secret", Limit: 100})
	if _, err := dnsdb.QueryRRSet(context.Background(), "example.com", "", ""); err != nil {
		t.Errorf("unexpected error querying: %v", err)
	}
}

func TestQueryErrorStatus(t *testing.T) {
	server := newTestServer(t, "", "", http.StatusForbidden, "bad api key\n")
	defer server.Close()

	dnsdb := New(Config{Server: server.URL, ApiKey: "secret"})

	_, err := dnsdb.QueryRRSet(context.Background(), "example.com", "", "")
	if err == nil {
		t.Fatalf("expected an error for a 403 response")
	}

	var queryErr QueryError
	if !errors.As(err, &queryErr) {
		t.Fatalf("expected QueryError, got %T", err)
	}

	if queryErr.StatusCode != http.StatusForbidden {
		t.Errorf("status code = %d, expected 403", queryErr.StatusCode)
	}
	if queryErr.Body != "bad api key" {
		t.Errorf("body = %q", queryErr.Body)
	}
}

func TestQueryMalformedRecord(t *testing.T) {
	server := newTestServer(t, "", "", http.StatusOK, "{\"rrname\":\"a.\"}\nnot json\n")
	defer server.Close()

	dnsdb := New(Config{Server: server.URL, ApiKey: "secret"})

	if _, err := dnsdb.QueryRRSet(context.Background(), "example.com", "", ""); err == nil {
		t.Errorf("expected an error for a malformed record line")
	}
}

func TestQueryContextCancelled(t *testing.T) {
	server := newTestServer(t, "", "", http.StatusOK, "")
	defer server.Close()

	dnsdb := New(Config{Server: server.URL, ApiKey: "secret"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := dnsdb.QueryRRSet(ctx, "example.com", "", ""); err == nil {
		t.Errorf("expected an error for a cancelled context")
	}
}
