package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thenaterhood/dnsdbq/metrics"
	"github.com/thenaterhood/dnsdbq/models"
)

const DefaultServer = "https://api.dnsdb.info"

// Response bodies can be large but individual records are one JSON
// object per line; this caps a single line.
const maxRecordLine = 1024 * 1024

type QueryError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e QueryError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("query failed: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("query failed: %s", e.Status)
}

type Config struct {
	Server string
	ApiKey string
	// Maximum number of results the server should return.
	// Zero means the server default.
	Limit   int
	Timeout int
	Logger  *slog.Logger
	Metrics metrics.MetricsInterface
	// Overrides the default http.Client when set. The Timeout
	// field is ignored in that case.
	HttpClient *http.Client
}

type Client struct {
	config Config
	http   *http.Client
}

func New(config Config) *Client {
	if config.Server == "" {
		config.Server = DefaultServer
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Metrics == nil {
		config.Metrics = metrics.DummyMetrics{}
	}

	httpClient := config.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		}
	}

	return &Client{
		config: config,
		http:   httpClient,
	}
}

// QueryRRSet looks up rrsets by owner name, optionally narrowed by
// rrtype and bailiwick. A bailiwick without an rrtype implies ANY.
func (c *Client) QueryRRSet(ctx context.Context, oname, rrtype, bailiwick string) ([]models.Record, error) {
	path := "rrset/name/" + quote(oname)

	if bailiwick != "" {
		if rrtype == "" {
			rrtype = "ANY"
		}
		path += "/" + rrtype + "/" + quote(bailiwick)
	} else if rrtype != "" {
		path += "/" + rrtype
	}

	return c.lookup(ctx, path)
}

// QueryRdataName looks up records whose rdata contains the given
// domain name.
func (c *Client) QueryRdataName(ctx context.Context, name, rrtype string) ([]models.Record, error) {
	path := "rdata/name/" + quote(name)

	if rrtype != "" {
		path += "/" + rrtype
	}

	return c.lookup(ctx, path)
}

// QueryRdataIP looks up records whose rdata contains the given IP
// address, range, or CIDR network. The API expects the CIDR slash as
// a comma.
func (c *Client) QueryRdataIP(ctx context.Context, ip string) ([]models.Record, error) {
	return c.lookup(ctx, "rdata/ip/"+strings.ReplaceAll(ip, "/", ","))
}

// QueryRdataRaw looks up records by raw rdata, given as an even-length
// hex string. Separators (dashes, colons, spaces) are tolerated.
func (c *Client) QueryRdataRaw(ctx context.Context, rawHex string) ([]models.Record, error) {
	cleaned, err := normalizeRawHex(rawHex)
	if err != nil {
		return nil, err
	}

	return c.lookup(ctx, "rdata/raw/"+cleaned)
}

func normalizeRawHex(s string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '-', ':', ' ':
			return -1
		}
		return r
	}, s)

	if cleaned == "" || len(cleaned)%2 != 0 {
		return "", fmt.Errorf("raw hex %q must have an even number of digits", s)
	}

	if _, err := hex.DecodeString(cleaned); err != nil {
		return "", fmt.Errorf("invalid raw hex %q: %w", s, err)
	}

	return cleaned, nil
}

func quote(segment string) string {
	return url.PathEscape(segment)
}

func (c *Client) lookup(ctx context.Context, path string) ([]models.Record, error) {
	endpoint := fmt.Sprintf("%s/lookup/%s", strings.TrimSuffix(c.config.Server, "/"), path)
	if c.config.Limit > 0 {
		endpoint += fmt.Sprintf("?limit=%d", c.config.Limit)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-API-Key", c.config.ApiKey)

	c.config.Logger.Debug("querying dnsdb", "url", endpoint)
	c.config.Metrics.IncQueriesIssued()
	timer := c.config.Metrics.GetQueryTimer()
	defer c.config.Metrics.ObserveTimer(timer)

	response, err := c.http.Do(request)
	if err != nil {
		c.config.Metrics.IncQueriesFailed()
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		c.config.Metrics.IncQueriesFailed()
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return nil, QueryError{
			StatusCode: response.StatusCode,
			Status:     response.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	records := []models.Record{}

	scanner := bufio.NewScanner(response.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLine)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		record, err := models.NewRecordFromJSON(line)
		if err != nil {
			c.config.Metrics.IncQueriesFailed()
			return nil, fmt.Errorf("malformed record %q: %w", line, err)
		}

		records = append(records, *record)
	}

	if err := scanner.Err(); err != nil {
		c.config.Metrics.IncQueriesFailed()
		return nil, err
	}

	c.config.Metrics.AddRecordsReceived(len(records))
	c.config.Logger.Debug("dnsdb query finished", "records", len(records))

	return records, nil
}
