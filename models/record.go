package models

import (
	"encoding/json"
	"fmt"
)

type MalformedRecord struct {
	Msg string
}

func (m MalformedRecord) Error() string {
	return fmt.Sprintf("record is malformed: %s", m.Msg)
}

// Rdata holds the rdata field of a passive DNS record. The API returns
// it as an array of strings for rrset lookups and as a single string
// for rdata lookups; both decode into the same slice.
type Rdata []string

func (r *Rdata) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Rdata{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return MalformedRecord{fmt.Sprintf("rdata is neither a string nor an array: %s", data)}
	}

	*r = Rdata(many)
	return nil
}

// Record is one passive DNS observation in the common output format.
// Zero-valued fields were absent from the server's reply.
type Record struct {
	Count         int64  `json:"count,omitempty"`
	TimeFirst     int64  `json:"time_first,omitempty"`
	TimeLast      int64  `json:"time_last,omitempty"`
	ZoneTimeFirst int64  `json:"zone_time_first,omitempty"`
	ZoneTimeLast  int64  `json:"zone_time_last,omitempty"`
	RRName        string `json:"rrname,omitempty"`
	RRType        string `json:"rrtype,omitempty"`
	Bailiwick     string `json:"bailiwick,omitempty"`
	Rdata         Rdata  `json:"rdata,omitempty"`

	raw json.RawMessage
}

// Construct a Record from one line of an API response, keeping the
// original bytes so JSON output can echo the server's encoding.
func NewRecordFromJSON(line []byte) (*Record, error) {
	record := Record{}
	if err := json.Unmarshal(line, &record); err != nil {
		return nil, err
	}

	record.raw = append(json.RawMessage{}, line...)

	return &record, nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}

	type bare Record
	return json.Marshal(bare(r))
}
