package client

import (
	"encoding/json"
	"fmt"
)

type Problem struct {
	Type     string                     `json:"type"`
	Title    string                     `json:"title"`
	Status   int                        `json:"status"`
	Detail   string                     `json:"detail,omitempty"`
	Instance string                     `json:"instance,omitempty"`
	Extras   map[string]json.RawMessage `json:"extras,omitempty"`
}

// Error carries the problem document of a non 2xx answer.
type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Problem.Title, e.Problem.Status)
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Account struct {
	Links struct {
		Self       Link `json:"self"`
		Receipts   Link `json:"receipts"`
		Membership Link `json:"membership"`
	} `json:"_links"`

	Address          string `json:"address"`
	Staked           string `json:"staked"`
	RequiredOverride string `json:"required_override"`
	IsMember         bool   `json:"is_member"`
	EverJoined       bool   `json:"ever_joined"`
	SequenceID       uint64 `json:"sequence_id"`
}

type AccountsPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Account `json:"records"`
	} `json:"_embedded"`
}

type Membership struct {
	Links struct {
		Self    Link `json:"self"`
		Account Link `json:"account"`
	} `json:"_links"`

	Address    string `json:"address"`
	IsMember   bool   `json:"is_member"`
	EverJoined bool   `json:"ever_joined"`
	Staked     string `json:"staked"`
	Required   string `json:"required"`
}

type Requirement struct {
	Links struct {
		Self    Link `json:"self"`
		Account Link `json:"account"`
	} `json:"_links"`

	Address  string `json:"address"`
	Required string `json:"required"`
}

type Receipt struct {
	Links struct {
		Self   Link `json:"self"`
		Source Link `json:"source"`
		Target Link `json:"target"`
	} `json:"_links"`

	Hash         string   `json:"hash"`
	EnvelopeHash string   `json:"envelope_hash"`
	Type         string   `json:"type"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	Amount       string   `json:"amount"`
	Requirement  string   `json:"requirement"`
	Events       []string `json:"events"`
	SequenceID   uint64   `json:"sequence_id"`
	Confirmed    string   `json:"confirmed"`
}

type ReceiptsPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Receipt `json:"records"`
	} `json:"_embedded"`
}

type Registry struct {
	Links struct {
		Self          Link `json:"self"`
		Administrator Link `json:"administrator"`
	} `json:"_links"`

	Administrator     string `json:"administrator"`
	GlobalRequirement string `json:"global_requirement"`
}
