package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strings"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/common/observer"
	"stakegate.io/stakegate/lib/node"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlAccountReceipts    = "/accounts/{id}/receipts"
	UrlAccountMembership  = "/accounts/{id}/membership"
	UrlAccountRequirement = "/accounts/{id}/requirement"
	UrlAccount            = "/accounts/{id}"
	UrlAccounts           = "/accounts"
	UrlReceipts           = "/receipts"
	UrlReceiptByHash      = "/receipts/{id}"
	UrlRegistry           = "/registry"
	UrlOperations         = "/operations"
	UrlSubscribe          = "/subscribe"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	urlValues := neturl.Values{}
	if len(qs) == 0 {
		return ""
	}
	for _, q := range qs {
		switch q.Key {
		case QueryLimit, QueryReverse, QueryCursor:
			urlValues.Add(q.Key.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

// Client talks to the public api of one registry node.
type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

func NewClient(url string) *Client {
	httpClient, err := common.NewHTTP2Client(0, 0, true)
	if err != nil {
		panic(err)
	}
	return &Client{
		URL:  url,
		HTTP: httpClient,
	}
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		err = decoder.Decode(&p)
		if err != nil {
			return
		}
		return Error{Problem: p}
	}

	err = decoder.Decode(&response)
	if err != nil {
		return
	}
	return
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Get(url, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Post(url, body, headers)
}

func (c *Client) LoadAccount(id string, queries ...Q) (account Account, err error) {
	url := strings.Replace(UrlAccount, "{id}", id, -1)
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &account)
	return
}

func (c *Client) LoadAccounts(queries ...Q) (aPage AccountsPage, err error) {
	url := UrlAccounts
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &aPage)
	return
}

// LoadAccountsByAddresses resolves many addresses in one round trip.
// Addresses the registry has never seen are left out of the page.
func (c *Client) LoadAccountsByAddresses(addresses []string) (aPage AccountsPage, err error) {
	body, err := json.Marshal(addresses)
	if err != nil {
		return
	}
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Post(UrlAccounts, body, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &aPage)
	return
}

func (c *Client) LoadMembership(id string) (membership Membership, err error) {
	url := strings.Replace(UrlAccountMembership, "{id}", id, -1)
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &membership)
	return
}

func (c *Client) LoadRequirement(id string) (requirement Requirement, err error) {
	url := strings.Replace(UrlAccountRequirement, "{id}", id, -1)
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &requirement)
	return
}

func (c *Client) LoadReceipts(queries ...Q) (rPage ReceiptsPage, err error) {
	url := UrlReceipts
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &rPage)
	return
}

func (c *Client) LoadReceiptsByAccount(id string, queries ...Q) (rPage ReceiptsPage, err error) {
	url := strings.Replace(UrlAccountReceipts, "{id}", id, -1)
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &rPage)
	return
}

func (c *Client) LoadReceipt(hash string) (receipt Receipt, err error) {
	url := strings.Replace(UrlReceiptByHash, "{id}", hash, -1)
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &receipt)
	return
}

func (c *Client) LoadRegistry() (registry Registry, err error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(UrlRegistry, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &registry)
	return
}

// LoadNodeInfo reads the root document of the node. It lives outside
// the versioned api prefix.
func (c *Client) LoadNodeInfo() (nodeInfo node.NodeInfo, err error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Get(c.URL+"/", headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &nodeInfo)
	return
}

// SubmitOperations posts a serialized signed envelope and decodes the
// page of receipts an applied envelope is answered with.
func (c *Client) SubmitOperations(envelope []byte) (rPage ReceiptsPage, err error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Post(UrlOperations, envelope, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &rPage)
	return
}

// Stream subscribes to the given ledger events and feeds every line
// the node pushes to `handler`, until the context is cancelled or the
// connection drops.
func (c *Client) Stream(ctx context.Context, subscribe observer.Subscribe, handler func(data []byte) error) (err error) {
	var request *http.Request
	if request, err = http.NewRequest("POST", c.URL+UrlPrefixForAPIV1+UrlSubscribe, bytes.NewReader(common.MustMarshalJSON(subscribe))); err != nil {
		return
	}
	request = request.WithContext(ctx)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "text/event-stream")

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.toResponse(resp, nil)
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		if line = bytes.TrimSpace(line); len(line) == 0 {
			continue
		}
		if err := handler(line); err != nil {
			return err
		}
	}
}

func (c *Client) StreamAccount(ctx context.Context, id string, handler func(Account)) (err error) {
	subscribe := observer.NewSubscribe(observer.NewEvent(observer.ResourceAccount, observer.ConditionAddress, id))
	handlerFunc := func(b []byte) (err error) {
		var v Account
		err = json.Unmarshal(b, &v)
		if err != nil {
			return err
		}
		handler(v)
		return nil
	}
	return c.Stream(ctx, subscribe, handlerFunc)
}

func (c *Client) StreamReceiptsBySource(ctx context.Context, id string, handler func(Receipt)) (err error) {
	subscribe := observer.NewSubscribe(observer.NewEvent(observer.ResourceReceipt, observer.ConditionSource, id))
	handlerFunc := func(b []byte) (err error) {
		var v Receipt
		err = json.Unmarshal(b, &v)
		if err != nil {
			return err
		}
		handler(v)
		return nil
	}
	return c.Stream(ctx, subscribe, handlerFunc)
}
