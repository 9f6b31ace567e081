// Package registry implements the external payload providers of the feed
// service: a JSON HTTP client for the authoritative governance registry
// (proposals and members) and a gorm backed store for locally authored
// posts.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/realmkit/realmfeed/model"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to the governance registry's REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

// ResolveProposalsForRealm returns the realm's full proposal list.
func (c *Client) ResolveProposalsForRealm(ctx context.Context, realmID string, env model.Environment) ([]*model.Proposal, error) {
	endpoint := fmt.Sprintf("%s/realms/%s/proposals?environment=%s",
		c.baseURL, url.PathEscape(realmID), url.QueryEscape(env.String()))

	var proposals []*model.Proposal
	if err := c.getJSON(ctx, endpoint, &proposals); err != nil {
		return nil, errors.Wrapf(err, "fail to list proposals for realm %s", realmID)
	}
	return proposals, nil
}

// ResolveProposalsByIds returns the subset of the requested proposals the
// user is allowed to see, keyed by public identity. Hidden proposals are
// absent from the map, not errors.
func (c *Client) ResolveProposalsByIds(ctx context.Context, realmID string, ids []string, requestingUser string, env model.Environment) (map[string]*model.Proposal, error) {
	endpoint := fmt.Sprintf("%s/realms/%s/proposals/batch?environment=%s&user=%s&ids=%s",
		c.baseURL, url.PathEscape(realmID), url.QueryEscape(env.String()),
		url.QueryEscape(requestingUser), url.QueryEscape(strings.Join(ids, ",")))

	var proposals []*model.Proposal
	if err := c.getJSON(ctx, endpoint, &proposals); err != nil {
		return nil, errors.Wrapf(err, "fail to resolve proposals for realm %s", realmID)
	}

	byId := make(map[string]*model.Proposal, len(proposals))
	for _, proposal := range proposals {
		byId[proposal.PublicIdentity] = proposal
	}
	return byId, nil
}

// ResolveMembers returns the realm's full membership.
func (c *Client) ResolveMembers(ctx context.Context, realmID string, env model.Environment) ([]*model.Member, error) {
	endpoint := fmt.Sprintf("%s/realms/%s/members?environment=%s",
		c.baseURL, url.PathEscape(realmID), url.QueryEscape(env.String()))

	var members []*model.Member
	if err := c.getJSON(ctx, endpoint, &members); err != nil {
		return nil, errors.Wrapf(err, "fail to list members for realm %s", realmID)
	}
	return members, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "fail to build registry request")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "registry request failed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("registry returned status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrap(err, "fail to decode registry response")
	}
	return nil
}
