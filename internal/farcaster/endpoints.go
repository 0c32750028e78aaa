package farcaster

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/followscope/followscope/internal/metrics"
)

// LookupFID resolves a username to its FID through the fnames registry.
// Results are cached; a transfer to FID 0 means the name is unowned.
func (c *Client) LookupFID(ctx context.Context, username string) (uint64, error) {
	if fid, ok := c.fids.Get(username); ok {
		metrics.FIDCacheLookups.WithLabelValues("hit").Inc()
		return fid, nil
	}

	metrics.FIDCacheLookups.WithLabelValues("miss").Inc()

	var resp transferResponse

	params := url.Values{"name": {username}}
	if err := c.getJSON(ctx, c.fnames, "fnames.transfers", c.fnamesURL, "/transfers/current", params, &resp); err != nil {
		return 0, fmt.Errorf("looking up fid for %q: %w", username, err)
	}

	if resp.Transfer.To == 0 {
		return 0, fmt.Errorf("looking up fid for %q: %w", username, &APIError{Endpoint: "fnames.transfers", StatusCode: 404, Body: "name is not owned"})
	}

	c.fids.Add(username, resp.Transfer.To)

	return resp.Transfer.To, nil
}

// ProfilePicture returns the avatar URL of an FID, or "" when none is set.
func (c *Client) ProfilePicture(ctx context.Context, fid uint64) (string, error) {
	var resp userDataResponse

	params := url.Values{
		"fid":            {strconv.FormatUint(fid, 10)},
		"user_data_type": {UserDataTypePFP},
	}
	if err := c.getJSON(ctx, c.hub, "hub.userDataByFid", c.hubURL, "/v1/userDataByFid", params, &resp); err != nil {
		if IsNotFound(err) {
			return "", nil
		}

		return "", fmt.Errorf("fetching avatar for fid %d: %w", fid, err)
	}

	return resp.Data.UserDataBody.Value, nil
}

// Follows returns the follow links published by fid, walking hub pages
// until the last page or the configured page cap.
func (c *Client) Follows(ctx context.Context, fid uint64) ([]Follow, error) {
	var (
		out   []Follow
		token string
	)

	for page := 0; page < c.maxPages; page++ {
		params := url.Values{
			"fid":      {strconv.FormatUint(fid, 10)},
			"pageSize": {strconv.Itoa(c.pageSize)},
		}
		if token != "" {
			params.Set("pageToken", token)
		}

		var resp linksResponse
		if err := c.getJSON(ctx, c.hub, "hub.linksByFid", c.hubURL, "/v1/linksByFid", params, &resp); err != nil {
			return nil, fmt.Errorf("fetching follows for fid %d: %w", fid, err)
		}

		for i := range resp.Messages {
			data := &resp.Messages[i].Data
			if data.Type != MessageTypeLinkAdd || data.LinkBody.Type != LinkTypeFollow {
				continue
			}

			out = append(out, Follow{TargetFID: data.LinkBody.TargetFID, Timestamp: data.Timestamp})
		}

		token = resp.NextPageToken
		if token == "" {
			return out, nil
		}
	}

	c.log.WithFields(logrus.Fields{
		"fid":       fid,
		"max_pages": c.maxPages,
		"follows":   len(out),
	}).Warn("follow list truncated at page cap")

	return out, nil
}
