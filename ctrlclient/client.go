// Package ctrlclient is the Go client for the daemon's control socket.
package ctrlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/g502-hero/g502d/ctrltypes"
)

// Client provides a high-level interface to the control surface, handling
// request formatting, response parsing and error mapping.
type Client struct{ transport *Transport }

// New constructs a client for the daemon's control address (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport. Primarily
// useful for testing.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// AttrShow reads an attribute ("report_rate" or "dpi") and returns the
// stored value of the current profile.
func (c *Client) AttrShow(name string) (uint16, error) {
	return c.AttrShowCtx(context.Background(), name)
}

func (c *Client) AttrShowCtx(ctx context.Context, name string) (uint16, error) {
	const path = "attr/{name}/show"
	raw, err := c.transport.DoCtx(ctx, path, nil, map[string]string{"name": name})
	if err != nil {
		return 0, err
	}
	if perr := asProblem(raw); perr != nil {
		return 0, perr
	}
	v, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("decode attribute %s: %w", name, err)
	}
	return uint16(v), nil
}

// AttrStore writes an attribute value. The daemon pushes the value to the
// device; the stored profile value changes once the device confirms it.
func (c *Client) AttrStore(name string, value uint16) error {
	return c.AttrStoreCtx(context.Background(), name, value)
}

func (c *Client) AttrStoreCtx(ctx context.Context, name string, value uint16) error {
	const path = "attr/{name}/store"
	raw, err := c.transport.DoCtx(ctx, path, strconv.FormatUint(uint64(value), 10),
		map[string]string{"name": name})
	if err != nil {
		return err
	}
	return asProblem(raw)
}

// ProfileList retrieves all profiles; the current one carries Current=true.
func (c *Client) ProfileList() ([]ctrltypes.Profile, error) {
	return c.ProfileListCtx(context.Background())
}

func (c *Client) ProfileListCtx(ctx context.Context) ([]ctrltypes.Profile, error) {
	const path = "profile/list"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	out, err := parse[[]ctrltypes.Profile](raw)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// ProfileSwitch advances to the next profile, like the hardware button,
// and returns the new current profile.
func (c *Client) ProfileSwitch() (*ctrltypes.Profile, error) {
	return c.ProfileSwitchCtx(context.Background())
}

func (c *Client) ProfileSwitchCtx(ctx context.Context) (*ctrltypes.Profile, error) {
	const path = "profile/switch"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[ctrltypes.Profile](raw)
}

// Firmware retrieves the device's firmware identification.
func (c *Client) Firmware() (*ctrltypes.Firmware, error) {
	return c.FirmwareCtx(context.Background())
}

func (c *Client) FirmwareCtx(ctx context.Context) (*ctrltypes.Firmware, error) {
	const path = "fw/show"
	raw, err := c.transport.DoCtx(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return parse[ctrltypes.Firmware](raw)
}

// asProblem decodes a problem-JSON error line, or returns nil for empty
// and non-error responses.
func asProblem(data string) error {
	if data == "" {
		return nil
	}
	var problem ctrltypes.Error
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return &problem
	}
	return nil
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem ctrltypes.Error
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
