package ctrlclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g502-hero/g502d/ctrlclient"
	"github.com/g502-hero/g502d/ctrltypes"
)

func mockClient(responder func(path string, payload any, pathParams map[string]string) (string, error)) *ctrlclient.Client {
	return ctrlclient.WithTransport(ctrlclient.NewMockTransport(responder))
}

func TestAttrShow(t *testing.T) {
	c := mockClient(func(path string, payload any, params map[string]string) (string, error) {
		assert.Equal(t, "attr/{name}/show", path)
		assert.Equal(t, "dpi", params["name"])
		assert.Nil(t, payload)
		return "1600", nil
	})

	v, err := c.AttrShow("dpi")
	require.NoError(t, err)
	assert.Equal(t, uint16(1600), v)
}

func TestAttrShowProblem(t *testing.T) {
	c := mockClient(func(path string, payload any, params map[string]string) (string, error) {
		return `{"status":404,"title":"Not Found","detail":"unknown attribute: bogus"}`, nil
	})

	_, err := c.AttrShow("bogus")
	var problem *ctrltypes.Error
	require.ErrorAs(t, err, &problem)
	assert.Equal(t, 404, problem.Status)
}

func TestAttrShowGarbage(t *testing.T) {
	c := mockClient(func(path string, payload any, params map[string]string) (string, error) {
		return "not-a-number", nil
	})

	_, err := c.AttrShow("dpi")
	assert.ErrorContains(t, err, "decode attribute")
}

func TestAttrStore(t *testing.T) {
	c := mockClient(func(path string, payload any, params map[string]string) (string, error) {
		assert.Equal(t, "attr/{name}/store", path)
		assert.Equal(t, "report_rate", params["name"])
		assert.Equal(t, "500", payload)
		return "", nil
	})

	assert.NoError(t, c.AttrStore("report_rate", 500))
}

func TestAttrStoreProblem(t *testing.T) {
	c := mockClient(func(path string, payload any, params map[string]string) (string, error) {
		return `{"status":400,"title":"Invalid Argument"}`, nil
	})

	err := c.AttrStore("report_rate", 300)
	var problem *ctrltypes.Error
	require.ErrorAs(t, err, &problem)
	assert.Equal(t, 400, problem.Status)
}

func TestProfileList(t *testing.T) {
	c := mockClient(func(path string, payload any, params map[string]string) (string, error) {
		assert.Equal(t, "profile/list", path)
		return `[{"index":0,"reportRate":125,"dpi":800,"current":true},{"index":1,"reportRate":250,"dpi":1600}]`, nil
	})

	profiles, err := c.ProfileList()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.True(t, profiles[0].Current)
	assert.Equal(t, uint16(1600), profiles[1].DPI)
}

func TestProfileSwitch(t *testing.T) {
	c := mockClient(func(path string, payload any, params map[string]string) (string, error) {
		assert.Equal(t, "profile/switch", path)
		return `{"index":2,"reportRate":500,"dpi":2400,"current":true}`, nil
	})

	p, err := c.ProfileSwitch()
	require.NoError(t, err)
	assert.Equal(t, 2, p.Index)
	assert.Equal(t, uint16(500), p.ReportRate)
}

func TestFirmware(t *testing.T) {
	c := mockClient(func(path string, payload any, params map[string]string) (string, error) {
		assert.Equal(t, "fw/show", path)
		return `{"entity":"main application","entities":1,"version":"HERO 1.0"}`, nil
	})

	fw, err := c.Firmware()
	require.NoError(t, err)
	assert.Equal(t, "HERO 1.0", fw.Version)
}

func TestEmptyResponseOnParsedRoute(t *testing.T) {
	c := mockClient(func(path string, payload any, params map[string]string) (string, error) {
		return "", nil
	})

	_, err := c.ProfileList()
	assert.ErrorContains(t, err, "empty response")
}
