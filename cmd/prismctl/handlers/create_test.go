package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/prismctl/internal/inventory"
	"github.com/imamik/prismctl/internal/provision"
)

func TestCreate(t *testing.T) {
	api := newFakeAPI()
	console := &scriptedConsole{answers: []string{
		"db01", "4", "2", "8192", "Y",
		"PCI", "Y", "default-container", "2048", "Y", "N",
		"N",
	}}
	stubSession(t, testConfig(), api, console)

	require.NoError(t, Create(context.Background(), Options{}))
	require.Len(t, api.created, 1)
	assert.Equal(t, int64(2048)<<20, api.created[0].VMDisks[0].VMDiskCreate.Size)
	assert.Empty(t, api.created[0].VMNics)
}

func TestCreate_Rejected(t *testing.T) {
	api := newFakeAPI()
	api.status = 409
	console := &scriptedConsole{answers: []string{
		"db01", "1", "1", "1024", "Y",
		"IDE", "Y", "N",
		"N",
	}}
	stubSession(t, testConfig(), api, console)

	err := Create(context.Background(), Options{})
	var submitErr *provision.SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, 409, submitErr.StatusCode)
}

func TestCreate_NoContainers(t *testing.T) {
	api := newFakeAPI()
	api.containers = nil
	console := &scriptedConsole{answers: []string{
		"db01", "1", "1", "1024", "Y",
		"SCSI", "Y",
	}}
	stubSession(t, testConfig(), api, console)

	err := Create(context.Background(), Options{})
	assert.ErrorIs(t, err, inventory.ErrNoContainers)
	assert.Empty(t, api.created)
}
