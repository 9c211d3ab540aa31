package geotab_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telematics-hq/mygeotab-go/geotab"
	"telematics-hq/mygeotab-go/geotab/entities"
)

func Test_BuildEntity_ExtractsTheRecordID(t *testing.T) {
	entity, buildErr := geotab.BuildEntity(json.RawMessage(`{"id":"b2775","name":"truck-7"}`))

	require.NoError(t, buildErr)
	assert.Equal(t, "b2775", entity.ID)
	assert.JSONEq(t, `{"id":"b2775","name":"truck-7"}`, string(entity.Raw))
}

func Test_BuildEntity_AllowsRecordsWithoutAnID(t *testing.T) {
	entity, buildErr := geotab.BuildEntity(json.RawMessage(`{"name":"anonymous"}`))

	require.NoError(t, buildErr)
	assert.Empty(t, entity.ID)
}

func Test_BuildEntity_RejectsInvalidJSON(t *testing.T) {
	_, buildErr := geotab.BuildEntity(json.RawMessage(`{"id":`))

	assert.ErrorIs(t, buildErr, geotab.ErrInvalidEntityJSON)
}

func Test_Entity_DecodeIntoTypedStruct(t *testing.T) {
	entity, buildErr := geotab.BuildEntity(json.RawMessage(`{"id":"b1","name":"truck-7","serialNumber":"G7XXX"}`))
	require.NoError(t, buildErr)

	var device entities.Device
	require.NoError(t, entity.Decode(&device))

	assert.Equal(t, "b1", device.ID)
	assert.Equal(t, "truck-7", device.Name)
	assert.Equal(t, "G7XXX", device.SerialNumber)
}

func Test_Entity_DecodeReportsTypeMismatches(t *testing.T) {
	entity, buildErr := geotab.BuildEntity(json.RawMessage(`{"id":"b1","latitude":"not-a-number"}`))
	require.NoError(t, buildErr)

	var logRecord entities.LogRecord
	decodeErr := entity.Decode(&logRecord)

	assert.ErrorIs(t, decodeErr, geotab.ErrDecodingEntityFailed)
}
