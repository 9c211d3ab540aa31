package httpengine_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telematics-hq/mygeotab-go/geotab"
	"telematics-hq/mygeotab-go/geotab/httpengine"
	"telematics-hq/mygeotab-go/testutil/apiserver"
)

func newClientForServer(t *testing.T, server *apiserver.Server, options ...httpengine.Option) *httpengine.Client {
	t.Helper()

	connection, connErr := geotab.BuildConnection(server.Server(), geotab.Credentials{
		Database:  "acme",
		UserName:  "bob@example.com",
		SessionID: "s-1",
	})
	require.NoError(t, connErr)

	client, clientErr := httpengine.NewClient(connection, options...)
	require.NoError(t, clientErr)

	return client
}

func Test_Client_Get_ReturnsEntitiesInServerProvidedOrder(t *testing.T) {
	server := apiserver.New()
	defer server.Close()

	server.RespondWith("Device",
		map[string]any{"id": "b2775", "name": "truck-7"},
		map[string]any{"id": "b12", "name": "truck-3"},
	)

	client := newClientForServer(t, server)

	entities, getErr := client.Get(context.Background(), "Device", geotab.NewSearch())

	require.NoError(t, getErr)
	require.Len(t, entities, 2)
	assert.Equal(t, "b2775", entities[0].ID)
	assert.Equal(t, "b12", entities[1].ID)
}

func Test_Client_Get_SendsOneRequestEnvelopePerCall(t *testing.T) {
	server := apiserver.New()
	defer server.Close()

	client := newClientForServer(t, server)

	search := geotab.NewSearch().
		Where(map[string]any{"name": "%truck%"}).
		Where(map[string]any{"id": "b2775"})

	_, getErr := client.Get(context.Background(), "Device", search)
	require.NoError(t, getErr)

	requests := server.Requests()
	require.Len(t, requests, 1)

	request := requests[0]
	assert.Equal(t, "application/json", request.ContentType)
	assert.Equal(t, "Get", request.Method)
	assert.Equal(t, "Device", request.TypeName())
	assert.Equal(t, map[string]any{"name": "%truck%", "id": "b2775"}, request.Search())
	assert.Equal(t, "acme", request.Credentials()["database"])
	assert.Equal(t, "s-1", request.Credentials()["sessionId"])
	assert.Empty(t, request.FromVersion())
}

func Test_Client_Get_EmptySearchSerializesAsEmptyObject(t *testing.T) {
	server := apiserver.New()
	defer server.Close()

	client := newClientForServer(t, server)

	_, getErr := client.Get(context.Background(), "Device", geotab.NewSearch())
	require.NoError(t, getErr)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, map[string]any{}, requests[0].Search())
}

func Test_Client_Get_DoesNotMutateTheSearchValue(t *testing.T) {
	server := apiserver.New()
	defer server.Close()

	client := newClientForServer(t, server)

	search := geotab.NewSearch().Where(map[string]any{"name": "%truck%"})

	_, firstCallErr := client.Get(context.Background(), "Device", search)
	require.NoError(t, firstCallErr)

	_, secondCallErr := client.Get(context.Background(), "Device", search)
	require.NoError(t, secondCallErr)

	assert.Equal(t, map[string]any{"name": "%truck%"}, search.Conditions())

	requests := server.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, requests[0].Search(), requests[1].Search())
}

func Test_Client_First(t *testing.T) {
	t.Run("returns_the_first_entity_of_the_result", func(t *testing.T) {
		server := apiserver.New()
		defer server.Close()

		server.RespondWith("Device",
			map[string]any{"id": "b1"},
			map[string]any{"id": "b2"},
		)

		client := newClientForServer(t, server)

		entity, found, firstErr := client.First(context.Background(), "Device", geotab.NewSearch())

		require.NoError(t, firstErr)
		require.True(t, found)
		assert.Equal(t, "b1", entity.ID)
	})

	t.Run("reports_absent_for_an_empty_result", func(t *testing.T) {
		server := apiserver.New()
		defer server.Close()

		client := newClientForServer(t, server)

		_, found, firstErr := client.First(context.Background(), "Device", geotab.NewSearch())

		require.NoError(t, firstErr)
		assert.False(t, found)
	})
}

func Test_Client_Find_QueriesByIDCondition(t *testing.T) {
	server := apiserver.New()
	defer server.Close()

	server.RespondWith("Device", map[string]any{"id": "b2775", "name": "truck-7"})

	client := newClientForServer(t, server)

	entity, found, findErr := client.Find(context.Background(), "Device", "b2775")

	require.NoError(t, findErr)
	require.True(t, found)
	assert.Equal(t, "b2775", entity.ID)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, map[string]any{"id": "b2775"}, requests[0].Search())
}

func Test_Client_GetFeed_ReturnsResultsAndTheNextVersionToken(t *testing.T) {
	server := apiserver.New()
	defer server.Close()

	server.RespondToFeedWith("LogRecord", "42", map[string]any{"id": "x"})

	client := newClientForServer(t, server)

	feed, feedErr := client.GetFeed(context.Background(), "LogRecord", geotab.NewSearch(), "41")

	require.NoError(t, feedErr)
	require.Len(t, feed.Results, 1)
	assert.Equal(t, "x", feed.Results[0].ID)
	assert.Equal(t, "42", feed.ToVersion)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "GetFeed", requests[0].Method)
	assert.Equal(t, "41", requests[0].FromVersion())
}

func Test_Client_ClassifiesServerFaults(t *testing.T) {
	t.Run("credentials_fault_raises_a_credentials_error", func(t *testing.T) {
		server := apiserver.New()
		defer server.Close()

		message := "Incorrect MyGeotab login credentials for user bob@example.com"
		server.FailWith("InvalidUserException", message)

		client := newClientForServer(t, server)

		_, getErr := client.Get(context.Background(), "Device", geotab.NewSearch())

		var credentialsErr *geotab.CredentialsError
		require.ErrorAs(t, getErr, &credentialsErr)
		assert.Equal(t, message, credentialsErr.Message)
	})

	t.Run("any_other_fault_raises_a_generic_api_error", func(t *testing.T) {
		server := apiserver.New()
		defer server.Close()

		server.FailWith("DbUnavailableException", "Something else")

		client := newClientForServer(t, server)

		_, getErr := client.Get(context.Background(), "Device", geotab.NewSearch())

		var apiErr *geotab.APIError
		require.ErrorAs(t, getErr, &apiErr)
		assert.Equal(t, "Something else", apiErr.Message)
		assert.Equal(t, "DbUnavailableException", apiErr.Name)
	})
}

func Test_Client_TransportFailuresPropagateUnclassified(t *testing.T) {
	t.Run("unexpected_status_code", func(t *testing.T) {
		server := apiserver.New()
		defer server.Close()

		server.RespondWithStatus(http.StatusBadGateway, []byte("upstream gone"))

		client := newClientForServer(t, server)

		_, getErr := client.Get(context.Background(), "Device", geotab.NewSearch())

		assert.ErrorIs(t, getErr, geotab.ErrUnexpectedStatusCode)
	})

	t.Run("malformed_response_body", func(t *testing.T) {
		server := apiserver.New()
		defer server.Close()

		server.RespondWithStatus(http.StatusOK, []byte("not json at all"))

		client := newClientForServer(t, server)

		_, getErr := client.Get(context.Background(), "Device", geotab.NewSearch())

		assert.ErrorIs(t, getErr, geotab.ErrDecodingResponseFailed)
	})

	t.Run("connection_refused", func(t *testing.T) {
		server := apiserver.New()
		client := newClientForServer(t, server)
		server.Close()

		_, getErr := client.Get(context.Background(), "Device", geotab.NewSearch())

		assert.ErrorIs(t, getErr, geotab.ErrRequestFailed)
	})
}

func Test_NewClient_Validation(t *testing.T) {
	t.Run("rejects_an_empty_server", func(t *testing.T) {
		_, clientErr := httpengine.NewClient(geotab.Connection{})
		assert.ErrorIs(t, clientErr, geotab.ErrEmptyServer)
	})

	t.Run("rejects_a_nil_http_client", func(t *testing.T) {
		connection, _ := geotab.BuildConnection("my.geotab.com", geotab.Credentials{})

		_, clientErr := httpengine.NewClient(connection, httpengine.WithHTTPClient(nil))
		assert.ErrorIs(t, clientErr, geotab.ErrNilHTTPClient)
	})

	t.Run("rejects_an_empty_endpoint_path", func(t *testing.T) {
		connection, _ := geotab.BuildConnection("my.geotab.com", geotab.Credentials{})

		_, clientErr := httpengine.NewClient(connection, httpengine.WithEndpointPath(""))
		assert.ErrorIs(t, clientErr, geotab.ErrEmptyEndpointPath)
	})

	t.Run("endpoint_is_derived_from_the_connection", func(t *testing.T) {
		connection, _ := geotab.BuildConnection("my.geotab.com", geotab.Credentials{})

		client, clientErr := httpengine.NewClient(connection)
		require.NoError(t, clientErr)
		assert.Equal(t, "https://my.geotab.com/apiv1", client.Endpoint())
	})
}
