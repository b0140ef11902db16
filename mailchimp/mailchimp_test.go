package mailchimp

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubList fakes the list-member endpoints well enough to exercise the
// sync state machine: a map of subscriber hash to status.
type stubList struct {
	members map[string]string
	adds    int
	patches int
}

func (s *stubList) handler(t *testing.T, listID string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /lists/"+listID+"/members/{hash}", func(w http.ResponseWriter, r *http.Request) {
		status, ok := s.members[r.PathValue("hash")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(Member{Status: status})
	})

	mux.HandleFunc("POST /lists/"+listID+"/members", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			EmailAddress string `json:"email_address"`
			Status       string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		s.adds++
		s.members[subscriberHash(body.EmailAddress)] = body.Status
		json.NewEncoder(w).Encode(Member{EmailAddress: body.EmailAddress, Status: body.Status})
	})

	mux.HandleFunc("PATCH /lists/"+listID+"/members/{hash}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		s.patches++
		s.members[r.PathValue("hash")] = body.Status
		json.NewEncoder(w).Encode(Member{Status: body.Status})
	})

	return mux
}

func newStubClient(t *testing.T, members map[string]string) (*Client, *stubList) {
	t.Helper()
	stub := &stubList{members: members}
	srv := httptest.NewServer(stub.handler(t, "list1"))
	t.Cleanup(srv.Close)
	return NewWithBaseURL("key", "list1", srv.URL), stub
}

func TestSyncSubscribeAddsAbsentMember(t *testing.T) {
	client, stub := newStubClient(t, map[string]string{})

	err := client.SyncSubscribe(context.Background(), "jane@example.com", "Jane", "Doe")
	require.NoError(t, err)

	assert.Equal(t, 1, stub.adds)
	assert.Equal(t, StatusSubscribed, stub.members[subscriberHash("jane@example.com")])
}

func TestSyncSubscribeReaddsArchivedMember(t *testing.T) {
	hash := subscriberHash("jane@example.com")
	client, stub := newStubClient(t, map[string]string{hash: StatusArchived})

	err := client.SyncSubscribe(context.Background(), "jane@example.com", "Jane", "Doe")
	require.NoError(t, err)

	assert.Equal(t, 1, stub.adds)
	assert.Equal(t, StatusSubscribed, stub.members[hash])
}

func TestSyncSubscribeFlipsUnsubscribedMember(t *testing.T) {
	hash := subscriberHash("jane@example.com")
	client, stub := newStubClient(t, map[string]string{hash: StatusUnsubscribed})

	err := client.SyncSubscribe(context.Background(), "jane@example.com", "Jane", "Doe")
	require.NoError(t, err)

	assert.Equal(t, 0, stub.adds)
	assert.Equal(t, 1, stub.patches)
	assert.Equal(t, StatusSubscribed, stub.members[hash])
}

func TestSyncSubscribeLeavesSubscribedMemberAlone(t *testing.T) {
	hash := subscriberHash("jane@example.com")
	client, stub := newStubClient(t, map[string]string{hash: StatusSubscribed})

	err := client.SyncSubscribe(context.Background(), "jane@example.com", "Jane", "Doe")
	require.NoError(t, err)

	assert.Equal(t, 0, stub.adds)
	assert.Equal(t, 0, stub.patches)
}

func TestSyncUnsubscribe(t *testing.T) {
	hash := subscriberHash("jane@example.com")
	client, stub := newStubClient(t, map[string]string{hash: StatusSubscribed})

	err := client.SyncUnsubscribe(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, StatusUnsubscribed, stub.members[hash])

	// Unsubscribing someone the list never had is a no-op, not an error.
	require.NoError(t, client.SyncUnsubscribe(context.Background(), "ghost@example.com"))
	assert.Equal(t, 1, stub.patches)
}

func TestErrorResponsesKeepConnectionReusable(t *testing.T) {
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"title":"Internal Server Error","detail":"something broke"}`))
	}))

	var mu sync.Mutex
	opened := 0
	srv.Config.ConnState = func(c net.Conn, s http.ConnState) {
		if s == http.StateNew {
			mu.Lock()
			opened++
			mu.Unlock()
		}
	}
	srv.Start()
	t.Cleanup(srv.Close)

	client := NewWithBaseURL("key", "list1", srv.URL)
	for range 3 {
		_, err := client.GetMember(context.Background(), "jane@example.com")
		require.Error(t, err)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, opened, "error bodies must be drained so keep-alive can reuse the connection")
}

func TestSubscriberHashIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, subscriberHash("Jane@Example.COM"), subscriberHash("jane@example.com"))
	// Known MD5 vector for the lowercased address.
	assert.Equal(t, "9e26471d35a78862c17e467d87cddedf", subscriberHash("jane@example.com"))
}

func TestEnabled(t *testing.T) {
	assert.True(t, NewWithBaseURL("key", "list", "http://x").Enabled())
	assert.False(t, NewWithBaseURL("", "list", "http://x").Enabled())
	assert.False(t, NewWithBaseURL("key", "", "http://x").Enabled())
}
