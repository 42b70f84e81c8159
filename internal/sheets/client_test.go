package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirag14252/challan-app/internal/model"
)

func sampleRows() []model.OutputRow {
	return []model.OutputRow{{
		ChallanNumber:  "J1",
		VendorName:     "V1",
		Description:    "Bolt",
		WeightSent:     "10",
		WeightReceived: "0",
		Status:         model.StatusNotReceived,
		Difference:     "10",
		NumberOfBags:   "2",
		PlatingColor:   "Zinc",
		Date:           "2024-01-02",
		Timestamp:      "2024-01-02 10:00:00",
	}}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Status
	}{
		{"success", "Success: 3 rows added", StatusSuccess},
		{"unauthorized", "Unauthorized", StatusAuthRejected},
		{"invalid format", "Error: Invalid data format", StatusFormatRejected},
		{"empty payload", "No postData received", StatusEmptyPayloadRejected},
		{"anything else", "<html>It broke</html>", StatusUnknownResponse},
		{"empty body", "", StatusUnknownResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.body).Status)
		})
	}
}

// A body carrying several markers must take the first match in priority
// order; Success is checked before Unauthorized.
func TestClassify_PriorityOrder(t *testing.T) {
	out := Classify("Unauthorized earlier, but Success eventually")
	assert.Equal(t, StatusSuccess, out.Status)

	out = Classify("Unauthorized; also Invalid data format")
	assert.Equal(t, StatusAuthRejected, out.Status)

	out = Classify("Invalid data format and No postData received")
	assert.Equal(t, StatusFormatRejected, out.Status)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("payload shape and success", func(t *testing.T) {
		var got struct {
			Key  string     `json:"key"`
			Data [][]string `json:"data"`
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte("Success"))
		}))
		defer srv.Close()

		c := NewClient(Config{ScriptURL: srv.URL, Secret: "abc123"}, nil)
		out := c.Submit(ctx, sampleRows(), "", "")

		assert.Equal(t, StatusSuccess, out.Status)
		assert.Equal(t, 1, out.RowCount)
		assert.Equal(t, http.StatusOK, out.HTTPStatus)

		assert.Equal(t, "abc123", got.Key)
		require.Len(t, got.Data, 1)
		assert.Equal(t, []string{
			"J1", "V1", "Bolt", "10", "0", "Not Received", "", "10", "2", "Zinc", "",
			"2024-01-02", "2024-01-02 10:00:00",
		}, got.Data[0])
	})

	t.Run("overrides beat configured values", func(t *testing.T) {
		var gotKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var p struct {
				Key string `json:"key"`
			}
			json.NewDecoder(r.Body).Decode(&p)
			gotKey = p.Key
			w.Write([]byte("Success"))
		}))
		defer srv.Close()

		c := NewClient(Config{ScriptURL: "http://configured.invalid", Secret: "abc123"}, nil)
		out := c.Submit(ctx, sampleRows(), srv.URL, "other-secret")

		assert.Equal(t, StatusSuccess, out.Status)
		assert.Equal(t, "other-secret", gotKey)
	})

	t.Run("unauthorized body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("Unauthorized"))
		}))
		defer srv.Close()

		c := NewClient(Config{ScriptURL: srv.URL, Secret: "wrong"}, nil)
		out := c.Submit(ctx, sampleRows(), "", "")

		assert.Equal(t, StatusAuthRejected, out.Status)
		assert.Equal(t, "Unauthorized", out.Body)
	})

	t.Run("unclassified non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream exploded"))
		}))
		defer srv.Close()

		c := NewClient(Config{ScriptURL: srv.URL, Secret: "abc123"}, nil)
		out := c.Submit(ctx, sampleRows(), "", "")

		assert.Equal(t, StatusUnknownResponse, out.Status)
		assert.Equal(t, http.StatusBadGateway, out.HTTPStatus)
		assert.Equal(t, "upstream exploded", out.Body)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		c := NewClient(Config{ScriptURL: srv.URL, Secret: "abc123", Timeout: 20 * time.Millisecond}, nil)
		out := c.Submit(ctx, sampleRows(), "", "")

		assert.Equal(t, StatusTimeout, out.Status)
		assert.NotEmpty(t, out.Err)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing listening anymore

		c := NewClient(Config{ScriptURL: srv.URL, Secret: "abc123"}, nil)
		out := c.Submit(ctx, sampleRows(), "", "")

		assert.Equal(t, StatusNetworkError, out.Status)
		assert.NotEmpty(t, out.Err)
	})
}
