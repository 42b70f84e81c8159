package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateResponse(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"parts": []map[string]string{{"text": text}}},
			"finishReason": "STOP",
		}},
	})
	return string(b)
}

func TestClientExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		var gotPath, gotKey string
		var gotBody generateRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("x-goog-api-key")
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.Write([]byte(candidateResponse(
				"Sure! ```json\n" + `{"challan_info":{"challan_number":"J1"},"table_data":[{"description":"Bolt","weight_sent":"10"}]}` + "\n```",
			)))
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
		doc, err := c.Extract(ctx, []byte("img-bytes"), "image/png", "")

		require.NoError(t, err)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", gotPath)
		assert.Equal(t, "k", gotKey)
		assert.Equal(t, "J1", doc.ChallanInfo.ChallanNumber)
		require.Len(t, doc.TableData, 1)
		assert.Equal(t, "Bolt", doc.TableData[0].Description)

		// prompt, then the image part
		require.Len(t, gotBody.Contents, 1)
		require.Len(t, gotBody.Contents[0].Parts, 2)
		assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "challan_info")
		require.NotNil(t, gotBody.Contents[0].Parts[1].InlineData)
		assert.Equal(t, "image/png", gotBody.Contents[0].Parts[1].InlineData.MimeType)
	})

	t.Run("model override in path", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(candidateResponse(`{"table_data":[]}`)))
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
		_, err := c.Extract(ctx, []byte("x"), "image/jpeg", "gemini-1.5-pro")

		require.NoError(t, err)
		assert.Equal(t, "/v1beta/models/gemini-1.5-pro:generateContent", gotPath)
	})

	t.Run("auth rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"message":"key invalid"}}`))
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "bad", BaseURL: srv.URL}, nil)
		_, err := c.Extract(ctx, []byte("x"), "image/png", "")

		var ve *Error
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, KindAuthRejected, ve.Kind)
		assert.Equal(t, http.StatusForbidden, ve.HTTPStatus)
	})

	t.Run("safety block", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
		_, err := c.Extract(ctx, []byte("x"), "image/png", "")

		var ve *Error
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, KindContentRejected, ve.Kind)
	})

	t.Run("empty response text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(candidateResponse("   ")))
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
		_, err := c.Extract(ctx, []byte("x"), "image/png", "")

		var ve *Error
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, KindUnknown, ve.Kind)
	})

	t.Run("no json in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(candidateResponse("I cannot see a table in this image.")))
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
		_, err := c.Extract(ctx, []byte("x"), "image/png", "")

		var ve *Error
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, KindNoJSONFound, ve.Kind)
		assert.Contains(t, ve.RawResponse, "cannot see a table")
	})
}

func TestClientListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models", r.URL.Path)
		w.Write([]byte(`{"models":[
			{"name":"models/gemini-1.5-flash","supportedGenerationMethods":["generateContent","countTokens"]},
			{"name":"models/embedding-001","supportedGenerationMethods":["embedContent"]}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
	ids, err := c.ListModels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-1.5-flash"}, ids)
}

func TestClientCheckKey(t *testing.T) {
	t.Run("working key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(candidateResponse("Hello!")))
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
		assert.NoError(t, c.CheckKey(context.Background()))
	})

	t.Run("rejected key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil)
		err := c.CheckKey(context.Background())

		var ve *Error
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, KindAuthRejected, ve.Kind)
	})
}
