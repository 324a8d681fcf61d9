package engine_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/engine"
)

const predictionJSON = `{
  "id": "pred-42",
  "basic_prediction": {
    "name": "张三",
    "gender": "男",
    "birth_date": "1990-07-15",
    "birth_time": "12:00",
    "zodiac": "马",
    "zodiac_sign": "巨蟹座",
    "eight_characters": {"year": "庚午", "month": "癸未", "day": "丙子", "hour": "甲午"},
    "five_elements": ["金", "火", "水"],
    "lucky_numbers": [4, 1],
    "lucky_colors": ["白色", "金色"],
    "purpose": "财运",
    "religion": "无"
  },
  "enhanced_prediction": {
    "enhanced": true,
    "yearly_fortune": "• 上半年平稳\n• 下半年上升",
    "purpose_advice": ["多结交朋友", "谨慎投资"],
    "usage_tips": null
  },
  "bracelet_recommendation": {"source": "enhanced", "recommendation": "1. 黄水晶\n2. 金发晶"}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *engine.HTTPClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := engine.NewHTTPClient(ts.URL + "/")
	require.NoError(t, err)
	return c
}

// TestPredict_Success verifies the request shape and the decoding of a full response.
func TestPredict_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, config.APIPathPredict, r.URL.Path)
		assert.Equal(t, config.MimeJSON, r.Header.Get(config.HeaderContentType))
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))

		_, err := uuid.Parse(r.Header.Get(config.HeaderRequestID))
		assert.NoError(t, err, "Request ID should be a UUID")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "张三", body["name"])
		assert.EqualValues(t, 1990, body["birth_year"])
		assert.EqualValues(t, 7, body["birth_month"])
		assert.EqualValues(t, 15, body["birth_day"])
		assert.EqualValues(t, 12, body["birth_hour"])
		assert.Equal(t, true, body["is_lunar_date"])
		assert.Equal(t, "财运", body["purpose"])

		w.Header().Set(config.HeaderContentType, config.MimeJSON)
		_, _ = w.Write([]byte(predictionJSON))
	})

	p, err := c.Predict(context.Background(), engine.FortuneRequest{
		Name: "张三", Gender: "男",
		BirthYear: 1990, BirthMonth: 7, BirthDay: 15, BirthHour: 12,
		IsLunarDate: true, Purpose: "财运", Religion: "无",
	})
	require.NoError(t, err)

	assert.Equal(t, "pred-42", p.ID)
	assert.Equal(t, "巨蟹座", p.Basic.ZodiacSign)
	assert.Equal(t, "庚午 癸未 丙子 甲午", p.Basic.EightCharacters.Format("未知"))
	assert.Equal(t, []int{4, 1}, p.Basic.LuckyNumbers)
	assert.True(t, p.Enhanced.Enhanced)
	assert.Equal(t, "• 多结交朋友\n• 谨慎投资", p.Enhanced.PurposeAdvice.String())
	assert.Empty(t, p.Enhanced.UsageTips.String())
	assert.Equal(t, "1. 黄水晶\n2. 金发晶", p.BraceletText())
}

// TestClient_Errors verifies that non-2xx answers become *APIError with the backend message.
func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantMsg    string
	}{
		{"BadRequest with message", http.StatusBadRequest, `{"error":"无效的阳历日期"}`, "无效的阳历日期"},
		{"NotFound", http.StatusNotFound, `{"error":"无效的分享ID或分享已过期"}`, "无效的分享ID或分享已过期"},
		{"ServerError without JSON", http.StatusInternalServerError, "boom", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Predict(context.Background(), engine.FortuneRequest{})
			require.Error(t, err)

			var apiErr *engine.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Contains(t, err.Error(), config.ErrBackendStatus)
		})
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := c.Predict(context.Background(), engine.FortuneRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrDecodeResponse)
}

// TestClient_Timeout ensures the client respects context deadlines.
func TestClient_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Predict(ctx, engine.FortuneRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestShare(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, config.APIPathShare, r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pred-42", body["prediction_id"])

		_, _ = w.Write([]byte(`{"share_id":"s1","share_url":"http://example.com/share?id=s1"}`))
	})

	link, err := c.Share(context.Background(), "pred-42")
	require.NoError(t, err)
	assert.Equal(t, "s1", link.ShareID)
	assert.Equal(t, "http://example.com/share?id=s1", link.ShareURL)
}

// TestShare_EmptyID ensures no request is sent for an empty prediction id.
func TestShare_EmptyID(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Share(context.Background(), "  ")
	assert.ErrorIs(t, err, engine.ErrEmptyPredictionID)
	assert.False(t, called)
}

func TestSharedPrediction(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, config.APIPathShare+"/abc", r.URL.Path)
		_, _ = w.Write([]byte(predictionJSON))
	})

	p, err := c.SharedPrediction(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "张三", p.Basic.Name)

	_, err = c.SharedPrediction(context.Background(), "")
	assert.ErrorIs(t, err, engine.ErrEmptyShareID)
}

// TestNewHTTPClient_Validation ensures malformed and non-HTTP URLs are caught early.
func TestNewHTTPClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"Control character", string([]byte{0x7f}), config.ErrInvalidURL},
		{"FTP", "ftp://example.com", config.ErrProtocol},
		{"No scheme", "example.com", config.ErrProtocol},
		{"No host", "http://", config.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewHTTPClient(tt.url)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	c, err := engine.NewHTTPClient("https://fortune.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://fortune.example.com", c.BaseURL)
}

func TestAPIError_Message(t *testing.T) {
	err := &engine.APIError{StatusCode: http.StatusBadGateway}
	assert.Equal(t, config.ErrBackendStatus+": 502 Bad Gateway", err.Error())
}
