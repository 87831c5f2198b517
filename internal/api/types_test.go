package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ID
	}{
		{name: "number", in: `42`, want: "42"},
		{name: "string", in: `"u001"`, want: "u001"},
		{name: "null", in: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.in), &id))
			assert.Equal(t, tt.want, id)
		})
	}

	var id ID
	require.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestID_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}{A: "7", B: "u7", C: "007"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":7,"b":"u7","c":"007"}`, string(out))
}

func TestPost_DecodesBackendShape(t *testing.T) {
	raw := `{"success":true,"message":"Posts fetched successfully","data":[
		{"id":3,"user_id":"u001","title":"t","body":"b"}
	]}`

	var env Envelope[[]Post]
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	require.True(t, env.Success)
	require.Len(t, env.Data, 1)
	assert.Equal(t, ID("3"), env.Data[0].ID)
	assert.Equal(t, ID("u001"), env.Data[0].UserID)
}

func TestAddress_String(t *testing.T) {
	a := Address{Street: "1 Main", City: "Lyon", State: "RH", Zipcode: "69001"}
	assert.Equal(t, "1 Main, RH, Lyon, 69001", a.String())
}

func TestNewPost_Validate(t *testing.T) {
	tests := []struct {
		name     string
		post     NewPost
		wantMsg  string
		wantForm string
	}{
		{name: "valid", post: NewPost{UserID: "1", Title: "t", Body: "b"}},
		{name: "missing user", post: NewPost{Title: "t", Body: "b"}, wantMsg: "userId is required", wantForm: "User is required"},
		{name: "blank title", post: NewPost{UserID: "1", Title: "  ", Body: "b"}, wantMsg: "title is required", wantForm: "Title is required"},
		{name: "missing body", post: NewPost{UserID: "1", Title: "t"}, wantMsg: "body is required", wantForm: "Body is required"},
		{
			name:     "long title",
			post:     NewPost{UserID: "1", Title: string(make([]byte, 201)), Body: "b"},
			wantMsg:  "title must be at most 200 characters",
			wantForm: "Title must be at most 200 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidPost)
			assert.Equal(t, "invalid post: "+tt.wantMsg, err.Error())
			assert.Equal(t, tt.wantForm, UserMessage(err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "boom", UserMessage(&APIError{StatusCode: 400, Message: "boom"}))
	assert.Contains(t, UserMessage(&NetworkError{Op: "GET /users", Err: errors.New("refused")}), "Network error")
	assert.Contains(t, UserMessage(ErrCircuitOpen), "unavailable")
	assert.Equal(t, "other", UserMessage(errors.New("other")))
	assert.Equal(t, "Body is required", UserMessage(fmt.Errorf("submit: %w", &PostError{Field: "body", Problem: "is required"})))
}
