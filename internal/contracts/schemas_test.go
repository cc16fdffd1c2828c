package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFromPath(t *testing.T) {
	assert.Equal(t, "PageLoadedEvent/1.0.0", KeyFromPath("events/page-loaded/v1.json"))
	assert.Equal(t, "ScreenEvent/2.0.0", KeyFromPath("events/screen/v2.json"))
	assert.Equal(t, "", KeyFromPath("events/page-loaded.json"))
	assert.Equal(t, "", KeyFromPath("events/page-loaded/latest.json"))
}

func TestValidatePageLoadedEvent(t *testing.T) {
	valid := `{
		"event_id": "0b8f5f0e-6a35-4c8e-9d2c-3f1c2a4b5d6e",
		"screen_id": "tg:42",
		"page": 2,
		"total_pages": 3,
		"items_count": 10,
		"count": 23,
		"loaded_at": "2024-05-01T10:00:00Z"
	}`

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: valid},
		{
			name: "valid with trace id",
			body: `{"event_id":"0b8f5f0e-6a35-4c8e-9d2c-3f1c2a4b5d6e","screen_id":"s","page":1,"total_pages":0,"items_count":0,"count":0,"loaded_at":"2024-05-01T10:00:00Z","trace_id":"abc"}`,
		},
		{
			name:    "page below one",
			body:    `{"event_id":"0b8f5f0e-6a35-4c8e-9d2c-3f1c2a4b5d6e","screen_id":"s","page":0,"total_pages":0,"items_count":0,"count":0,"loaded_at":"2024-05-01T10:00:00Z"}`,
			wantErr: true,
		},
		{
			name:    "missing screen id",
			body:    `{"event_id":"0b8f5f0e-6a35-4c8e-9d2c-3f1c2a4b5d6e","page":1,"total_pages":0,"items_count":0,"count":0,"loaded_at":"2024-05-01T10:00:00Z"}`,
			wantErr: true,
		},
		{
			name:    "bad event id",
			body:    `{"event_id":"nope","screen_id":"s","page":1,"total_pages":0,"items_count":0,"count":0,"loaded_at":"2024-05-01T10:00:00Z"}`,
			wantErr: true,
		},
		{
			name:    "unknown field",
			body:    `{"event_id":"0b8f5f0e-6a35-4c8e-9d2c-3f1c2a4b5d6e","screen_id":"s","page":1,"total_pages":0,"items_count":0,"count":0,"loaded_at":"2024-05-01T10:00:00Z","extra":1}`,
			wantErr: true,
		},
		{name: "not json", body: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("PageLoadedEvent/1.0.0", []byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	assert.Error(t, Validate("MissingEvent/1.0.0", []byte(`{}`)))
}
