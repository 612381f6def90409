package oracle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bardspeak/internal/oracle"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    int
		wantErr bool
	}{
		{name: "bare digit", reply: "4", want: 4},
		{name: "digit with whitespace", reply: " 5\n", want: 5},
		{name: "labelled reply", reply: "Rating: 3", want: 3},
		{name: "digit inside sentence", reply: "I'd say 4 out of 5.", want: 4},
		{name: "zero is out of range", reply: "0", wantErr: true},
		{name: "no digit", reply: "excellent work", wantErr: true},
		{name: "empty reply", reply: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oracle.ParseRating(tt.reply)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Rate_CanceledContext(t *testing.T) {
	client := oracle.NewClient("test-key", "http://127.0.0.1:0/v1", "test-model", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Rate(ctx, "some practice text")
	require.Error(t, err)
	assert.ErrorIs(t, err, oracle.ErrUnavailable)
}
