package speech_test

import (
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/stretchr/testify/assert"
	"github.com/vytor/bardspeak/internal/speech"
)

func TestInferEncoding(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		want     speechpb.RecognitionConfig_AudioEncoding
	}{
		{
			name:     "wav",
			mimeType: "audio/wav",
			want:     speechpb.RecognitionConfig_LINEAR16,
		},
		{
			name:     "x-wav variant",
			mimeType: "audio/x-wav",
			want:     speechpb.RecognitionConfig_LINEAR16,
		},
		{
			name:     "flac",
			mimeType: "audio/flac",
			want:     speechpb.RecognitionConfig_FLAC,
		},
		{
			name:     "mp3",
			mimeType: "audio/mp3",
			want:     speechpb.RecognitionConfig_MP3,
		},
		{
			name:     "mpeg alias for mp3",
			mimeType: "audio/mpeg",
			want:     speechpb.RecognitionConfig_MP3,
		},
		{
			name:     "browser webm recording",
			mimeType: "audio/webm;codecs=opus",
			want:     speechpb.RecognitionConfig_WEBM_OPUS,
		},
		{
			name:     "ogg opus",
			mimeType: "audio/ogg",
			want:     speechpb.RecognitionConfig_OGG_OPUS,
		},
		{
			name:     "bare opus",
			mimeType: "opus",
			want:     speechpb.RecognitionConfig_OGG_OPUS,
		},
		{
			name:     "uppercase input",
			mimeType: "AUDIO/WAV",
			want:     speechpb.RecognitionConfig_LINEAR16,
		},
		{
			name:     "unknown stays unspecified",
			mimeType: "application/octet-stream",
			want:     speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
		},
		{
			name:     "empty stays unspecified",
			mimeType: "",
			want:     speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := speech.InferEncoding(tt.mimeType)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinTranscripts(t *testing.T) {
	resp := &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{
				Alternatives: []*speechpb.SpeechRecognitionAlternative{
					{Transcript: "the captain cool "},
					{Transcript: "the captain call"},
				},
			},
			{
				Alternatives: []*speechpb.SpeechRecognitionAlternative{},
			},
			{
				Alternatives: []*speechpb.SpeechRecognitionAlternative{
					{Transcript: " led india to victory"},
				},
			},
		},
	}

	got := speech.JoinTranscripts(resp)

	assert.Equal(t, "the captain cool led india to victory", got)
}

func TestJoinTranscripts_Empty(t *testing.T) {
	assert.Equal(t, "", speech.JoinTranscripts(&speechpb.RecognizeResponse{}))
}
