package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vytor/bardspeak/internal/logger"
)

// ErrTranscriptionFailed wraps any recognition failure. Callers recover from
// it locally; it never surfaces to API clients.
var ErrTranscriptionFailed = errors.New("transcription failed")

// Transcriber converts recorded speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// GoogleTranscriber uses Cloud Speech-to-Text synchronous recognition, which
// fits the short clips the speaking module records.
type GoogleTranscriber struct {
	client   *speech.Client
	language string
	timeout  time.Duration
	log      *logger.Logger
}

func NewGoogleTranscriber(ctx context.Context, credentialsFile, language string, timeout time.Duration) (*GoogleTranscriber, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	if language == "" {
		language = "en-US"
	}
	return &GoogleTranscriber{
		client:   client,
		language: language,
		timeout:  timeout,
		log:      logger.Default().WithPrefix("speech"),
	}, nil
}

func (t *GoogleTranscriber) Close() error {
	return t.client.Close()
}

func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: empty audio", ErrTranscriptionFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	encoding := InferEncoding(mimeType)
	cfg := &speechpb.RecognitionConfig{
		Encoding:                   encoding,
		LanguageCode:               t.language,
		EnableAutomaticPunctuation: true,
	}
	// Opus streams do not self-describe their rate; browsers record at 48k.
	if encoding == speechpb.RecognitionConfig_OGG_OPUS || encoding == speechpb.RecognitionConfig_WEBM_OPUS {
		cfg.SampleRateHertz = 48000
	}

	req := &speechpb.RecognizeRequest{
		Config: cfg,
		Audio:  &speechpb.RecognitionAudio{AudioSource: &speechpb.RecognitionAudio_Content{Content: audio}},
	}

	resp, err := t.recognizeWithRetry(ctx, req)
	if err != nil {
		t.log.Warn("recognition failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}

	text := JoinTranscripts(resp)
	if text == "" {
		return "", fmt.Errorf("%w: no speech recognized", ErrTranscriptionFailed)
	}
	return text, nil
}

func (t *GoogleTranscriber) recognizeWithRetry(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
	const maxRetries = 2
	backoff := 500 * time.Millisecond
	var last error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, err := t.client.Recognize(ctx, req)
		if err == nil {
			return resp, nil
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted && code != codes.DeadlineExceeded {
			return nil, err
		}
		if attempt == maxRetries {
			break
		}
		t.log.Debug("retryable recognition error (%v), attempt %d", code, attempt+1)
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, last
}

// InferEncoding maps an upload's mime type (or bare filename) to the
// recognizer encoding. Unknown types stay unspecified so the service can
// sniff self-describing containers.
func InferEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	m := strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case strings.Contains(m, "wav"):
		return speechpb.RecognitionConfig_LINEAR16
	case strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(m, "mp3") || strings.Contains(m, "mpeg"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(m, "webm"):
		return speechpb.RecognitionConfig_WEBM_OPUS
	case strings.Contains(m, "ogg") || strings.Contains(m, "opus"):
		return speechpb.RecognitionConfig_OGG_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

// JoinTranscripts flattens a recognition response into one transcript,
// taking the top alternative of each result.
func JoinTranscripts(resp *speechpb.RecognizeResponse) string {
	var parts []string
	for _, res := range resp.GetResults() {
		alts := res.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
