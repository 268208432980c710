package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lessonfetch/lessonfetch"
)

// DefaultBaseURL is the LingQ API host.
const DefaultBaseURL = "https://www.lingq.com"

// DefaultUploadTimeout bounds text lesson uploads.
const DefaultUploadTimeout = 35 * time.Second

// DefaultAudioUploadTimeout bounds audio lesson uploads, which carry the
// whole MP3 in the request body.
const DefaultAudioUploadTimeout = 120 * time.Second

// Ensure LessonClient implements lessonfetch.LessonService at compile time.
var _ lessonfetch.LessonService = (*LessonClient)(nil)

// LessonClient imports lessons into LingQ via its v3 REST API.
type LessonClient struct {
	client   *http.Client
	baseURL  string
	uploadTO time.Duration
	audioTO  time.Duration
}

// LessonClientOption configures a LessonClient.
type LessonClientOption func(*LessonClient)

// WithBaseURL overrides the API host. Used in tests.
func WithBaseURL(u string) LessonClientOption {
	return func(c *LessonClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithUploadTimeout sets the timeout for text lesson uploads.
func WithUploadTimeout(d time.Duration) LessonClientOption {
	return func(c *LessonClient) {
		c.uploadTO = d
	}
}

// NewLessonClient creates a client for the LingQ lesson import API.
func NewLessonClient(opts ...LessonClientOption) *LessonClient {
	c := &LessonClient{
		baseURL:  DefaultBaseURL,
		uploadTO: DefaultUploadTimeout,
		audioTO:  DefaultAudioUploadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{}

	return c
}

// lessonsURL builds the import endpoint for a language code.
func (c *LessonClient) lessonsURL(language string) string {
	return fmt.Sprintf("%s/api/v3/%s/lessons/", c.baseURL, language)
}

// ImportLesson creates a new private lesson and returns its id.
func (c *LessonClient) ImportLesson(ctx context.Context, token string, lesson *lessonfetch.Lesson) (int64, error) {
	if token == "" {
		return 0, lessonfetch.Errorf(lessonfetch.EUNAUTHORIZED, "missing API key")
	}
	if err := lesson.Validate(); err != nil {
		return 0, err
	}

	body, err := json.Marshal(lesson)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTO)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.lessonsURL(lesson.Language), bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Token "+token)
	req.Header.Set("Content-Type", "application/json")

	return c.send(req)
}

// ImportAudioLesson creates a new private lesson with an attached MP3 and
// returns its id. The lesson fields travel as multipart form values next to
// the audio file.
func (c *LessonClient) ImportAudioLesson(ctx context.Context, token string, lesson *lessonfetch.Lesson, audioPath string) (int64, error) {
	if token == "" {
		return 0, lessonfetch.Errorf(lessonfetch.EUNAUTHORIZED, "missing API key")
	}
	if err := lesson.Validate(); err != nil {
		return 0, err
	}

	audio, err := os.Open(audioPath)
	if err != nil {
		return 0, err
	}
	defer audio.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("title", lesson.Title); err != nil {
		return 0, err
	}
	if err := writer.WriteField("text", lesson.Text); err != nil {
		return 0, err
	}
	if err := writer.WriteField("share_status", lesson.ShareStatus); err != nil {
		return 0, err
	}
	if lesson.CollectionID != 0 {
		if err := writer.WriteField("collection", strconv.FormatInt(lesson.CollectionID, 10)); err != nil {
			return 0, err
		}
	}

	part, err := writer.CreatePart(audioPartHeader(filepath.Base(audioPath)))
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return 0, err
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.audioTO)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.lessonsURL(lesson.Language), &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Token "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req)
}

// send executes the request and decodes the lesson id from the response.
func (c *LessonClient) send(req *http.Request) (int64, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, apiError(resp.StatusCode, body)
	}

	// The API responds with the created lesson; an empty body still means
	// success, just without an id to report.
	if len(bytes.TrimSpace(body)) == 0 {
		return 0, nil
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, lessonfetch.Errorf(lessonfetch.EINTERNAL, "unexpected API response: %s", snippet(body))
	}

	return created.ID, nil
}

// audioPartHeader builds the multipart header for the MP3 file field.
func audioPartHeader(filename string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename=%q`, filename))
	h.Set("Content-Type", "audio/mpeg")
	return h
}

// apiError maps a LingQ API failure to a coded domain error.
func apiError(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return lessonfetch.Errorf(lessonfetch.EUNAUTHORIZED, "LingQ rejected the API key (HTTP %d)", status)
	case http.StatusNotFound:
		return lessonfetch.Errorf(lessonfetch.ENOTFOUND, "unknown LingQ language or endpoint (HTTP %d)", status)
	case http.StatusBadRequest:
		return lessonfetch.Errorf(lessonfetch.EINVALID, "LingQ rejected the lesson: %s", snippet(body))
	default:
		return lessonfetch.Errorf(lessonfetch.EINTERNAL, "LingQ API error (HTTP %d): %s", status, snippet(body))
	}
}

// snippet trims a response body for inclusion in error messages.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}
