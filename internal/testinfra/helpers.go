package testinfra

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TruncateAllTables empties every table, children first.
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	tables := []string{
		"club_post_likes",
		"club_posts",
		"announcements",
		"messages",
		"events",
		"memberships",
		"club_founders",
		"clubs",
		"users",
	}

	for _, table := range tables {
		_, err := db.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

// CreateTestPNGImage encodes a small solid PNG.
func CreateTestPNGImage(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// CreateMultipartFormData builds a form with one file part of the given
// content type plus the extra text fields.
func CreateMultipartFormData(t *testing.T, fieldName, fileName, contentType string, fileData []byte, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldName, fileName))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err, "failed to create form file field")

	_, err = part.Write(fileData)
	require.NoError(t, err, "failed to write file data")

	for key, value := range fields {
		err = writer.WriteField(key, value)
		require.NoError(t, err, "failed to write form field %s", key)
	}

	require.NoError(t, writer.Close(), "failed to close multipart writer")

	return body, writer.FormDataContentType()
}

func CreateJSONRequest(method, url string, jsonBody []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func CreateAuthRequest(method, url string, jsonBody []byte, token string) *http.Request {
	req := CreateJSONRequest(method, url, jsonBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func CreateAuthMultipartRequest(method, url string, body *bytes.Buffer, contentType string, token string) *http.Request {
	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func MustJSON(t *testing.T, value interface{}) []byte {
	body, err := sonic.Marshal(value)
	require.NoError(t, err)
	return body
}

func ParseJSONResponse(t *testing.T, resp *http.Response) map[string]interface{} {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NotEmpty(t, body, "response body should not be empty")

	var result map[string]interface{}
	err = sonic.Unmarshal(body, &result)
	require.NoError(t, err, "failed to parse JSON response: %s", body)

	return result
}

// ErrorResponse mirrors the body of every failed request.
type ErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Param    string `json:"param"`
	State    string `json:"state"`
	Redirect string `json:"redirect"`
}

func ParseErrorResponse(t *testing.T, resp *http.Response) ErrorResponse {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope struct {
		Error *ErrorResponse `json:"error"`
	}
	err = sonic.Unmarshal(body, &envelope)
	require.NoError(t, err, "failed to parse error response: %s", body)
	require.NotNil(t, envelope.Error, "response should contain error field: %s", body)

	return *envelope.Error
}

func GenerateRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)
	for i := range b {
		// #nosec G404 -- test data only
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
