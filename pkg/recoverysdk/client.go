package recoverysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the recovery service. All operations are
// unauthenticated; deployments front the service with their own access
// control.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new recovery service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs an HTTP request with an optional JSON body.
func (c *SDKClient) doJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// decodeJSON decodes a JSON response into the target.
// Returns a typed *APIError if the response indicates an error.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkStatusNoContent returns a typed error if the response status is not 204 No Content.
func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, bodyBytes)
	}

	return nil
}

// VerifyRecovery submits a full set of question/answer pairs for
// verification. A rejected attempt is NOT an error: the response's Accepted
// field reports the outcome. An error return means the attempt could not be
// evaluated at all.
func (c *SDKClient) VerifyRecovery(ctx context.Context, answers []AnswerPair) (*VerifyResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/recovery/verify", VerifyRequest{Answers: answers})
	if err != nil {
		return nil, err
	}

	var result VerifyResponse
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListQuestions returns the registered question prompts. Stored hashes are
// never exposed.
func (c *SDKClient) ListQuestions(ctx context.Context) (*QuestionListResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/recovery/questions", nil)
	if err != nil {
		return nil, err
	}

	var result QuestionListResponse
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}

	return &result, nil
}

// ReplaceQuestions registers a new question set, atomically replacing any
// previously stored set.
func (c *SDKClient) ReplaceQuestions(ctx context.Context, questions []RegisterEntry) (*QuestionListResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/v1/questions", RegisterRequest{Questions: questions})
	if err != nil {
		return nil, err
	}

	var result QuestionListResponse
	if err := decodeJSON(resp, &result, http.StatusCreated); err != nil {
		return nil, err
	}

	return &result, nil
}

// UpgradeQuestions rewrites every stored hash with the modern scheme after
// the supplied answers are confirmed against the stored records.
func (c *SDKClient) UpgradeQuestions(ctx context.Context, answers []AnswerPair) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/questions/upgrade", UpgradeRequest{Answers: answers})
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}
