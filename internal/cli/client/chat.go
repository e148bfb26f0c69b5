package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/types"
)

// SendChat forwards a transcript to the assistant and returns its reply.
// Callers are responsible for excluding system-role entries from messages.
func (c *APIClient) SendChat(ctx context.Context, messages []types.ChatMessage) (*types.ChatResponse, error) {
	if len(messages) == 0 {
		return nil, wrapLocalError(fmt.Errorf("chat request requires at least one message"))
	}

	// Copy messages so a caller mutating its transcript after submission
	// cannot race with the request encoding
	safeMessages := make([]types.ChatMessage, len(messages))
	copy(safeMessages, messages)

	reqBody := types.ChatRequest{Messages: safeMessages}

	var chatResp types.ChatResponse
	if err := c.doJSON(ctx, "POST", endpointChat, reqBody, &chatResp); err != nil {
		return nil, err
	}
	return &chatResp, nil
}

// StreamChat sends a transcript and returns the assistant reply as a stream of
// chunks. The chunk channel is closed when the stream ends; a single error may
// arrive on the error channel instead.
func (c *APIClient) StreamChat(ctx context.Context, messages []types.ChatMessage) (<-chan types.ChatStreamChunk, <-chan error, error) {
	if len(messages) == 0 {
		return nil, nil, wrapLocalError(fmt.Errorf("chat request requires at least one message"))
	}

	safeMessages := make([]types.ChatMessage, len(messages))
	copy(safeMessages, messages)

	reqBody := types.ChatRequest{Messages: safeMessages, Stream: true}
	bodyBytes, err := sonic.Marshal(reqBody)
	if err != nil {
		return nil, nil, wrapLocalError(fmt.Errorf("failed to marshal request: %w", err))
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointChat)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("Accept", "text/event-stream")
	req.SetBody(bodyBytes)

	if err := c.client.Do(ctx, req, resp); err != nil {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
		return nil, nil, wrapLocalError(fmt.Errorf("request failed: %w", err))
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		statusCode := resp.StatusCode()
		body := resp.Body()
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
		return nil, nil, newStatusError(statusCode, body)
	}

	chunkCh := make(chan types.ChatStreamChunk, 10)
	errCh := make(chan error, 1)

	go func() {
		defer func() {
			close(chunkCh)
			close(errCh)
			protocol.ReleaseRequest(req)
			protocol.ReleaseResponse(resp)
		}()

		bodyStream := resp.BodyStream()
		if bodyStream == nil {
			errCh <- wrapLocalError(fmt.Errorf("body stream is nil"))
			return
		}

		c.parseSSEStream(bodyStream, chunkCh, errCh)
	}()

	return chunkCh, errCh, nil
}

// parseSSEStream reads an SSE stream line by line, emitting parsed chunks as
// they arrive.
func (c *APIClient) parseSSEStream(reader io.Reader, chunkCh chan<- types.ChatStreamChunk, errCh chan<- error) {
	scanner := bufio.NewScanner(reader)

	// Increase buffer size for large SSE messages
	const maxScanTokenSize = 1024 * 1024 // 1MB
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines or comments
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, "data: ") {
			dataStr := strings.TrimPrefix(line, "data: ")

			if dataStr == "[DONE]" {
				return
			}

			var chunk types.ChatStreamChunk
			if err := sonic.Unmarshal([]byte(dataStr), &chunk); err != nil {
				errCh <- wrapLocalError(fmt.Errorf("failed to parse chunk: %w", err))
				return
			}

			select {
			case chunkCh <- chunk:
			case <-time.After(5 * time.Second):
				errCh <- wrapLocalError(fmt.Errorf("timeout sending chunk to channel"))
				return
			}
		}
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		errCh <- wrapLocalError(fmt.Errorf("scanner error: %w", err))
	}
}
