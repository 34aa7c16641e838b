package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/pupilplay/game-engine/pkg/session"
)

// sendInteraction posts one player message, resuming the given session
// when its ID is non-nil.
func sendInteraction(client *http.Client, baseURL, playerID, message string, sessionID uuid.UUID) (*session.InteractionResponse, error) {
	request := session.InteractionRequest{
		PlayerID: playerID,
		Message:  message,
	}
	if sessionID != uuid.Nil {
		request.SessionContext = &session.Context{SessionID: sessionID}
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(baseURL+"/v1/interact", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var interaction session.InteractionResponse
	if err := json.Unmarshal(respBody, &interaction); err != nil {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if resp.StatusCode != http.StatusOK && interaction.Error != "" {
		return nil, fmt.Errorf("interaction failed: %s", interaction.Error)
	}

	return &interaction, nil
}
