package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// eventPayload is the subset of the pull_request webhook payload the pipeline
// needs: the title asserting the release and the number to comment on.
type eventPayload struct {
	Number      int `json:"number"`
	PullRequest struct {
		Title string `json:"title"`
	} `json:"pull_request"`
}

func readEventPayload(path string) (title string, number int, err error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("can't read the event payload file %s: %w", path, err)
	}
	var payload eventPayload
	err = json.Unmarshal(body, &payload)
	if err != nil {
		return "", 0, fmt.Errorf("can't decode the event payload file %s: %w", path, err)
	}
	if payload.PullRequest.Title == "" {
		return "", 0, fmt.Errorf("the event payload file %s carries no pull request title", path)
	}
	return payload.PullRequest.Title, payload.Number, nil
}
